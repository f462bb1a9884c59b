// dnf-extra-tests - acceptance tests for the DNF package manager
// Copyright (C) 2025 The dnf-extra-tests Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

func removeFile(path string) error {
	return os.Remove(path)
}

func setUpSuite(t *testing.T) (*testEnv, context.Context) {
	t.Helper()
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.suite.BeforeSuite(ctx))
	t.Cleanup(func() {
		assert.NoError(t, env.suite.AfterSuite(ctx))
	})
	return env, ctx
}

func TestScenarioRestoresConfig(t *testing.T) {
	env, ctx := setUpSuite(t)
	suiteConfig := env.config(t)

	sc := env.suite.NewScenario()
	require.NoError(t, sc.Before(ctx))
	assert.Empty(t, env.config(t))
	assert.Equal(t, env.configPath, sc.ConfigPath)

	require.NoError(t, fsutils.AppendFile(sc.ConfigPath, []byte("[main]\nreposdir=/tmp\n")))
	sc.Overrides.Releasever = "19"

	require.NoError(t, sc.After(ctx))
	assert.Equal(t, suiteConfig, env.config(t))
	assert.Equal(t, Overrides{}, sc.Overrides)
}

func TestScenarioCleansEverything(t *testing.T) {
	env, ctx := setUpSuite(t)

	sc := env.suite.NewScenario()
	require.NoError(t, sc.Before(ctx))

	pluginDir := filepath.Join(env.root, "opt", "plugins")
	sc.TempResource = tempstate.NewResourceCopy(env.suite.Resources().Dir, "dnf-extra-tests.py", pluginDir)
	require.NoError(t, sc.TempResource.Create())

	sc.TempRepo = &tempstate.RepoConfig{
		ID:      "dnf-extra-tests",
		BaseURL: "file:///srv/repo",
		Dir:     env.suite.Main.ReposDir,
		Cleaner: env.suite.DNF(),
	}
	require.NoError(t, sc.TempRepo.Add())
	repoFile := sc.TempRepo.Path

	custom := filepath.Join(env.root, "custom", "etc", "dnf.conf")
	require.NoError(t, sc.Protect(custom))
	require.NoError(t, fsutils.AppendFile(custom, []byte("[main]\n")))

	sc.Overrides.Installroot = filepath.Join(env.root, "guest")
	require.NoError(t, sc.PrepareInstallRoot(ctx, ""))
	assert.Equal(t, 1, env.runner.called("--installroot="+sc.Overrides.Installroot+" --releasever=19 --quiet --assumeyes install system-release"))

	require.NoError(t, sc.After(ctx))
	assert.Nil(t, sc.TempResource)
	assert.Nil(t, sc.TempRepo)
	assert.NoFileExists(t, filepath.Join(pluginDir, "dnf-extra-tests.py"))
	assert.NoFileExists(t, repoFile)
	assert.NoDirExists(t, filepath.Join(env.root, "custom"))
	assert.NoDirExists(t, filepath.Join(env.root, "guest"))
	assert.Equal(t, 1, env.runner.called("--enablerepo=dnf-extra-tests clean metadata"))
}

func TestScenarioAfterContinuesOnFailure(t *testing.T) {
	env, ctx := setUpSuite(t)
	suiteConfig := env.config(t)

	sc := env.suite.NewScenario()
	require.NoError(t, sc.Before(ctx))

	// A resource copy that was never created fails to be removed.
	sc.TempResource = tempstate.NewResourceCopy(env.suite.Resources().Dir, "dnf-extra-tests.conf", env.root)

	protected := filepath.Join(env.root, "etc", "dnf", "plugins", "x.conf")
	require.NoError(t, sc.Protect(protected))
	require.NoError(t, fsutils.AppendFile(protected, []byte("x")))

	err := sc.After(ctx)
	var serr *tempstate.StateError
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, suiteConfig, env.config(t))
	assert.NoFileExists(t, protected)
}

func TestProtectKeepsBackupsAway(t *testing.T) {
	env, ctx := setUpSuite(t)

	sc := env.suite.NewScenario()
	require.NoError(t, sc.Before(ctx))

	logDir := filepath.Join(env.root, "var", "log")
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	log := filepath.Join(logDir, "dnf.log")
	require.NoError(t, os.WriteFile(log, []byte("old"), 0o644))

	require.NoError(t, sc.Protect(log))
	require.NoError(t, sc.Protect(log))
	require.Len(t, sc.protected, 1)
	protectDir := sc.protectDir
	assert.DirExists(t, protectDir)
	assert.Equal(t, protectDir, filepath.Dir(sc.protected[0].BackupPath))

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, os.Remove(log))
	require.NoError(t, sc.After(ctx))
	data, err := os.ReadFile(log)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.NoDirExists(t, protectDir)
	assert.Empty(t, sc.protectDir)
}

func TestGuestRoot(t *testing.T) {
	sc := NewSuite(Options{}).NewScenario()
	_, err := sc.GuestRoot()
	var serr *tempstate.StateError
	assert.ErrorAs(t, err, &serr)

	sc.Overrides.Installroot = "/tmp/guest"
	root, err := sc.GuestRoot()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/guest", root)
}

func TestPrepareInstallRootFailure(t *testing.T) {
	env, ctx := setUpSuite(t)
	env.runner.fail["install system-release"] = errors.New("no match")

	sc := env.suite.NewScenario()
	require.NoError(t, sc.Before(ctx))
	sc.Overrides.Installroot = filepath.Join(env.root, "guest")
	sc.Overrides.Releasever = "40"

	err := sc.PrepareInstallRoot(ctx, "")
	var derr *tempstate.DownloadOrTransactionError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, env.runner.called("--releasever=40"))
	require.NoError(t, sc.After(ctx))
}

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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/ledger"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/repomd"
)

func TestSuiteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.suite

	require.NoError(t, s.BeforeSuite(ctx))
	assert.Equal(t, "41", s.Releasever)
	assert.Equal(t, filepath.Join(s.RepoParentDir, "41"), s.RepoDir)
	assert.DirExists(t, s.RepoDir)
	assert.Equal(t, []string{"foo-0:1-1.noarch"}, repomd.Strings(s.NEVRAs))

	cfg := env.config(t)
	assert.Contains(t, cfg, "[dnf-extra-tests-suite]")
	assert.Contains(t, cfg, "baseurl=file://"+s.RepoParentDir+"/$RELEASEVER")
	assert.Contains(t, cfg, "metadata_expire=600")
	assert.Equal(t, 1, env.runner.called("--enablerepo=dnf-extra-tests-suite makecache"))

	l, err := ledger.Read(s.LedgerPath())
	require.NoError(t, err)
	assert.Equal(t, env.configPath, l.ConfigPath)
	assert.Equal(t, s.RepoParentDir, l.RepoParentDir)

	parent := s.RepoParentDir
	require.NoError(t, s.AfterSuite(ctx))
	assert.Equal(t, originalConfig, env.config(t))
	assert.NoDirExists(t, parent)
	assert.Equal(t, 1, env.runner.called("--enablerepo=dnf-extra-tests-suite clean metadata"))
	assert.NoFileExists(t, s.LedgerPath())
}

func TestBeforeSuiteFailureUndoes(t *testing.T) {
	env := newTestEnv(t)
	env.runner.fail["makecache"] = errors.New("cannot download repomd.xml")

	err := env.suite.BeforeSuite(context.Background())
	require.Error(t, err)
	assert.Equal(t, originalConfig, env.config(t))
	assert.Empty(t, env.suite.RepoParentDir)
	assert.NoFileExists(t, env.suite.LedgerPath())
}

func TestBeforeSuiteMissingResources(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, removeFile(env.suite.Resources().Path("TEST-GPG-KEY")))

	err := env.suite.BeforeSuite(context.Background())
	require.Error(t, err)
	assert.Empty(t, env.runner.calls)
}

func TestRecover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.suite
	require.NoError(t, s.BeforeSuite(ctx))
	parent := s.RepoParentDir

	// Simulate a crash: the suite is never torn down.
	err := Recover(ctx, s.DNF(), s.LedgerPath(), false)
	require.NoError(t, err)
	assert.Equal(t, originalConfig, env.config(t))
	assert.NoDirExists(t, parent)
	assert.NoFileExists(t, s.LedgerPath())

	assert.ErrorIs(t, Recover(ctx, s.DNF(), s.LedgerPath(), false), ledger.ErrNoLedger)
}

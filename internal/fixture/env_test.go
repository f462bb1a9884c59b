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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/resources"
)

const originalConfig = "[main]\ngpgcheck=1\ninstallonly_limit=3\n"

const testPrimary = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://linux.duke.edu/metadata/common" packages="1">
<package type="rpm">
  <name>foo</name>
  <arch>noarch</arch>
  <version epoch="0" ver="1" rel="1"/>
</package>
</metadata>
`

const testRepomd = `<?xml version="1.0" encoding="UTF-8"?>
<repomd xmlns="http://linux.duke.edu/metadata/repo">
  <data type="primary">
    <location href="repodata/primary.xml"/>
  </data>
</repomd>
`

// scriptedRunner answers dnf and rpm invocations from a table of
// argument substrings.
type scriptedRunner struct {
	calls []string
	dump  string
	fail  map[string]error
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	for substr, err := range r.fail {
		if strings.Contains(line, substr) {
			return nil, err
		}
	}
	switch {
	case strings.Contains(line, "config-manager --dump"):
		return []byte(r.dump), nil
	case strings.Contains(line, "--whatprovides"):
		return []byte("system-release(releasever)=41\n"), nil
	}
	return nil, nil
}

func (r *scriptedRunner) called(substr string) int {
	n := 0
	for _, c := range r.calls {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

type testEnv struct {
	root       string
	configPath string
	runner     *scriptedRunner
	suite      *Suite
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, "etc", "dnf", "dnf.conf")
	writeFile(t, configPath, originalConfig)

	store := filepath.Join(root, "resources")
	for _, name := range resources.Required() {
		writeFile(t, filepath.Join(store, name), "")
	}
	writeFile(t, filepath.Join(store, "repository", "repodata", "repomd.xml"), testRepomd)
	writeFile(t, filepath.Join(store, "repository", "repodata", "primary.xml"), testPrimary)

	runner := &scriptedRunner{
		dump: fmt.Sprintf(`=== main ===
config_file_path = %s
reposdir = %s, /etc/yum/repos.d
pluginpath = %s
pluginconfpath = %s
logdir = %s
cachedir = %s
persistdir = %s
`,
			configPath,
			filepath.Join(root, "etc", "yum.repos.d"),
			filepath.Join(root, "usr", "lib", "dnf-plugins"),
			filepath.Join(root, "etc", "dnf", "plugins"),
			filepath.Join(root, "var", "log"),
			filepath.Join(root, "var", "cache", "dnf"),
			filepath.Join(root, "var", "lib", "dnf"),
		),
		fail: map[string]error{},
	}

	rs, err := resources.NewStore(store)
	require.NoError(t, err)

	suite := NewSuite(Options{
		DNF:            manager.NewDNF(runner, "dnf"),
		RPM:            manager.NewRPM(runner, "rpm"),
		Resources:      rs,
		StateDir:       filepath.Join(root, "state"),
		MetadataExpire: 600,
	})
	return &testEnv{root: root, configPath: configPath, runner: runner, suite: suite}
}

func (e *testEnv) config(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.configPath)
	require.NoError(t, err)
	return string(data)
}

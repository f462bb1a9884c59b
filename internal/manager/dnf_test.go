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

package manager

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls   []call
	outputs map[string][]byte
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	key := strings.Join(args, " ")
	for prefix, err := range f.errs {
		if strings.Contains(key, prefix) {
			return nil, err
		}
	}
	for prefix, out := range f.outputs {
		if strings.Contains(key, prefix) {
			return out, nil
		}
	}
	return nil, nil
}

func TestDNFArgsOrder(t *testing.T) {
	d := NewDNF(&fakeRunner{}, "dnf").WithExtraArgs("--setopt=keepcache=True")
	args := d.Args(&Opts{
		Config:      "/tmp/dnf.conf",
		Installroot: "/tmp/guest",
		Releasever:  "19",
		Quiet:       true,
		AssumeYes:   true,
		DisableRepo: "*",
		EnableRepo:  "dnf-extra-tests",
	}, "install", "foo")

	assert.Equal(t, []string{
		"--config=/tmp/dnf.conf",
		"--installroot=/tmp/guest",
		"--releasever=19",
		"--quiet",
		"--assumeyes",
		"--disablerepo=*",
		"--enablerepo=dnf-extra-tests",
		"--setopt=keepcache=True",
		"install", "foo",
	}, args)
}

func TestDNFArgsNilOpts(t *testing.T) {
	d := NewDNF(&fakeRunner{}, "dnf")
	assert.Equal(t, []string{"makecache"}, d.Args(nil, "makecache"))
}

func TestDNFSubcommands(t *testing.T) {
	ctx := context.Background()
	r := &fakeRunner{}
	d := NewDNF(r, "dnf-3")

	_, err := d.GroupInstall(ctx, &Opts{Quiet: true}, "Books and Guides")
	require.NoError(t, err)
	_, err = d.CleanMetadata(ctx, nil)
	require.NoError(t, err)

	require.Len(t, r.calls, 2)
	assert.Equal(t, "dnf-3", r.calls[0].name)
	assert.Equal(t, []string{"--quiet", "group", "install", "Books and Guides"}, r.calls[0].args)
	assert.Equal(t, []string{"clean", "metadata"}, r.calls[1].args)
}

func TestRepoQuery(t *testing.T) {
	r := &fakeRunner{outputs: map[string][]byte{
		"repoquery": []byte("foo-0:1-1.noarch\n\nsigned-foo-0:1-1.noarch\n"),
	}}
	d := NewDNF(r, "dnf")

	lines, err := d.RepoQuery(context.Background(), &Opts{Quiet: true}, "dnf-extra-tests")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo-0:1-1.noarch", "signed-foo-0:1-1.noarch"}, lines)
	assert.Equal(t, []string{"--quiet", "repoquery", "--repoid=dnf-extra-tests"}, r.calls[0].args)
}

func TestInstallWrapsFailure(t *testing.T) {
	failed := &CommandFailedError{Command: []string{"dnf"}, ExitCode: 1, Output: []byte("No match")}
	d := NewDNF(&fakeRunner{errs: map[string]error{"install": failed}}, "dnf")

	_, err := d.Install(context.Background(), nil, "nothing")
	require.Error(t, err)
	assert.ErrorIs(t, err, failed)
	assert.True(t, IsExitCode(err, 1))
	assert.Contains(t, err.Error(), "dnf: install")
}

const dnfDump = `============================================================== main ===============================================================
assumeyes = 0
cachedir = /var/cache/dnf
config_file_path = /etc/dnf/dnf.conf
logdir = /var/log
persistdir = /var/lib/dnf
pluginconfpath = /etc/dnf/plugins
pluginpath = /usr/lib/python3.12/site-packages/dnf-plugins, /usr/local/lib/dnf-plugins
reposdir = /etc/yum.repos.d, /etc/yum/repos.d, /etc/distro.repos.d
varsdir = /etc/dnf/vars, /etc/yum/vars
exclude_from_weak = ; not a comment
`

func TestParseMainConfig(t *testing.T) {
	cfg, err := ParseMainConfig([]byte(dnfDump))
	require.NoError(t, err)
	assert.Equal(t, &MainConfig{
		ConfigFile:     "/etc/dnf/dnf.conf",
		ReposDir:       "/etc/yum.repos.d",
		PluginPath:     "/usr/lib/python3.12/site-packages/dnf-plugins",
		PluginConfPath: "/etc/dnf/plugins",
		LogDir:         "/var/log",
		CacheDir:       "/var/cache/dnf",
		PersistDir:     "/var/lib/dnf",
	}, cfg)
}

func TestParseMainConfigMissingKeys(t *testing.T) {
	_, err := ParseMainConfig([]byte("cachedir = /var/cache/dnf\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config_file_path")
	assert.Contains(t, err.Error(), "persistdir")
}

func TestMainConfigUsesDumpArgs(t *testing.T) {
	r := &fakeRunner{outputs: map[string][]byte{"--dump-main-config": []byte(dnfDump)}}
	d := NewDNF(r, "dnf5").WithDumpArgs("--dump-main-config")

	cfg, err := d.MainConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/dnf", cfg.PersistDir)
	assert.Equal(t, []string{"--dump-main-config"}, r.calls[0].args)
}

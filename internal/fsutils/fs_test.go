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

package fsutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, EnsureDir(nested))
	assert.DirExists(t, nested)

	// second call on an existing directory
	require.NoError(t, EnsureDir(nested))

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, EnsureDir(file))
	assert.Error(t, EnsureDir(filepath.Join(file, "child")))
}

func TestRemoveIfExists(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	require.NoError(t, RemoveIfExists(file))
	assert.NoFileExists(t, file)
	require.NoError(t, RemoveIfExists(file))

	tree := filepath.Join(root, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "sub"), 0o755))
	require.NoError(t, RemoveAllIfExists(tree))
	assert.NoDirExists(t, tree)
	require.NoError(t, RemoveAllIfExists(tree))
}

func TestListDir(t *testing.T) {
	root := t.TempDir()

	names, err := ListDir(filepath.Join(root, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, os.WriteFile(filepath.Join(root, "dnf.log"), nil, 0o644))
	names, err = ListDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf.log"}, names)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "repodata"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "repodata", "repomd.xml"), []byte("<repomd/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "foo.rpm"), []byte("rpm"), 0o600))
	require.NoError(t, os.Symlink("foo.rpm", filepath.Join(src, "link.rpm")))

	dst := filepath.Join(t.TempDir(), "19")
	require.NoError(t, CopyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "repodata", "repomd.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<repomd/>", string(data))

	fi, err := os.Stat(filepath.Join(dst, "foo.rpm"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	link, err := os.Readlink(filepath.Join(dst, "link.rpm"))
	require.NoError(t, err)
	assert.Equal(t, "foo.rpm", link)

	assert.Error(t, CopyTree(src, dst))
}

func TestCopyFileKeepsDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.WriteFile(src, []byte("short"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("a much longer content"), 0o600))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestAppendAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnf.conf")

	require.NoError(t, AppendFile(path, []byte("[main]\n")))
	require.NoError(t, AppendFile(path, []byte("gpgcheck=1\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[main]\ngpgcheck=1\n", string(data))

	require.NoError(t, Truncate(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestChrooted(t *testing.T) {
	assert.Equal(t, "/var/log", Chrooted("", "/var/log"))
	assert.Equal(t, "/tmp/guest/var/log", Chrooted("/tmp/guest", "/var/log"))
}

func TestEnsureDirTracked(t *testing.T) {
	base := t.TempDir()

	top, err := EnsureDirTracked(filepath.Join(base, "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "a"), top)
	assert.DirExists(t, filepath.Join(base, "a", "b", "c"))

	top, err = EnsureDirTracked(filepath.Join(base, "a", "b"))
	require.NoError(t, err)
	assert.Empty(t, top)
}

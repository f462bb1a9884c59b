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

package tempstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBackupRestore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dnf.conf")
	require.NoError(t, os.WriteFile(path, []byte("[main]\ngpgcheck=1\n"), 0o644))

	b, err := NewConfigBackup(path)
	require.NoError(t, err)
	assert.True(t, b.Live())
	assert.True(t, b.Existed())
	assert.FileExists(t, b.BackupPath)
	assert.Equal(t, dir, filepath.Dir(b.BackupPath))

	require.NoError(t, b.Truncate())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, os.WriteFile(path, []byte("[main]\nexcludepkgs=foo\n"), 0o644))

	backupPath := b.BackupPath
	require.NoError(t, b.Restore())
	assert.False(t, b.Live())
	assert.NoFileExists(t, backupPath)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[main]\ngpgcheck=1\n", string(data))
}

func TestConfigBackupTwiceRestored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnf.conf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	b, err := NewConfigBackup(path)
	require.NoError(t, err)
	require.NoError(t, b.Restore())

	var serr *StateError
	assert.ErrorAs(t, b.Restore(), &serr)
	assert.ErrorAs(t, b.Truncate(), &serr)
}

func TestConfigBackupOfMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins", "dnf-extra-tests.conf")

	b, err := NewConfigBackup(path)
	require.NoError(t, err)
	assert.False(t, b.Existed())

	require.NoError(t, os.WriteFile(path, []byte("[section]\n"), 0o644))
	require.NoError(t, b.Restore())
	assert.NoFileExists(t, path)
}

func TestConfigBackupIn(t *testing.T) {
	logDir := t.TempDir()
	path := filepath.Join(logDir, "dnf.log")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	dir := t.TempDir()

	b, err := NewConfigBackupIn(path, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(b.BackupPath))
	backup := b.BackupPath

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, os.Remove(path))
	require.NoError(t, b.Restore())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.NoFileExists(t, backup)
}

func TestConfigBackupDirectoryGone(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "etc")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "dnf.conf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	b, err := NewConfigBackup(path)
	require.NoError(t, err)
	// The backup lives next to the file, so keep it elsewhere.
	moved := filepath.Join(t.TempDir(), "dnf.conf.bak")
	require.NoError(t, os.Rename(b.BackupPath, moved))
	b.BackupPath = moved
	require.NoError(t, os.RemoveAll(dir))

	require.NoError(t, b.Restore())
	assert.NoDirExists(t, dir)
}

func TestResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dnf.conf")
	backup := filepath.Join(dir, "dnf.conf.bakX")
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	require.NoError(t, os.WriteFile(backup, []byte("original"), 0o644))

	require.NoError(t, Resume(path, backup, true).Restore())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.NoFileExists(t, backup)
}

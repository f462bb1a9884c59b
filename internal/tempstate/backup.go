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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
)

// ConfigBackup is a copy of a configuration file kept next to it while
// the file is mutated.
type ConfigBackup struct {
	Path       string
	BackupPath string

	// existed is false when there was nothing to back up. Restoring
	// then removes whatever appeared at Path.
	existed bool
}

// NewConfigBackup copies path to a uniquely named sibling.
func NewConfigBackup(path string) (*ConfigBackup, error) {
	return NewConfigBackupIn(path, filepath.Dir(path))
}

// NewConfigBackupIn copies path to a uniquely named file in dir. Use it
// when something lists the directory of path while the backup exists.
func NewConfigBackupIn(path, dir string) (*ConfigBackup, error) {
	b := &ConfigBackup{
		Path:       path,
		BackupPath: filepath.Join(dir, fmt.Sprintf("%s.bak%s", filepath.Base(path), uuid.NewString())),
	}

	ok, err := fsutils.Exists(path)
	if err != nil {
		return nil, err
	}
	b.existed = ok
	if !ok {
		if err := fsutils.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
		err = fsutils.Truncate(b.BackupPath)
	} else {
		err = fsutils.CopyFile(path, b.BackupPath)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot back up %s: %w", path, err)
	}
	return b, nil
}

// Live reports whether the backup has not been restored yet.
func (b *ConfigBackup) Live() bool {
	return b != nil && b.BackupPath != ""
}

// Truncate empties the backed up file.
func (b *ConfigBackup) Truncate() error {
	if !b.Live() {
		return &StateError{Op: "truncate", Msg: "configuration is not backed up"}
	}
	return fsutils.Truncate(b.Path)
}

// Restore copies the backup over the live file and deletes the backup.
// A live file whose directory has disappeared is left alone.
func (b *ConfigBackup) Restore() error {
	if !b.Live() {
		return &StateError{Op: "restore", Msg: "backup already restored"}
	}

	var merr *multierror.Error
	if b.existed {
		dirOk, err := fsutils.Exists(filepath.Dir(b.Path))
		switch {
		case err != nil:
			merr = multierror.Append(merr, err)
		case !dirOk:
			slog.Warn("configuration directory is gone, not restoring", "path", b.Path)
		default:
			if err := fsutils.CopyFile(b.BackupPath, b.Path); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("cannot restore %s: %w", b.Path, err))
			}
		}
	} else if err := fsutils.RemoveIfExists(b.Path); err != nil {
		merr = multierror.Append(merr, err)
	}

	if err := os.Remove(b.BackupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		merr = multierror.Append(merr, err)
	}
	b.BackupPath = ""
	return merr.ErrorOrNil()
}

// Existed reports whether there was a file to back up.
func (b *ConfigBackup) Existed() bool {
	return b.existed
}

// Resume rebuilds a backup recorded by an earlier, interrupted run.
func Resume(path, backupPath string, existed bool) *ConfigBackup {
	return &ConfigBackup{Path: path, BackupPath: backupPath, existed: existed}
}

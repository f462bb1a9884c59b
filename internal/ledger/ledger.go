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

package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
)

// ErrNoLedger is returned by Read when no run left a ledger behind.
var ErrNoLedger = errors.New("no run ledger")

// Ledger records the run-level state changed by the suite so that an
// interrupted run can be undone with the restore command.
type Ledger struct {
	ConfigPath    string    `msgpack:"config_path"`
	BackupPath    string    `msgpack:"backup_path"`
	ConfigExisted bool      `msgpack:"config_existed"`
	RepoParentDir string    `msgpack:"repo_parent_dir"`
	RepoID        string    `msgpack:"repo_id"`
	PID           int       `msgpack:"pid"`
	StartedAt     time.Time `msgpack:"started_at"`
}

func Path(stateDir string) string {
	return filepath.Join(stateDir, constants.LedgerName)
}

func Write(path string, l *Ledger) error {
	if err := fsutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	tmp := path + ".tmp"
	fl, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(fl).Encode(l); err != nil {
		fl.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot encode ledger: %w", err)
	}
	if err := fl.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func Read(path string) (*Ledger, error) {
	fl, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoLedger
	} else if err != nil {
		return nil, err
	}
	defer fl.Close()

	l := &Ledger{}
	if err := msgpack.NewDecoder(fl).Decode(l); err != nil {
		return nil, fmt.Errorf("cannot decode ledger %s: %w", path, err)
	}
	return l, nil
}

func Remove(path string) error {
	return fsutils.RemoveIfExists(path)
}

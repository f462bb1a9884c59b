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
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/sys/unix"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/ledger"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

// ErrRunActive is returned by Recover when the run that wrote the
// ledger is still alive.
var ErrRunActive = errors.New("the run that wrote the ledger is still active")

// Recover undoes the run-level changes of an interrupted run recorded
// in the ledger at path. Without force it refuses to touch the state of
// a run whose process still exists.
func Recover(ctx context.Context, cleaner tempstate.MetadataCleaner, path string, force bool) error {
	l, err := ledger.Read(path)
	if err != nil {
		return err
	}

	if !force && l.PID != os.Getpid() && processAlive(l.PID) {
		return fmt.Errorf("%w (pid %d)", ErrRunActive, l.PID)
	}

	slog.Info(gotext.Get("Restoring state of an interrupted run"), "started", l.StartedAt, "config", l.ConfigPath)

	var merr *multierror.Error
	if _, err := cleaner.CleanMetadata(ctx, tempstate.ScopedTo(l.RepoID)); err != nil {
		slog.Warn(gotext.Get("Cannot clean metadata of the test repository"), "err", err)
	}

	ok, err := fsutils.Exists(l.BackupPath)
	switch {
	case err != nil:
		merr = multierror.Append(merr, err)
	case ok:
		if err := tempstate.Resume(l.ConfigPath, l.BackupPath, l.ConfigExisted).Restore(); err != nil {
			merr = multierror.Append(merr, err)
		}
	default:
		slog.Warn(gotext.Get("Configuration backup is gone, leaving the configuration as is"), "backup", l.BackupPath)
	}

	if l.RepoParentDir != "" {
		if err := fsutils.RemoveAllIfExists(l.RepoParentDir); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if merr.ErrorOrNil() != nil {
		return merr
	}
	return ledger.Remove(path)
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

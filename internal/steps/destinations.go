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

package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/trackdb"
)

var logFileGlob = glob.MustCompile("dnf*")

// logFiles lists the regular files in dir whose names start with dnf.
func logFiles(dir string) ([]string, error) {
	names, err := fsutils.ListDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, name := range names {
		if !logFileGlob.Match(name) {
			continue
		}
		path := filepath.Join(dir, name)
		fi, err := os.Lstat(path)
		if err != nil {
			return nil, err
		}
		if fi.Mode().IsRegular() {
			out = append(out, path)
		}
	}
	return out, nil
}

// guestDir returns dir as seen from the install root override, or dir
// itself without one.
func (st *steps) guestDir(dir string) string {
	return fsutils.Chrooted(st.sc.Overrides.Installroot, dir)
}

// destination parses where and, for the guest, requires an install
// root override before anything runs.
func (st *steps) destination(where string) (destination, error) {
	dest, err := parseDestination(where)
	if err != nil {
		return 0, err
	}
	if dest == inTheGuest {
		if _, err := st.sc.GuestRoot(); err != nil {
			return 0, err
		}
	}
	return dest, nil
}

// scannedDirs returns the host dir and its guest counterpart, once if
// they are the same.
func (st *steps) scannedDirs(hostDir string) []string {
	guestDir := st.guestDir(hostDir)
	if guestDir == hostDir {
		return []string{hostDir}
	}
	return []string{hostDir, guestDir}
}

func (st *steps) eventsLogged(ctx context.Context, where string) error {
	dest, err := st.destination(where)
	if err != nil {
		return err
	}

	hostDir := st.suite.Main.LogDir
	guestDir := st.guestDir(hostDir)
	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}

	for _, dir := range st.scannedDirs(hostDir) {
		files, err := logFiles(dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			if err := st.sc.Protect(f); err != nil {
				return err
			}
			if err := os.Remove(f); err != nil {
				return err
			}
		}
	}

	if _, err := st.dnf().CleanMetadata(ctx, st.sc.DNFOpts()); err != nil {
		return err
	}

	hostLogs, err := logFiles(hostDir)
	if err != nil {
		return err
	}
	if dest == locally {
		return assertTrue(len(hostLogs) > 0, "nothing logged in the host")
	}
	guestLogs, err := logFiles(guestDir)
	if err != nil {
		return err
	}
	return multierror.Append(
		assertTrue(len(guestLogs) > 0, "nothing logged in the guest"),
		assertTrue(len(hostLogs) == 0, "something logged in the host"),
	).ErrorOrNil()
}

func (st *steps) metadataCached(ctx context.Context, where string) error {
	dest, err := st.destination(where)
	if err != nil {
		return err
	}

	hostDir := st.suite.Main.CacheDir
	guestDir := st.guestDir(hostDir)
	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	for _, dir := range st.scannedDirs(hostDir) {
		if err := fsutils.RemoveAllIfExists(dir); err != nil {
			return err
		}
	}

	if _, err := st.dnf().MakeCache(ctx, st.sc.DNFOpts()); err != nil {
		return err
	}

	hostContent, err := fsutils.ListDir(hostDir)
	if err != nil {
		return err
	}
	if dest == locally {
		return assertTrue(len(hostContent) > 0, "nothing cached in the host")
	}
	guestContent, err := fsutils.ListDir(guestDir)
	if err != nil {
		return err
	}
	return multierror.Append(
		assertTrue(len(guestContent) > 0, "nothing cached in the guest"),
		assertTrue(len(hostContent) == 0, "something cached in the host"),
	).ErrorOrNil()
}

// restorePersist puts the persist dir back from the copy in backupDir.
// The copy is only removed once the restore succeeded.
func restorePersist(persistDir, backupDir string, hadPersist bool) error {
	if err := fsutils.RemoveAllIfExists(persistDir); err != nil {
		return fmt.Errorf("%s not restored, backup kept in %s: %w", persistDir, backupDir, err)
	}
	if hadPersist {
		if err := fsutils.CopyTree(filepath.Join(backupDir, "persist"), persistDir); err != nil {
			return fmt.Errorf("%s not restored, backup kept in %s: %w", persistDir, backupDir, err)
		}
	}
	return os.RemoveAll(backupDir)
}

func (st *steps) trackingStored(ctx context.Context, where string) (err error) {
	dest, err := st.destination(where)
	if err != nil {
		return err
	}

	releasever := st.sc.Overrides.Releasever
	if releasever == "" {
		releasever = st.suite.Releasever
	}
	persistDir := st.suite.Main.PersistDir

	backupDir, err := os.MkdirTemp("", "dnf-extra-tests-persist")
	if err != nil {
		return err
	}
	hadPersist, err := fsutils.Exists(persistDir)
	if err == nil && hadPersist {
		err = fsutils.CopyTree(persistDir, filepath.Join(backupDir, "persist"))
	}
	if err != nil {
		return multierror.Append(err, os.RemoveAll(backupDir)).ErrorOrNil()
	}
	defer func() {
		if rerr := restorePersist(persistDir, backupDir, hadPersist); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()
	if err := fsutils.RemoveAllIfExists(persistDir); err != nil {
		return err
	}

	opts := &manager.Opts{
		Config:      st.sc.Overrides.Config,
		Installroot: st.sc.Overrides.Installroot,
		Releasever:  releasever,
		Quiet:       true,
		AssumeYes:   true,
	}
	if _, err := st.dnf().GroupInstall(ctx, opts, constants.TrackingGroup); err != nil {
		return err
	}

	content, err := fsutils.ListDir(persistDir)
	if err != nil {
		return err
	}
	if dest == locally {
		if err := assertTrue(len(content) > 0, "nothing stored in the host"); err != nil {
			return err
		}
		return st.transactionsRecorded(ctx, persistDir, "host")
	}
	if err := assertTrue(len(content) == 0, "something stored in the host"); err != nil {
		return err
	}

	guestDir := st.guestDir(persistDir)
	guestContent, err := fsutils.ListDir(guestDir)
	if err != nil {
		return err
	}
	if err := assertTrue(len(guestContent) > 0, "nothing stored in the guest"); err != nil {
		return err
	}
	return st.transactionsRecorded(ctx, guestDir, "guest")
}

// transactionsRecorded checks the history database in dir, when there
// is one, for at least one transaction.
func (st *steps) transactionsRecorded(ctx context.Context, dir, where string) error {
	n, err := trackdb.Count(ctx, dir)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, ferr := trackdb.Find(dir); ferr != nil {
			slog.Debug("no history database to inspect", "dir", dir)
			return nil
		}
	}
	return assertTrue(n > 0, "no transaction recorded in the "+where)
}

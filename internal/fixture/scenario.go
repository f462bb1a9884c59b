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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

// Overrides are the command line options a scenario passes to DNF.
// Empty means unset.
type Overrides struct {
	Config      string `mapstructure:"--config"`
	Releasever  string `mapstructure:"--releasever"`
	Installroot string `mapstructure:"--installroot"`
}

// Scenario is the state of one scenario. Every handle is either nil or
// live, and After leaves all of them nil.
type Scenario struct {
	suite *Suite

	ConfigPath   string
	Overrides    Overrides
	TempResource *tempstate.ResourceCopy
	TempRepo     *tempstate.RepoConfig

	backup    *tempstate.ConfigBackup
	protected []*tempstate.ConfigBackup
	// protectDir holds the backups of protected files, away from the
	// directories the steps list.
	protectDir string
	created    []string
}

func (s *Suite) NewScenario() *Scenario {
	return &Scenario{suite: s}
}

func (sc *Scenario) Suite() *Suite {
	return sc.suite
}

// Before backs up the DNF configuration and empties it.
func (sc *Scenario) Before(ctx context.Context) error {
	if sc.backup.Live() {
		return &tempstate.StateError{Op: "before scenario", Msg: "scenario already set up"}
	}
	sc.Overrides = Overrides{}
	sc.ConfigPath = sc.suite.Main.ConfigFile

	b, err := tempstate.NewConfigBackup(sc.ConfigPath)
	if err != nil {
		return err
	}
	sc.backup = b
	if err := b.Truncate(); err != nil {
		return multierror.Append(err, sc.After(ctx)).ErrorOrNil()
	}
	return nil
}

// After undoes everything the scenario changed. Each cleanup is
// attempted even when an earlier one failed.
func (sc *Scenario) After(ctx context.Context) error {
	var merr *multierror.Error

	if sc.backup.Live() {
		if err := sc.backup.Restore(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	sc.backup = nil

	if sc.TempResource != nil {
		if err := sc.TempResource.Remove(); err != nil {
			merr = multierror.Append(merr, err)
		}
		sc.TempResource = nil
	}

	if sc.TempRepo != nil {
		if err := sc.TempRepo.Remove(ctx); err != nil {
			merr = multierror.Append(merr, err)
		}
		sc.TempRepo = nil
	}

	restored := true
	for i := len(sc.protected) - 1; i >= 0; i-- {
		if err := sc.protected[i].Restore(); err != nil {
			merr = multierror.Append(merr, err)
			restored = false
		}
	}
	sc.protected = nil
	if sc.protectDir != "" {
		if restored {
			if err := fsutils.RemoveAllIfExists(sc.protectDir); err != nil {
				merr = multierror.Append(merr, err)
			}
		} else {
			slog.Warn("keeping backups of protected files", "dir", sc.protectDir)
		}
		sc.protectDir = ""
	}

	for i := len(sc.created) - 1; i >= 0; i-- {
		if err := fsutils.RemoveAllIfExists(sc.created[i]); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	sc.created = nil

	if root := sc.Overrides.Installroot; root != "" {
		slog.Debug("removing install root", "root", root)
		if err := fsutils.RemoveAllIfExists(root); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	sc.Overrides = Overrides{}

	return merr.ErrorOrNil()
}

// Options returns the DNF options of the scenario with the given root
// in place of the install root override.
func (sc *Scenario) Options(root string) *manager.Opts {
	return &manager.Opts{
		Config:      sc.Overrides.Config,
		Installroot: root,
		Releasever:  sc.Overrides.Releasever,
		Quiet:       true,
		AssumeYes:   true,
	}
}

// DNFOpts returns the DNF options of the scenario.
func (sc *Scenario) DNFOpts() *manager.Opts {
	return sc.Options(sc.Overrides.Installroot)
}

// GuestRoot returns the install root override.
func (sc *Scenario) GuestRoot() (string, error) {
	if sc.Overrides.Installroot == "" {
		return "", &tempstate.StateError{Op: "guest root", Msg: "guest path not set"}
	}
	return sc.Overrides.Installroot, nil
}

// PrepareInstallRoot installs the base system into the install root
// override, if there is one. An empty releasever means the release
// version override or the guest release version.
func (sc *Scenario) PrepareInstallRoot(ctx context.Context, releasever string) error {
	root := sc.Overrides.Installroot
	if root == "" {
		return nil
	}
	if releasever == "" {
		releasever = sc.Overrides.Releasever
	}
	if releasever == "" {
		releasever = sc.suite.GuestReleasever()
	}
	return tempstate.PrepareInstallRoot(ctx, sc.suite.DNF(), root, releasever, sc.suite.BasePackages())
}

// Protect backs up path so that After restores it, or removes it if it
// does not exist yet. The scenario configuration file is always
// protected. Backups go to a temporary directory of the scenario, never
// next to path.
func (sc *Scenario) Protect(path string) error {
	if path == sc.ConfigPath {
		return nil
	}
	for _, b := range sc.protected {
		if b.Path == path {
			return nil
		}
	}
	if _, err := sc.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if sc.protectDir == "" {
		dir, err := os.MkdirTemp("", "dnf-extra-tests-protect")
		if err != nil {
			return err
		}
		sc.protectDir = dir
	}
	b, err := tempstate.NewConfigBackupIn(path, sc.protectDir)
	if err != nil {
		return err
	}
	sc.protected = append(sc.protected, b)
	return nil
}

// EnsureDir creates dir and remembers what it had to create so that
// After removes it.
func (sc *Scenario) EnsureDir(dir string) (string, error) {
	top, err := fsutils.EnsureDirTracked(dir)
	if err != nil {
		return "", err
	}
	if top != "" {
		sc.created = append(sc.created, top)
	}
	return dir, nil
}

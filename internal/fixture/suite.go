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

// Package fixture owns the state the acceptance suite changes on the
// host: the DNF main configuration, the test repository tree and the
// per-scenario scratch files. Every change it makes is undone by the
// matching teardown hook.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/sys/unix"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/ledger"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/repomd"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/resources"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

type Options struct {
	DNF             *manager.DNF
	RPM             *manager.RPM
	Resources       *resources.Store
	StateDir        string
	GuestReleasever string
	BasePackages    []string
	MetadataExpire  int
}

// Suite is the run-level fixture.
type Suite struct {
	opts Options

	// Main is the configuration DNF reported at the start of the run.
	Main *manager.MainConfig
	// Releasever is the release version of the host.
	Releasever string
	// RepoParentDir holds the copy of the test repository in a
	// subdirectory named after Releasever.
	RepoParentDir string
	RepoDir       string
	// NEVRAs lists the packages of the test repository.
	NEVRAs []repomd.NEVRA

	backup *tempstate.ConfigBackup
}

func NewSuite(opts Options) *Suite {
	if opts.GuestReleasever == "" {
		opts.GuestReleasever = constants.GuestReleasever
	}
	if len(opts.BasePackages) == 0 {
		opts.BasePackages = []string{"system-release"}
	}
	return &Suite{opts: opts}
}

func (s *Suite) DNF() *manager.DNF { return s.opts.DNF }
func (s *Suite) RPM() *manager.RPM { return s.opts.RPM }
func (s *Suite) Resources() *resources.Store { return s.opts.Resources }
func (s *Suite) GuestReleasever() string { return s.opts.GuestReleasever }
func (s *Suite) BasePackages() []string { return s.opts.BasePackages }
func (s *Suite) MetadataExpire() int { return s.opts.MetadataExpire }
func (s *Suite) LedgerPath() string { return ledger.Path(s.opts.StateDir) }
func (s *Suite) ConfigBackup() *tempstate.ConfigBackup { return s.backup }

// BeforeSuite prepares the host for the whole run. On failure whatever
// was already changed is undone.
func (s *Suite) BeforeSuite(ctx context.Context) (err error) {
	if s.backup.Live() {
		return &tempstate.StateError{Op: "before suite", Msg: "suite already set up"}
	}
	if err := s.opts.Resources.Check(); err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if cerr := s.AfterSuite(ctx); cerr != nil {
				err = multierror.Append(err, cerr)
			}
		}
	}()

	s.Main, err = s.opts.DNF.MainConfig(ctx, nil)
	if err != nil {
		return err
	}
	if err := writable(s.Main.ConfigFile); err != nil {
		return fmt.Errorf("DNF configuration %s is not writable: %w", s.Main.ConfigFile, err)
	}

	s.Releasever, err = s.opts.RPM.DetectReleasever(ctx, "")
	if err != nil {
		return err
	}

	s.RepoParentDir, err = os.MkdirTemp("", "dnf-extra-tests")
	if err != nil {
		return err
	}
	s.RepoDir = filepath.Join(s.RepoParentDir, s.Releasever)
	if err := fsutils.CopyTree(s.opts.Resources.RepositoryDir(), s.RepoDir); err != nil {
		return fmt.Errorf("cannot copy test repository: %w", err)
	}
	s.NEVRAs, err = repomd.Load(s.RepoDir)
	if err != nil {
		return err
	}

	s.backup, err = tempstate.NewConfigBackup(s.Main.ConfigFile)
	if err != nil {
		return err
	}
	if err := ledger.Write(s.LedgerPath(), &ledger.Ledger{
		ConfigPath:    s.backup.Path,
		BackupPath:    s.backup.BackupPath,
		ConfigExisted: s.backup.Existed(),
		RepoParentDir: s.RepoParentDir,
		RepoID:        constants.SuiteRepoID,
		PID:           os.Getpid(),
		StartedAt:     time.Now(),
	}); err != nil {
		return err
	}

	baseURL, err := tempstate.ReleaseverURL(s.RepoParentDir)
	if err != nil {
		return err
	}
	section, err := (&tempstate.RepoConfig{
		ID:             constants.SuiteRepoID,
		BaseURL:        baseURL,
		MetadataExpire: s.opts.MetadataExpire,
	}).Section()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Main.ConfigFile, []byte(section), 0o644); err != nil {
		return err
	}

	slog.Info(gotext.Get("Building DNF cache of the test repository"), "repo", constants.SuiteRepoID, "releasever", s.Releasever)
	if _, err := s.opts.DNF.MakeCache(ctx, tempstate.ScopedTo(constants.SuiteRepoID)); err != nil {
		return err
	}
	return nil
}

// AfterSuite undoes BeforeSuite. Every step is attempted.
func (s *Suite) AfterSuite(ctx context.Context) error {
	var merr *multierror.Error

	if s.backup.Live() {
		if _, err := s.opts.DNF.CleanMetadata(ctx, tempstate.ScopedTo(constants.SuiteRepoID)); err != nil {
			slog.Warn(gotext.Get("Cannot clean metadata of the test repository"), "err", err)
		}
		if err := s.backup.Restore(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if s.RepoParentDir != "" {
		if err := fsutils.RemoveAllIfExists(s.RepoParentDir); err != nil {
			merr = multierror.Append(merr, err)
		} else {
			s.RepoParentDir = ""
			s.RepoDir = ""
		}
	}
	if merr.ErrorOrNil() == nil {
		if err := ledger.Remove(s.LedgerPath()); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// writable reports whether path, or its directory when path does not
// exist, can be written by this process.
func writable(path string) error {
	err := unix.Access(path, unix.W_OK)
	if errors.Is(err, unix.ENOENT) {
		return unix.Access(filepath.Dir(path), unix.W_OK)
	}
	return err
}

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
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

func (st *steps) manageRoot(ctx context.Context, description string) (err error) {
	root, err := st.root(description)
	if err != nil {
		return err
	}

	pkg := st.store().PackagePath(constants.TestPackageFile)
	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	if _, err := st.dnf().Install(ctx, st.sc.DNFOpts(), pkg); err != nil {
		return err
	}
	defer func() {
		if _, rerr := st.dnf().Remove(ctx, st.removeOpts(st.sc.Overrides.Installroot), constants.TestPackage); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()

	expected, err := st.rpm().QueryFile(ctx, pkg)
	if err != nil {
		return err
	}
	installed, err := st.rpm().QueryInstalled(ctx, root, constants.TestPackage)
	if err != nil {
		return err
	}
	return assertTrue(slices.Contains(installed, expected), fmt.Sprintf("%s root not managed", description))
}

// signedRepo is a repository of the test packages that requires valid
// signatures.
func (st *steps) signedRepo() (*tempstate.RepoConfig, error) {
	baseURL, err := tempstate.FileURL(st.store().RepositoryDir())
	if err != nil {
		return nil, err
	}
	return &tempstate.RepoConfig{
		ID:       constants.RepoID,
		BaseURL:  baseURL,
		GPGCheck: true,
		Dir:      st.suite.Main.ReposDir,
		Cleaner:  st.dnf(),
	}, nil
}

func (st *steps) keyID() (string, error) {
	return st.store().KeyID()
}

func (st *steps) packagesVerified(ctx context.Context, packages, keys string) (err error) {
	pkgRoot, err := st.root(packages)
	if err != nil {
		return err
	}
	keyRoot, err := st.root(keys)
	if err != nil {
		return err
	}
	keyID, err := st.keyID()
	if err != nil {
		return err
	}

	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	if err := st.rpm().Import(ctx, keyRoot, st.store().Path(constants.GPGKeyName)); err != nil {
		return err
	}
	defer func() {
		if kerr := st.rpm().EraseKey(ctx, keyRoot, keyID); kerr != nil {
			err = multierror.Append(err, kerr).ErrorOrNil()
		}
	}()

	repo, err := st.signedRepo()
	if err != nil {
		return err
	}
	err = tempstate.WithRepoConfig(ctx, repo, func() error {
		_, err := st.dnf().Install(ctx, st.sc.Options(pkgRoot), constants.SignedPackage)
		return err
	})
	if err != nil {
		return err
	}
	_, err = st.dnf().Remove(ctx, st.removeOpts(pkgRoot), constants.SignedPackage)
	return err
}

// packagesRejected checks that installing the signed package fails
// while its key is absent from the key root.
func (st *steps) packagesRejected(ctx context.Context, packages, keys string) error {
	pkgRoot, err := st.root(packages)
	if err != nil {
		return err
	}
	keyRoot, err := st.root(keys)
	if err != nil {
		return err
	}
	keyID, err := st.keyID()
	if err != nil {
		return err
	}

	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	if err := st.rpm().EraseKey(ctx, keyRoot, keyID); err == nil {
		slog.Warn(gotext.Get("Test key was imported before the scenario, removed it"), "key", keyID)
	}

	repo, err := st.signedRepo()
	if err != nil {
		return err
	}
	var installErr error
	err = tempstate.WithRepoConfig(ctx, repo, func() error {
		_, installErr = st.dnf().Install(ctx, st.sc.Options(pkgRoot), constants.SignedPackage)
		return nil
	})
	if err != nil {
		return err
	}

	if installErr == nil {
		_, rerr := st.dnf().Remove(ctx, st.removeOpts(pkgRoot), constants.SignedPackage)
		return multierror.Append(assertTrue(false, "unverified package installed"), rerr).ErrorOrNil()
	}
	var failed *manager.CommandFailedError
	return check(func(t assert.TestingT) bool {
		return assert.True(t, errors.As(installErr, &failed), "installation did not fail with an exit code: %v", installErr)
	})
}

func (st *steps) keyImported(ctx context.Context, shortID, dest string) (err error) {
	if shortID == constants.GPGKeyName {
		if shortID, err = st.keyID(); err != nil {
			return err
		}
	}
	keyRoot, err := st.root(dest)
	if err != nil {
		return err
	}

	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	if _, err := st.dnf().Install(ctx, st.sc.DNFOpts(), constants.SignedPackage); err != nil {
		return err
	}
	defer func() {
		if _, rerr := st.dnf().Remove(ctx, st.removeOpts(st.sc.Overrides.Installroot), constants.SignedPackage); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()

	if err := st.rpm().EraseKey(ctx, keyRoot, shortID); err != nil {
		return fmt.Errorf("key %s not imported to the %s: %w", shortID, dest, err)
	}
	return nil
}

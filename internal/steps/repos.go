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
	"os"
	"path/filepath"
	"regexp"

	"github.com/hashicorp/go-multierror"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

var quotedReleasever = regexp.MustCompile(`^“(.+?)”$`)

// testRepo is the scratch repository pointing at baseURL.
func (st *steps) testRepo(baseURL, dir string) *tempstate.RepoConfig {
	if dir == "" {
		dir = st.suite.Main.ReposDir
	}
	return &tempstate.RepoConfig{
		ID:      constants.RepoID,
		BaseURL: baseURL,
		Dir:     dir,
		Cleaner: st.dnf(),
	}
}

func (st *steps) configLoaded(ctx context.Context, expected string) error {
	var path string
	switch expected {
	case "default":
		path = st.sc.ConfigPath
	case "guest's default":
		root, err := st.sc.GuestRoot()
		if err != nil {
			return err
		}
		path = fsutils.Chrooted(root, st.sc.ConfigPath)
	default:
		path = expected
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	if err := st.sc.Protect(path); err != nil {
		return err
	}

	baseURL, err := tempstate.FileURL(st.store().RepositoryDir())
	if err != nil {
		return err
	}
	section, err := st.testRepo(baseURL, "").Section()
	if err != nil {
		return err
	}
	if err := fsutils.AppendFile(path, []byte(section)); err != nil {
		return err
	}

	return st.repoEqualsDir(ctx, constants.RepoID, st.store().RepositoryDir(), "config not loaded")
}

func (st *steps) repositoryAvailable(ctx context.Context, repoID, path string) (err error) {
	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}
	if err := fsutils.RemoveAllIfExists(path); err != nil {
		return err
	}
	if _, err := st.sc.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := fsutils.CopyTree(st.store().RepositoryDir(), path); err != nil {
		return err
	}
	defer func() {
		if rerr := fsutils.RemoveAllIfExists(path); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()

	return st.repoEqualsDir(ctx, repoID, path, "repo not available")
}

func (st *steps) reposDirLoaded(ctx context.Context, dir string) error {
	if dir == "default directory" {
		dir = ""
	} else if _, err := st.sc.EnsureDir(dir); err != nil {
		return err
	}

	if err := st.sc.PrepareInstallRoot(ctx, ""); err != nil {
		return err
	}

	baseURL, err := tempstate.FileURL(st.store().RepositoryDir())
	if err != nil {
		return err
	}
	return tempstate.WithRepoConfig(ctx, st.testRepo(baseURL, dir), func() error {
		return st.repoEqualsDir(ctx, constants.RepoID, st.store().RepositoryDir(), ".repo not loaded")
	})
}

func (st *steps) releaseverSet(ctx context.Context, expected string) (err error) {
	var releasever string
	switch {
	case expected == "the host's release version":
		releasever = st.suite.Releasever
	case expected == "the guest's release version":
		releasever = st.suite.GuestReleasever()
	case quotedReleasever.MatchString(expected):
		releasever = quotedReleasever.FindStringSubmatch(expected)[1]
	default:
		return unsupported("expectation", expected)
	}

	parent, err := os.MkdirTemp("", "dnf-extra-tests")
	if err != nil {
		return err
	}
	defer func() {
		if rerr := fsutils.RemoveAllIfExists(parent); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()

	repoDir := filepath.Join(parent, releasever)
	if err := fsutils.CopyTree(st.store().RepositoryDir(), repoDir); err != nil {
		return err
	}
	baseURL, err := tempstate.ReleaseverURL(parent)
	if err != nil {
		return err
	}

	if err := st.sc.PrepareInstallRoot(ctx, st.suite.GuestReleasever()); err != nil {
		return err
	}
	return tempstate.WithRepoConfig(ctx, st.testRepo(baseURL, ""), func() error {
		return st.repoEqualsDir(ctx, constants.RepoID, repoDir, "$RELEASEVER not correct")
	})
}

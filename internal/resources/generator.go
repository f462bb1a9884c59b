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

package resources

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/leonelquinteros/gotext"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
)

// Generator fills a store with the fixtures that are produced rather
// than written by hand: the key pair, the packages, the repository
// metadata and the mirror files.
type Generator struct {
	Store      *Store
	Runner     manager.Runner
	Createrepo string
	// Force regenerates fixtures that already exist.
	Force bool

	now func() time.Time
}

func NewGenerator(store *Store, runner manager.Runner, createrepo string) *Generator {
	return &Generator{
		Store:      store,
		Runner:     runner,
		Createrepo: createrepo,
		now:        time.Now,
	}
}

func (g *Generator) needs(name string) (bool, error) {
	if g.Force {
		return true, nil
	}
	ok, err := fsutils.Exists(g.Store.Path(name))
	return !ok, err
}

func (g *Generator) Generate(ctx context.Context) error {
	repoDir := g.Store.RepositoryDir()
	if err := fsutils.EnsureDir(repoDir); err != nil {
		return err
	}

	privPath := g.Store.Path(constants.GPGPrivateKeyName)
	need, err := g.needs(constants.GPGPrivateKeyName)
	if err != nil {
		return err
	}
	if need {
		slog.Info(gotext.Get("Generating GPG key"))
		pair, err := GenerateKey()
		if err != nil {
			return err
		}
		if err := pair.WriteTo(privPath, g.Store.Path(constants.GPGKeyName)); err != nil {
			return err
		}
	}

	rebuilt := false
	for _, spec := range []struct {
		file string
		pkg  PackageSpec
	}{
		{constants.TestPackageFile, PackageSpec{Name: constants.TestPackage}},
		{constants.SignedPackageFile, PackageSpec{Name: constants.SignedPackage, KeyFile: privPath}},
	} {
		need, err := g.needs(filepath.Join(constants.RepositoryDir, spec.file))
		if err != nil {
			return err
		}
		if !need {
			continue
		}
		slog.Info(gotext.Get("Building package"), "name", spec.pkg.Name)
		path, err := BuildPackage(spec.pkg, repoDir)
		if err != nil {
			return err
		}
		slog.Debug("package built", "path", path)
		rebuilt = true
	}

	need, err = g.needs(filepath.Join(constants.RepositoryDir, "repodata", "repomd.xml"))
	if err != nil {
		return err
	}
	if need || rebuilt {
		slog.Info(gotext.Get("Creating repository metadata"), "dir", repoDir)
		if _, err := g.Runner.Run(ctx, g.Createrepo, "--quiet", "--update", repoDir); err != nil {
			return err
		}
		rebuilt = true
	}

	if rebuilt || g.Force {
		if err := WriteMetalink(g.Store.Path(constants.MetalinkName), repoDir, g.now()); err != nil {
			return err
		}
	} else if err := g.ensure(constants.MetalinkName, func(p string) error {
		return WriteMetalink(p, repoDir, g.now())
	}); err != nil {
		return err
	}

	return g.ensure(constants.MirrorlistName, func(p string) error {
		return WriteMirrorlist(p, repoDir)
	})
}

func (g *Generator) ensure(name string, write func(path string) error) error {
	need, err := g.needs(name)
	if err != nil || !need {
		return err
	}
	path := g.Store.Path(name)
	slog.Info(gotext.Get("Writing mirror file"), "path", path)
	if err := write(path); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

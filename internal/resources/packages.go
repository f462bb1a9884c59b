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
	"fmt"
	"os"
	"path/filepath"

	"github.com/goreleaser/nfpm/v2"
	"github.com/goreleaser/nfpm/v2/files"
	_ "github.com/goreleaser/nfpm/v2/rpm"
)

// PackageSpec describes one test package.
type PackageSpec struct {
	Name string
	// KeyFile is the armored private key to sign with. Empty means
	// unsigned.
	KeyFile string
}

func (p PackageSpec) info(content string) *nfpm.Info {
	info := &nfpm.Info{
		Name:          p.Name,
		Arch:          "all",
		Platform:      "linux",
		Version:       "1",
		VersionSchema: "none",
		Release:       "1",
		Maintainer:    "dnf-extra-tests <dnf-extra-tests@localhost>",
		Description:   "A package used by the dnf-extra-tests suite.",
		License:       "GPLv3+",
		Overridables: nfpm.Overridables{
			Contents: files.Contents{
				{
					Source:      content,
					Destination: filepath.Join("/usr/share/dnf-extra-tests", p.Name),
					FileInfo:    &files.ContentFileInfo{Mode: 0o644},
				},
			},
		},
	}
	info.RPM.Summary = "dnf-extra-tests " + p.Name
	info.RPM.Group = "Development/Tools"
	if p.KeyFile != "" {
		info.RPM.Signature.KeyFile = p.KeyFile
	}
	return info
}

// BuildPackage builds the rpm into dir and returns its path.
func BuildPackage(spec PackageSpec, dir string) (string, error) {
	work, err := os.MkdirTemp("", "dnf-extra-tests-pkg")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(work)

	content := filepath.Join(work, spec.Name)
	if err := os.WriteFile(content, []byte(spec.Name+"\n"), 0o644); err != nil {
		return "", err
	}

	info := spec.info(content)
	packager, err := nfpm.Get("rpm")
	if err != nil {
		return "", err
	}

	pkgPath := filepath.Join(dir, packager.ConventionalFileName(info))
	pkgFile, err := os.Create(pkgPath)
	if err != nil {
		return "", err
	}
	defer pkgFile.Close()

	if err := packager.Package(info, pkgFile); err != nil {
		os.Remove(pkgPath)
		return "", fmt.Errorf("cannot package %s: %w", spec.Name, err)
	}
	return pkgPath, nil
}

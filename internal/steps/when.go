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
	"net/url"
	"path"
	"path/filepath"

	"github.com/cucumber/godog"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

func (st *steps) defaultConfiguration() error {
	return nil
}

func (st *steps) commandLineConfiguration(table *godog.Table) error {
	rows, err := optionRows(table)
	if err != nil {
		return err
	}
	return decodeOverrides(rows, &st.sc.Overrides)
}

func (st *steps) defaultConfigConfiguration(table *godog.Table) error {
	rows, err := optionRows(table)
	if err != nil {
		return err
	}
	section, err := tempstate.MainSection(rows)
	if err != nil {
		return err
	}
	return fsutils.AppendFile(st.sc.ConfigPath, []byte(section))
}

// resourceNames are the resources a URL of the given type must point
// at.
var resourceNames = map[string]string{
	"metalink":   constants.MetalinkName,
	"mirrorlist": constants.MirrorlistName,
	"gpgkey":     constants.GPGKeyName,
}

func (st *steps) repository(repoID, urlType, rawURL string) error {
	if repoID != constants.RepoID {
		return unsupported("ID", repoID)
	}
	if st.sc.TempRepo != nil {
		return unsupported("multiple repos", repoID)
	}

	repo := &tempstate.RepoConfig{
		ID:      repoID,
		Dir:     st.suite.Main.ReposDir,
		Cleaner: st.dnf(),
	}

	switch urlType {
	case "baseurl":
		repo.BaseURL = rawURL
	case "metalink", "mirrorlist", "gpgkey":
		dir, err := resourceDir(rawURL, resourceNames[urlType])
		if err != nil {
			return err
		}
		if st.sc.TempResource != nil {
			return unsupported("multiple resources", rawURL)
		}
		if _, err := st.sc.EnsureDir(dir); err != nil {
			return err
		}
		res := tempstate.NewResourceCopy(st.store().Dir, resourceNames[urlType], dir)
		if err := res.Create(); err != nil {
			return err
		}
		st.sc.TempResource = res

		switch urlType {
		case "metalink":
			repo.Metalink = rawURL
		case "mirrorlist":
			repo.MirrorList = rawURL
		case "gpgkey":
			baseURL, err := tempstate.FileURL(st.store().RepositoryDir())
			if err != nil {
				return err
			}
			repo.BaseURL = baseURL
			repo.GPGCheck = true
			repo.GPGKey = rawURL
		}
	default:
		return unsupported("type", urlType)
	}

	if err := repo.Add(); err != nil {
		return err
	}
	st.sc.TempRepo = repo
	return nil
}

// resourceDir validates a plain file:// URL of a resource called name
// and returns the directory it lives in.
func resourceDir(rawURL, name string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" || u.Host != "" || u.User != nil || u.RawQuery != "" || u.Fragment != "" || u.Opaque != "" {
		return "", unsupported("url", rawURL)
	}
	if path.Base(u.Path) != name {
		return "", unsupported("name", path.Base(u.Path))
	}
	return filepath.FromSlash(path.Dir(u.Path)), nil
}

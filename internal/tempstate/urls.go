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

package tempstate

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/purell"
)

const urlFlags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveDuplicateSlashes

// FileURL converts an absolute path to a file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return purell.NormalizeURLString(u.String(), urlFlags)
}

// ReleaseverURL returns the URL of parent/$RELEASEVER with the variable
// left unquoted for DNF to substitute.
func ReleaseverURL(parent string) (string, error) {
	base, err := FileURL(parent)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(base, "/") + "/$RELEASEVER", nil
}

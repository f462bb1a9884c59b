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

package translations

import (
	"embed"
	"io/fs"
	"log/slog"
	"path"

	"github.com/jeandeaual/go-locale"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

//go:embed po
var poFS embed.FS

// catalogue returns the language of the first of locales with an
// embedded catalogue.
func catalogue(locales []string) (string, bool) {
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		base, _ := tag.Base()
		lang := base.String()
		if _, err := fs.Stat(poFS, path.Join("po", lang, "default.po")); err == nil {
			return lang, true
		}
	}
	return "", false
}

// Setup loads the catalogue of the first preferred language that has
// one. Messages stay in English otherwise.
func Setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		slog.Debug("unable to detect language", "err", err)
		return
	}

	lang, ok := catalogue(locales)
	if !ok {
		return
	}

	loc := gotext.NewLocaleFSWithPath(lang, &poFS, "po")
	loc.SetDomain("default")
	gotext.SetLocales([]*gotext.Locale{loc})
}

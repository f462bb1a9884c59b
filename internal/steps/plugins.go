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
	"bytes"
	"context"
	"strings"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

const hostPrefix = "host's "

// hostPath resolves "host's PATH" to PATH and the default phrase to def.
func hostPath(phrase, defaultPhrase, def string) (string, error) {
	if phrase == defaultPhrase {
		return def, nil
	}
	if p, ok := strings.CutPrefix(phrase, hostPrefix); ok && p != "" {
		return p, nil
	}
	return "", unsupported("path", phrase)
}

// cleanWithResources runs dnf clean metadata while the copies exist and
// returns its output.
func (st *steps) cleanWithResources(ctx context.Context, copies []*tempstate.ResourceCopy) ([]byte, error) {
	for _, c := range copies {
		if _, err := st.sc.EnsureDir(c.Dir); err != nil {
			return nil, err
		}
	}
	var out []byte
	err := tempstate.WithResourceCopies(copies, func() error {
		var err error
		out, err = st.dnf().CleanMetadata(ctx, st.sc.DNFOpts())
		return err
	})
	return out, err
}

func (st *steps) pluginsLoaded(ctx context.Context, phrase string) error {
	dir, err := hostPath(phrase, "the host's default path", st.suite.Main.PluginPath)
	if err != nil {
		return err
	}
	out, err := st.cleanWithResources(ctx, []*tempstate.ResourceCopy{
		tempstate.NewResourceCopy(st.store().Dir, constants.PluginName, dir),
	})
	if err != nil {
		return err
	}
	return assertTrue(bytes.Contains(out, []byte(constants.PluginOutput)), "plugin not loaded")
}

func (st *steps) pluginsConfPath(ctx context.Context, phrase string) error {
	dir, err := hostPath(phrase, "the host's default", st.suite.Main.PluginConfPath)
	if err != nil {
		return err
	}
	out, err := st.cleanWithResources(ctx, []*tempstate.ResourceCopy{
		tempstate.NewResourceCopy(st.store().Dir, constants.PluginName, st.suite.Main.PluginPath),
		tempstate.NewResourceCopy(st.store().Dir, constants.PluginConfName, dir),
	})
	if err != nil {
		return err
	}
	return assertTrue(bytes.Contains(out, []byte(constants.PluginConfOutput)), "path not set")
}

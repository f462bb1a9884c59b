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
	"errors"
	"strings"

	"github.com/cucumber/godog"
	"github.com/mitchellh/mapstructure"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fixture"
)

var errNoTable = errors.New("table not found")

// optionRows reads a two column Option/Value table.
func optionRows(table *godog.Table) ([][2]string, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, errNoTable
	}

	head := table.Rows[0].Cells
	if len(head) != 2 || head[0].Value != "Option" || head[1].Value != "Value" {
		return nil, unsupported("configuration format", headings(table))
	}

	rows := make([][2]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return nil, unsupported("configuration format", headings(table))
		}
		rows = append(rows, [2]string{row.Cells[0].Value, row.Cells[1].Value})
	}
	return rows, nil
}

func headings(table *godog.Table) string {
	cells := make([]string, 0, len(table.Rows[0].Cells))
	for _, c := range table.Rows[0].Cells {
		cells = append(cells, c.Value)
	}
	return strings.Join(cells, "|")
}

// decodeOverrides applies the rows to the overrides. Only --config,
// --releasever and --installroot are known.
func decodeOverrides(rows [][2]string, into *fixture.Overrides) error {
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		if !knownOption(r[0]) {
			return unsupported("configuration", r[0])
		}
		values[r[0]] = r[1]
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      into,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

func knownOption(name string) bool {
	switch name {
	case "--config", "--releasever", "--installroot":
		return true
	}
	return false
}

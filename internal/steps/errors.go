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

import "fmt"

// UnsupportedError is returned for a table option, URL, name or phrase
// a step does not know.
type UnsupportedError struct {
	What  string
	Value string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not supported: %q", e.What, e.Value)
}

func unsupported(what, value string) error {
	return &UnsupportedError{What: what, Value: value}
}

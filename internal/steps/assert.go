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
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// asserter collects testify failures as a step error.
type asserter struct {
	err error
}

func (a *asserter) Errorf(format string, args ...interface{}) {
	a.err = fmt.Errorf(format, args...)
}

func check(fn func(t assert.TestingT) bool) error {
	var a asserter
	fn(&a)
	return a.err
}

// assertTrue fails with msg when cond is false.
func assertTrue(cond bool, msg string) error {
	if cond {
		return nil
	}
	return fmt.Errorf("assertion failed: %s", msg)
}

// assertSameList fails with a diff when the listings differ.
func assertSameList(expected, actual []string, msg string) error {
	if diff := cmp.Diff(expected, actual); diff != "" {
		return fmt.Errorf("assertion failed: %s (-expected +actual):\n%s", msg, strings.TrimRight(diff, "\n"))
	}
	return nil
}

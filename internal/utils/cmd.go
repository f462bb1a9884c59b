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

package utils

import (
	"os"

	"github.com/leonelquinteros/gotext"
	"github.com/urfave/cli/v2"
)

func IsNotRoot() bool {
	return os.Geteuid() != 0
}

// RootNeededAction refuses to run f unless the process is root. The
// suite rewrites the DNF configuration and installs packages.
func RootNeededAction(f cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if IsNotRoot() {
			return cli.Exit(gotext.Get("You need to be root to perform this action"), 1)
		}
		return f(ctx)
	}
}

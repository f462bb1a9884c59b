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

package main

import (
	"errors"

	"github.com/leonelquinteros/gotext"
	"github.com/urfave/cli/v2"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils"
	appbuilder "gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils/app_builder"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fixture"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/ledger"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/utils"
)

func RestoreCmd() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: gotext.Get("Undo the changes of an interrupted run"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: gotext.Get("Restore even if the interrupted run still seems alive"),
			},
		},
		Action: utils.RootNeededAction(func(c *cli.Context) error {
			deps, err := appbuilder.
				New(c.Context).
				WithConfig(c.String("config")).
				WithManagers().
				Build()
			if err != nil {
				return err
			}

			err = fixture.Recover(c.Context, deps.DNF, ledger.Path(deps.Cfg.StateDir()), c.Bool("force"))
			switch {
			case err == nil:
				return nil
			case errors.Is(err, ledger.ErrNoLedger):
				return cliutils.FormatCliExit(gotext.Get("Nothing to restore"), nil)
			}
			return cliutils.FormatCliExit(gotext.Get("Error restoring state"), err)
		}),
	}
}

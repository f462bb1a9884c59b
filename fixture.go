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
	"github.com/leonelquinteros/gotext"
	"github.com/urfave/cli/v2"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils"
	appbuilder "gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils/app_builder"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/resources"
)

func FixtureCmd() *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: gotext.Get("Generate the missing files of the resource store"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: gotext.Get("Regenerate files that already exist"),
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := appbuilder.
				New(c.Context).
				WithConfig(c.String("config")).
				WithManagers().
				WithResources().
				Build()
			if err != nil {
				return err
			}

			g := resources.NewGenerator(deps.Resources, deps.Runner, deps.Cfg.CreaterepoCommand())
			g.Force = c.Bool("force")
			if err := g.Generate(c.Context); err != nil {
				return cliutils.FormatCliExit(gotext.Get("Error generating fixtures"), err)
			}
			if err := deps.Resources.Check(); err != nil {
				return cliutils.FormatCliExit(gotext.Get("Resource store is incomplete"), err)
			}
			return nil
		},
	}
}

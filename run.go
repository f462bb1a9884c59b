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
	"os"

	"github.com/leonelquinteros/gotext"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils"
	appbuilder "gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils/app_builder"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/steps"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/utils"
)

func RunCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     gotext.Get("Run the acceptance scenarios against the DNF of this host"),
		ArgsUsage: gotext.Get("[feature paths...]"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "pretty",
				Usage:   gotext.Get("Output format of the scenario runner"),
			},
			&cli.StringFlag{
				Name:    "tags",
				Aliases: []string{"t"},
				Usage:   gotext.Get("Run only the scenarios matching the tag expression"),
			},
			&cli.BoolFlag{
				Name:  "stop-on-failure",
				Usage: gotext.Get("Stop at the first failed scenario"),
			},
			&cli.BoolFlag{
				Name:  "strict",
				Value: true,
				Usage: gotext.Get("Fail on undefined or pending steps"),
			},
		},
		Action: utils.RootNeededAction(func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				paths = []string{"features"}
			}

			deps, err := appbuilder.
				New(c.Context).
				WithConfig(c.String("config")).
				WithManagers().
				WithResources().
				WithSuite().
				Build()
			if err != nil {
				return err
			}

			err = steps.Run(c.Context, deps.Suite, steps.RunOptions{
				Format:        c.String("format"),
				Paths:         paths,
				Tags:          c.String("tags"),
				StopOnFailure: c.Bool("stop-on-failure"),
				Strict:        c.Bool("strict"),
				NoColors:      !isatty.IsTerminal(os.Stdout.Fd()),
				Output:        os.Stdout,
			})
			switch {
			case err == nil:
				return nil
			case errors.Is(err, steps.ErrFailed):
				return cliutils.SilentExit(1)
			case errors.Is(err, steps.ErrOptions):
				return cliutils.FormatCliExitWithCode(gotext.Get("Invalid options"), err, 2)
			}
			return cliutils.FormatCliExit(gotext.Get("Error running acceptance tests"), err)
		}),
	}
}

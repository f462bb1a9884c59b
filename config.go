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
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils"
	appbuilder "gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils/app_builder"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/config"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/highlight"
)

func ConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: gotext.Get("Print the effective harness configuration"),
		Subcommands: []*cli.Command{
			{
				Name:  "keys",
				Usage: gotext.Get("List the configuration keys"),
				Action: func(c *cli.Context) error {
					for _, k := range config.Keys() {
						fmt.Println(k)
					}
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := appbuilder.
				New(c.Context).
				WithConfig(c.String("config")).
				Build()
			if err != nil {
				return err
			}

			content, err := deps.Cfg.ToTOML()
			if err != nil {
				return cliutils.FormatCliExit(gotext.Get("Error rendering config"), err)
			}
			return highlight.Write(os.Stdout, content, "toml", isatty.IsTerminal(os.Stdout.Fd()))
		},
	}
}

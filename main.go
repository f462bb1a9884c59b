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
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonelquinteros/gotext"
	"github.com/urfave/cli/v2"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/config"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/logger"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/translations"
)

func VersionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: gotext.Get("Print the current dnf-extra-tests version and exit"),
		Action: func(ctx *cli.Context) error {
			println(constants.Version)
			return nil
		},
	}
}

func GetApp() *cli.App {
	return &cli.App{
		Name:  "dnf-extra-tests",
		Usage: gotext.Get("Acceptance tests for the DNF package manager"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{constants.EnvPrefix + "CONFIG"},
				Usage:   gotext.Get("Path to the harness configuration file"),
			},
		},
		Commands: []*cli.Command{
			RunCmd(),
			RestoreCmd(),
			FixtureCmd(),
			StepsCmd(),
			ConfigCmd(),
			VersionCmd(),
		},
		EnableBashCompletion: true,
		ExitErrHandler: func(cCtx *cli.Context, err error) {
			cliutils.HandleExitCoder(err)
		},
	}
}

func main() {
	log := logger.SetupDefault()
	log.SetLevel(logger.ParseLevel(os.Getenv(constants.EnvPrefix + "LOG_LEVEL")))
	translations.Setup()

	ctx := context.Background()

	cfg := config.New()
	if err := cfg.Load(); err != nil {
		slog.Error(gotext.Get("Error loading config"), "err", err)
		os.Exit(1)
	}
	log.SetLevel(logger.ParseLevel(cfg.LogLevel()))

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.HelpFlag.(*cli.BoolFlag).Usage = gotext.Get("Show help")

	if err := GetApp().RunContext(ctx, os.Args); err != nil {
		slog.Error(gotext.Get("Error while running app"), "err", err)
		os.Exit(1)
	}
}

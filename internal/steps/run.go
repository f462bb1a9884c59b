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
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cucumber/godog"
	"github.com/hashicorp/go-multierror"
	"github.com/leonelquinteros/gotext"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fixture"
)

// ErrFailed is returned by Run when a scenario failed.
var ErrFailed = errors.New("acceptance tests failed")

// ErrOptions is returned by Run when godog rejected the options.
var ErrOptions = errors.New("invalid test run options")

type RunOptions struct {
	Format        string
	Paths         []string
	Tags          string
	StopOnFailure bool
	Strict        bool
	NoColors      bool
	Output        io.Writer
	// TestingT reports scenarios as subtests when set.
	TestingT *testing.T
}

func (o RunOptions) godogOptions(ctx context.Context) *godog.Options {
	format := o.Format
	if format == "" {
		format = "pretty"
	}
	return &godog.Options{
		Format:         format,
		Paths:          o.Paths,
		Tags:           o.Tags,
		StopOnFailure:  o.StopOnFailure,
		Strict:         o.Strict,
		NoColors:       o.NoColors,
		Output:         o.Output,
		TestingT:       o.TestingT,
		DefaultContext: ctx,
		// Scenarios share the host configuration.
		Concurrency: 1,
	}
}

// Run prepares the host, runs the features and restores the host.
func Run(ctx context.Context, suite *fixture.Suite, opts RunOptions) (err error) {
	if err := suite.BeforeSuite(ctx); err != nil {
		return err
	}
	defer func() {
		if aerr := suite.AfterSuite(context.WithoutCancel(ctx)); aerr != nil {
			err = multierror.Append(err, aerr).ErrorOrNil()
		}
	}()

	ts := godog.TestSuite{
		Name: "dnf-extra-tests",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			InitializeScenario(suite, sc)
		},
		Options: opts.godogOptions(ctx),
	}
	status := ts.Run()

	slog.Debug("godog finished", "status", status)
	switch status {
	case 0:
		return nil
	case 2:
		return ErrOptions
	}
	slog.Error(gotext.Get("Some scenarios failed"))
	return ErrFailed
}

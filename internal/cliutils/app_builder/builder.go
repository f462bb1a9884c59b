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

package appbuilder

import (
	"context"
	"errors"

	"github.com/leonelquinteros/gotext"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/cliutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/config"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fixture"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/resources"
)

type AppDeps struct {
	Cfg       *config.HarnessConfig
	Runner    manager.Runner
	DNF       *manager.DNF
	RPM       *manager.RPM
	Resources *resources.Store
	Suite     *fixture.Suite
}

type AppBuilder struct {
	deps AppDeps
	err  error
	ctx  context.Context
}

func New(ctx context.Context) *AppBuilder {
	return &AppBuilder{ctx: ctx}
}

func (b *AppBuilder) UseConfig(cfg *config.HarnessConfig) *AppBuilder {
	if b.err != nil {
		return b
	}
	b.deps.Cfg = cfg
	return b
}

// WithConfig loads the harness configuration. A non-empty path replaces
// the user configuration file and must exist.
func (b *AppBuilder) WithConfig(path string) *AppBuilder {
	if b.err != nil {
		return b
	}

	cfg := config.New()
	if path != "" {
		cfg.UseFile(path)
	}
	if err := cfg.Load(); err != nil {
		b.err = cliutils.FormatCliExit(gotext.Get("Error loading config"), err)
		return b
	}

	b.deps.Cfg = cfg
	return b
}

// UseRunner replaces the process runner, for tests.
func (b *AppBuilder) UseRunner(r manager.Runner) *AppBuilder {
	if b.err != nil {
		return b
	}
	b.deps.Runner = r
	return b
}

func (b *AppBuilder) WithManagers() *AppBuilder {
	if b.err != nil {
		return b
	}

	cfg := b.deps.Cfg
	if cfg == nil {
		b.err = errors.New("config is required before initializing managers")
		return b
	}
	if b.deps.Runner == nil {
		b.deps.Runner = manager.NewExecRunner()
	}

	extra, err := cfg.DNFArgs()
	if err != nil {
		b.err = cliutils.FormatCliExit(gotext.Get("Error parsing DNF arguments"), err)
		return b
	}

	b.deps.DNF = manager.NewDNF(b.deps.Runner, cfg.DNFCommand()).
		WithExtraArgs(extra...).
		WithDumpArgs(cfg.DumpConfigArgs()...)
	b.deps.RPM = manager.NewRPM(b.deps.Runner, cfg.RPMCommand())
	return b
}

func (b *AppBuilder) WithResources() *AppBuilder {
	if b.err != nil {
		return b
	}

	cfg := b.deps.Cfg
	if cfg == nil {
		b.err = errors.New("config is required before initializing resources")
		return b
	}

	store, err := resources.NewStore(cfg.ResourcesDir())
	if err != nil {
		b.err = cliutils.FormatCliExit(gotext.Get("Error opening resource store"), err)
		return b
	}
	b.deps.Resources = store
	return b
}

func (b *AppBuilder) WithSuite() *AppBuilder {
	if b.err != nil {
		return b
	}

	cfg := b.deps.Cfg
	if cfg == nil || b.deps.DNF == nil || b.deps.Resources == nil {
		b.err = errors.New("config, managers and resources are required before initializing the suite")
		return b
	}

	b.deps.Suite = fixture.NewSuite(fixture.Options{
		DNF:             b.deps.DNF,
		RPM:             b.deps.RPM,
		Resources:       b.deps.Resources,
		StateDir:        cfg.StateDir(),
		GuestReleasever: cfg.GuestReleasever(),
		BasePackages:    cfg.BasePackages(),
		MetadataExpire:  cfg.MetadataExpire(),
	})
	return b
}

func (b *AppBuilder) Build() (*AppDeps, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &b.deps, nil
}

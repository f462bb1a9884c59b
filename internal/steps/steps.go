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

// Package steps binds the sentences of the feature files to the
// fixture and to the DNF and rpm executables.
package steps

import (
	"context"

	"github.com/cucumber/godog"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fixture"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/resources"
)

type steps struct {
	suite *fixture.Suite
	sc    *fixture.Scenario
}

type stepDef struct {
	pattern string
	fn      interface{}
}

func (st *steps) defs() []stepDef {
	return []stepDef{
		{`^I execute DNF with the default configuration$`, st.defaultConfiguration},
		{`^I execute DNF with the following configuration on command line$`, st.commandLineConfiguration},
		{`^I execute DNF with the following configuration in the default config$`, st.defaultConfigConfiguration},
		{`^I execute DNF with a repository (\S+) of which (\S+) is (\S+)$`, st.repository},

		{`^I should manage the (.+) root$`, st.manageRoot},
		{`^I should have the (\S+) packages being verified using the (\S+) keys$`, st.packagesVerified},
		{`^I should have the (\S+) packages rejected without the (\S+) keys$`, st.packagesRejected},
		{`^I should have the (.+) configuration file loaded$`, st.configLoaded},
		{`^I should have the content of the repository (\S+) at host's (.+) being available$`, st.repositoryAvailable},
		{`^I should have a GPG key (\S+) imported to the (\S+) and used to verify packages$`, st.keyImported},
		{`^I should have the \.repo files loaded from the host's (.+)$`, st.reposDirLoaded},
		{`^I should have the events logged (.+)$`, st.eventsLogged},
		{`^I should have the metadata cached (.+)$`, st.metadataCached},
		{`^I should have the tracking information stored (.+)$`, st.trackingStored},
		{`^I should have the \$RELEASEVER configuration variable set to (.+)$`, st.releaseverSet},
		{`^I should have the plugins at (.+) being loaded$`, st.pluginsLoaded},
		{`^I should have the plugins configuration path set to (.+)$`, st.pluginsConfPath},
	}
}

// Patterns returns the expressions of every registered step.
func Patterns() []string {
	defs := (&steps{}).defs()
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.pattern)
	}
	return out
}

// InitializeScenario registers the steps and the scenario hooks of one
// scenario on ctx.
func InitializeScenario(suite *fixture.Suite, ctx *godog.ScenarioContext) {
	st := &steps{suite: suite, sc: suite.NewScenario()}

	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, st.sc.Before(c)
	})
	ctx.After(func(c context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		return c, st.sc.After(c)
	})

	for _, d := range st.defs() {
		ctx.Step(d.pattern, d.fn)
	}
}

func (st *steps) dnf() *manager.DNF {
	return st.suite.DNF()
}

func (st *steps) rpm() *manager.RPM {
	return st.suite.RPM()
}

func (st *steps) store() *resources.Store {
	return st.suite.Resources()
}

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

package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
)

var allowedEnvKeys = map[string]struct{}{
	"DNF_EXTRA_TESTS_DNF_COMMAND":        {},
	"DNF_EXTRA_TESTS_RPM_COMMAND":        {},
	"DNF_EXTRA_TESTS_CREATEREPO_COMMAND": {},
	"DNF_EXTRA_TESTS_DNF_ARGS":           {},
	"DNF_EXTRA_TESTS_RESOURCES_DIR":      {},
	"DNF_EXTRA_TESTS_STATE_DIR":          {},
	"DNF_EXTRA_TESTS_GUEST_RELEASEVER":   {},
	"DNF_EXTRA_TESTS_BASE_PACKAGES":      {},
	"DNF_EXTRA_TESTS_METADATA_EXPIRE":    {},
	"DNF_EXTRA_TESTS_LOG_LEVEL":          {},
}

type EnvConfig struct {
	k *koanf.Koanf
}

func NewEnvConfig() *EnvConfig {
	return &EnvConfig{
		k: koanf.New("."),
	}
}

func (c *EnvConfig) koanf() *koanf.Koanf {
	return c.k
}

func (c *EnvConfig) Load() error {
	return c.k.Load(env.Provider(constants.EnvPrefix, ".", envKey), nil)
}

// envKey maps DNF_EXTRA_TESTS_GUEST_RELEASEVER to guestReleasever.
func envKey(s string) string {
	if _, ok := allowedEnvKeys[s]; !ok {
		return ""
	}
	withoutPrefix := strings.TrimPrefix(s, constants.EnvPrefix)
	lowered := strings.ToLower(withoutPrefix)
	dotted := strings.ReplaceAll(lowered, "__", ".")
	parts := strings.Split(dotted, ".")
	for i, part := range parts {
		if strings.Contains(part, "_") {
			parts[i] = toCamelCase(part)
		}
	}
	return strings.Join(parts, ".")
}

func toCamelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) > 0 {
			parts[i] = cases.Title(language.Und, cases.NoLower).String(parts[i])
		}
	}
	return strings.Join(parts, "")
}

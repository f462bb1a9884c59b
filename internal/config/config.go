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
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/shlex"
	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"golang.org/x/exp/maps"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/types"
)

type layer interface {
	Load() error
	koanf() *koanf.Koanf
}

// HarnessConfig merges the built-in defaults, the system file, the user
// file and the environment, in that order.
type HarnessConfig struct {
	k   *koanf.Koanf
	cfg *types.Config

	system *FileConfig
	user   *FileConfig
	env    *EnvConfig
}

func New() *HarnessConfig {
	return &HarnessConfig{
		cfg:    &types.Config{},
		system: NewFileConfig(constants.SystemConfigPath),
		user:   NewFileConfig(userConfigPath()),
		env:    NewEnvConfig(),
	}
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, constants.UserConfigDir, constants.UserConfigName)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"dnfCommand":        "dnf",
		"rpmCommand":        "rpm",
		"createrepoCommand": "createrepo_c",
		"dnfArgs":           "",
		"dumpConfigArgs":    []string{"config-manager", "--dump"},
		"resourcesDir":      filepath.Join("features", "resources"),
		"stateDir":          "/var/lib/dnf-extra-tests",
		"guestReleasever":   constants.GuestReleasever,
		"basePackages":      []string{"system-release"},
		"metadataExpire":    600,
		"logLevel":          "INFO",
	}
}

// Keys lists the configuration keys in alphabetical order.
func Keys() []string {
	keys := maps.Keys(defaults())
	slices.Sort(keys)
	return keys
}

// UseFile replaces the user configuration file with path, which then
// has to exist.
func (c *HarnessConfig) UseFile(path string) {
	c.user = NewFileConfig(path)
	c.user.required = true
}

func (c *HarnessConfig) Load() error {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	for _, l := range []layer{c.system, c.user, c.env} {
		if err := l.Load(); err != nil {
			return err
		}
		if err := k.Merge(l.koanf()); err != nil {
			return err
		}
	}

	cfg := &types.Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return err
	}

	c.k = k
	c.cfg = cfg
	return nil
}

// ToTOML renders the effective configuration.
func (c *HarnessConfig) ToTOML() ([]byte, error) {
	return c.k.Marshal(ktoml.Parser())
}

func (c *HarnessConfig) DNFCommand() string        { return c.cfg.DNFCommand }
func (c *HarnessConfig) RPMCommand() string        { return c.cfg.RPMCommand }
func (c *HarnessConfig) CreaterepoCommand() string { return c.cfg.CreaterepoCommand }
func (c *HarnessConfig) DumpConfigArgs() []string  { return c.cfg.DumpConfigArgs }
func (c *HarnessConfig) ResourcesDir() string      { return c.cfg.ResourcesDir }
func (c *HarnessConfig) StateDir() string          { return c.cfg.StateDir }
func (c *HarnessConfig) GuestReleasever() string   { return c.cfg.GuestReleasever }
func (c *HarnessConfig) BasePackages() []string    { return c.cfg.BasePackages }
func (c *HarnessConfig) MetadataExpire() int       { return c.cfg.MetadataExpire }
func (c *HarnessConfig) LogLevel() string          { return c.cfg.LogLevel }

// DNFArgs splits the extra DNF arguments the way a shell would.
func (c *HarnessConfig) DNFArgs() ([]string, error) {
	args, err := shlex.Split(c.cfg.DNFArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to split dnfArgs: %w", err)
	}
	return args, nil
}

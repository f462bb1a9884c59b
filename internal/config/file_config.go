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
	"errors"
	"fmt"
	"os"

	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileConfig is one TOML layer of the harness configuration.
type FileConfig struct {
	k        *koanf.Koanf
	path     string
	required bool
}

func NewFileConfig(path string) *FileConfig {
	return &FileConfig{
		k:    koanf.New("."),
		path: path,
	}
}

func (c *FileConfig) koanf() *koanf.Koanf {
	return c.k
}

func (c *FileConfig) Path() string {
	return c.path
}

func (c *FileConfig) Load() error {
	if c.path == "" {
		return nil
	}
	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		if c.required {
			return fmt.Errorf("config file %s does not exist", c.path)
		}
		return nil
	}

	if err := c.k.Load(file.Provider(c.path), ktoml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s: %w", c.path, err)
	}
	return nil
}

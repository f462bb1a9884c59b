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

package manager

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// MainConfig holds the paths DNF reports for its main configuration.
// Lists are reduced to their first element.
type MainConfig struct {
	ConfigFile     string
	ReposDir       string
	PluginPath     string
	PluginConfPath string
	LogDir         string
	CacheDir       string
	PersistDir     string
}

// MainConfig asks DNF to print its main configuration and parses it.
func (d *DNF) MainConfig(ctx context.Context, opts *Opts) (*MainConfig, error) {
	out, err := d.Run(ctx, opts, d.dumpArgs...)
	if err != nil {
		return nil, fmt.Errorf("dnf: dump config: %w", err)
	}
	cfg, err := ParseMainConfig(out)
	if err != nil {
		return nil, fmt.Errorf("dnf: dump config: %w", err)
	}
	return cfg, nil
}

// ParseMainConfig reads the "key = value" dump printed by DNF. Banner
// lines such as "=== main ===" and section headers are skipped.
func ParseMainConfig(dump []byte) (*MainConfig, error) {
	var cleaned bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(dump))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "=") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		cleaned.WriteString(line)
		cleaned.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, cleaned.Bytes())
	if err != nil {
		return nil, err
	}
	sec := f.Section(ini.DefaultSection)

	cfg := &MainConfig{
		ConfigFile:     sec.Key("config_file_path").String(),
		ReposDir:       first(sec.Key("reposdir").String()),
		PluginPath:     first(sec.Key("pluginpath").String()),
		PluginConfPath: first(sec.Key("pluginconfpath").String()),
		LogDir:         sec.Key("logdir").String(),
		CacheDir:       sec.Key("cachedir").String(),
		PersistDir:     sec.Key("persistdir").String(),
	}

	var missing []string
	for name, v := range map[string]string{
		"config_file_path": cfg.ConfigFile,
		"reposdir":         cfg.ReposDir,
		"pluginpath":       cfg.PluginPath,
		"pluginconfpath":   cfg.PluginConfPath,
		"logdir":           cfg.LogDir,
		"cachedir":         cfg.CacheDir,
		"persistdir":       cfg.PersistDir,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing options in the configuration dump: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// first returns the first item of a list option. DNF prints lists
// separated by commas or whitespace.
func first(list string) string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

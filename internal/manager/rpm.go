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
	"context"
	"fmt"
	"strings"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
)

// NEVRAQueryFormat prints name-epoch:version-release.arch with a zero
// epoch when the package has none, like repoquery does.
const NEVRAQueryFormat = `%{NAME}-%|EPOCH?{%{EPOCH}}:{0}|:%{VERSION}-%{RELEASE}.%{ARCH}\n`

// RPM drives the rpm executable.
type RPM struct {
	runner  Runner
	command string
}

func NewRPM(runner Runner, command string) *RPM {
	return &RPM{
		runner:  runner,
		command: command,
	}
}

// Args assembles "[--quiet] [--root PATH] ARGS...".
func (r *RPM) Args(root string, quiet bool, args ...string) []string {
	var out []string
	if quiet {
		out = append(out, "--quiet")
	}
	if root != "" {
		out = append(out, "--root", root)
	}
	return append(out, args...)
}

func (r *RPM) Run(ctx context.Context, root string, quiet bool, args ...string) ([]byte, error) {
	return r.runner.Run(ctx, r.command, r.Args(root, quiet, args...)...)
}

// Import adds a public key to the database of root.
func (r *RPM) Import(ctx context.Context, root, keyfile string) error {
	if _, err := r.Run(ctx, root, true, "--import", keyfile); err != nil {
		return fmt.Errorf("rpm: import: %w", err)
	}
	return nil
}

// EraseKey removes the gpg-pubkey package of the key with shortID.
func (r *RPM) EraseKey(ctx context.Context, root, shortID string) error {
	spec := "gpg-pubkey-" + strings.ToLower(shortID)
	if _, err := r.Run(ctx, root, true, "--erase", spec); err != nil {
		return fmt.Errorf("rpm: erase: %w", err)
	}
	return nil
}

// QueryInstalled returns the NEVRAs of the installed packages called
// name. Nothing installed is not an error.
func (r *RPM) QueryInstalled(ctx context.Context, root, name string) ([]string, error) {
	out, err := r.Run(ctx, root, false, "-q", "--queryformat", NEVRAQueryFormat, name)
	if err != nil {
		// rpm -q exits with 1 when the package is not installed
		if IsExitCode(err, 1) {
			return nil, nil
		}
		return nil, fmt.Errorf("rpm: query: %w", err)
	}
	return nonEmptyLines(out), nil
}

// QueryFile returns the NEVRA of a package file.
func (r *RPM) QueryFile(ctx context.Context, pkgfile string) (string, error) {
	out, err := r.Run(ctx, "", false, "-q", "-p", "--queryformat", NEVRAQueryFormat, pkgfile)
	if err != nil {
		return "", fmt.Errorf("rpm: query package: %w", err)
	}
	lines := nonEmptyLines(out)
	if len(lines) != 1 {
		return "", fmt.Errorf("rpm: query package: unexpected output %q", out)
	}
	return lines[0], nil
}

// DetectReleasever finds the release version of the system in root the
// way DNF does: the version of the system-release(releasever) provide,
// or the version of the package providing it.
func (r *RPM) DetectReleasever(ctx context.Context, root string) (string, error) {
	out, err := r.Run(ctx, root, false,
		"-q", "--whatprovides", constants.ReleaseverProvide,
		"--queryformat", `[%{PROVIDENAME}=%{PROVIDEVERSION}\n]`)
	if err != nil {
		return "", fmt.Errorf("rpm: detect releasever: %w", err)
	}
	if ver, ok := parseReleaseverProvides(out); ok {
		return ver, nil
	}

	out, err = r.Run(ctx, root, false,
		"-q", "--whatprovides", constants.ReleaseverProvide,
		"--queryformat", `%{VERSION}\n`)
	if err != nil {
		return "", fmt.Errorf("rpm: detect releasever: %w", err)
	}
	lines := nonEmptyLines(out)
	if len(lines) == 0 {
		return "", fmt.Errorf("rpm: detect releasever: no package provides %s", constants.ReleaseverProvide)
	}
	return lines[0], nil
}

func parseReleaseverProvides(out []byte) (string, bool) {
	for _, line := range nonEmptyLines(out) {
		name, ver, ok := strings.Cut(line, "=")
		if !ok || name != constants.ReleaseverProvide {
			continue
		}
		if ver = strings.TrimSpace(ver); ver != "" {
			return ver, true
		}
	}
	return "", false
}

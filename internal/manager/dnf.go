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
	"strings"
)

// Opts are the global DNF options of one invocation. Empty strings and
// false values leave the option out.
type Opts struct {
	Config      string
	Installroot string
	Releasever  string
	Quiet       bool
	AssumeYes   bool
	DisableRepo string
	EnableRepo  string
}

func ensureOpts(opts *Opts) *Opts {
	if opts == nil {
		return &Opts{}
	}
	return opts
}

// DNF drives the dnf executable.
type DNF struct {
	runner    Runner
	command   string
	extraArgs []string
	dumpArgs  []string
}

func NewDNF(runner Runner, command string) *DNF {
	return &DNF{
		runner:   runner,
		command:  command,
		dumpArgs: []string{"config-manager", "--dump"},
	}
}

// WithExtraArgs adds arguments placed after the global options and
// before the subcommand of every invocation.
func (d *DNF) WithExtraArgs(args ...string) *DNF {
	d.extraArgs = append(d.extraArgs, args...)
	return d
}

// WithDumpArgs sets the subcommand printing the main configuration.
func (d *DNF) WithDumpArgs(args ...string) *DNF {
	if len(args) > 0 {
		d.dumpArgs = args
	}
	return d
}

// Args assembles the argument vector, without the executable, in this order:
//
//	[--config=PATH] [--installroot=PATH] [--releasever=VER] [--quiet]
//	[--assumeyes] [--disablerepo=PATTERN] [--enablerepo=PATTERN]
//	[extra args] SUBCOMMAND [SUBARGS...]
func (d *DNF) Args(opts *Opts, args ...string) []string {
	opts = ensureOpts(opts)
	var out []string
	if opts.Config != "" {
		out = append(out, "--config="+opts.Config)
	}
	if opts.Installroot != "" {
		out = append(out, "--installroot="+opts.Installroot)
	}
	if opts.Releasever != "" {
		out = append(out, "--releasever="+opts.Releasever)
	}
	if opts.Quiet {
		out = append(out, "--quiet")
	}
	if opts.AssumeYes {
		out = append(out, "--assumeyes")
	}
	if opts.DisableRepo != "" {
		out = append(out, "--disablerepo="+opts.DisableRepo)
	}
	if opts.EnableRepo != "" {
		out = append(out, "--enablerepo="+opts.EnableRepo)
	}
	out = append(out, d.extraArgs...)
	return append(out, args...)
}

// Run executes an arbitrary DNF subcommand.
func (d *DNF) Run(ctx context.Context, opts *Opts, args ...string) ([]byte, error) {
	return d.runner.Run(ctx, d.command, d.Args(opts, args...)...)
}

func (d *DNF) Install(ctx context.Context, opts *Opts, specs ...string) ([]byte, error) {
	out, err := d.Run(ctx, opts, append([]string{"install"}, specs...)...)
	if err != nil {
		return out, fmt.Errorf("dnf: install: %w", err)
	}
	return out, nil
}

func (d *DNF) Remove(ctx context.Context, opts *Opts, specs ...string) ([]byte, error) {
	out, err := d.Run(ctx, opts, append([]string{"remove"}, specs...)...)
	if err != nil {
		return out, fmt.Errorf("dnf: remove: %w", err)
	}
	return out, nil
}

func (d *DNF) GroupInstall(ctx context.Context, opts *Opts, groups ...string) ([]byte, error) {
	out, err := d.Run(ctx, opts, append([]string{"group", "install"}, groups...)...)
	if err != nil {
		return out, fmt.Errorf("dnf: group install: %w", err)
	}
	return out, nil
}

func (d *DNF) CleanMetadata(ctx context.Context, opts *Opts) ([]byte, error) {
	out, err := d.Run(ctx, opts, "clean", "metadata")
	if err != nil {
		return out, fmt.Errorf("dnf: clean metadata: %w", err)
	}
	return out, nil
}

func (d *DNF) MakeCache(ctx context.Context, opts *Opts) ([]byte, error) {
	out, err := d.Run(ctx, opts, "makecache")
	if err != nil {
		return out, fmt.Errorf("dnf: makecache: %w", err)
	}
	return out, nil
}

// RepoQuery lists the packages of a repository, one NEVRA per line in
// the default repoquery format. An empty repoID queries every enabled
// repository.
func (d *DNF) RepoQuery(ctx context.Context, opts *Opts, repoID string) ([]string, error) {
	args := []string{"repoquery"}
	if repoID != "" {
		args = append(args, "--repoid="+repoID)
	}
	out, err := d.Run(ctx, opts, args...)
	if err != nil {
		return nil, fmt.Errorf("dnf: repoquery: %w", err)
	}
	return nonEmptyLines(out), nil
}

func nonEmptyLines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

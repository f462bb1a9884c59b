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
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
)

// Runner executes a command line and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host. Standard error is captured and
// only reported when the command fails.
type ExecRunner struct {
	// Env is appended to the environment of this process.
	Env []string
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmdline := append([]string{name}, args...)

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, &CommandExecutionError{Command: cmdline, Err: err}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), r.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running command", "cmd", cmdline)
	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output := append(append([]byte{}, stdout.Bytes()...), stderr.Bytes()...)
			return stdout.Bytes(), &CommandFailedError{
				Command:  cmdline,
				ExitCode: exitErr.ExitCode(),
				Output:   output,
			}
		}
		return nil, &CommandExecutionError{Command: cmdline, Err: err}
	}
	return stdout.Bytes(), nil
}

// IsExitCode reports whether err is a CommandFailedError with the given code.
func IsExitCode(err error, code int) bool {
	var failed *CommandFailedError
	return errors.As(err, &failed) && failed.ExitCode == code
}

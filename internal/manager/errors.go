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
	"fmt"
	"strings"
)

// CommandExecutionError means the executable could not be found or
// started at all.
type CommandExecutionError struct {
	Command []string
	Err     error
}

func (e *CommandExecutionError) Error() string {
	return fmt.Sprintf("%s: cannot execute: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *CommandExecutionError) Unwrap() error {
	return e.Err
}

// CommandFailedError means the executable ran and exited with a
// non-zero code. Output holds both standard streams.
type CommandFailedError struct {
	Command  []string
	ExitCode int
	Output   []byte
}

func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", strings.Join(e.Command, " "), e.ExitCode)
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg += "\n" + out
	}
	return msg
}

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

package tempstate

import "fmt"

// StateError reports a helper used out of order, such as removing
// something that was never created.
type StateError struct {
	Op  string
	Msg string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// DownloadOrTransactionError is the single failure mode of preparing an
// install root: resolving, downloading or installing the base packages.
type DownloadOrTransactionError struct {
	Root string
	Err  error
}

func (e *DownloadOrTransactionError) Error() string {
	return fmt.Sprintf("cannot prepare install root %s: %v", e.Root, e.Err)
}

func (e *DownloadOrTransactionError) Unwrap() error {
	return e.Err
}

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

import (
	"fmt"
	"path/filepath"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
)

// ResourceCopy is one file of the resource store copied into a
// directory for the duration of a scenario.
type ResourceCopy struct {
	// Source is the directory of the resource store.
	Source string
	Name   string
	Dir    string
	// Path is set by Create and cleared by Remove.
	Path string
}

func NewResourceCopy(source, name, dir string) *ResourceCopy {
	return &ResourceCopy{Source: source, Name: name, Dir: dir}
}

// Create copies the resource, creating Dir if needed.
func (r *ResourceCopy) Create() error {
	if r.Path != "" {
		return &StateError{Op: "create resource", Msg: fmt.Sprintf("%s already created at %s", r.Name, r.Path)}
	}
	if err := fsutils.EnsureDir(r.Dir); err != nil {
		return err
	}
	dst := filepath.Join(r.Dir, r.Name)
	if err := fsutils.CopyFile(filepath.Join(r.Source, r.Name), dst); err != nil {
		return fmt.Errorf("cannot copy %s: %w", r.Name, err)
	}
	r.Path = dst
	return nil
}

func (r *ResourceCopy) Remove() error {
	if r.Path == "" {
		return &StateError{Op: "remove resource", Msg: fmt.Sprintf("%s not created", r.Name)}
	}
	if err := fsutils.RemoveIfExists(r.Path); err != nil {
		return err
	}
	r.Path = ""
	return nil
}

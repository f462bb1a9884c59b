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

package steps

import (
	"context"
	"fmt"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/repomd"
)

// root translates a root description to an install root. The host is
// the empty root.
func (st *steps) root(description string) (string, error) {
	switch description {
	case "host", "system":
		return "", nil
	case "guest", "custom install":
		return st.sc.GuestRoot()
	}
	return "", unsupported("root description", description)
}

type destination int

const (
	locally destination = iota
	inTheGuest
)

func parseDestination(s string) (destination, error) {
	switch s {
	case "locally":
		return locally, nil
	case "in the guest":
		return inTheGuest, nil
	}
	return 0, unsupported("destination", s)
}

// removeOpts are the options used to undo an installation. The
// configuration override is not passed on.
func (st *steps) removeOpts(root string) *manager.Opts {
	return &manager.Opts{
		Installroot: root,
		Releasever:  st.sc.Overrides.Releasever,
		Quiet:       true,
		AssumeYes:   true,
	}
}

// repoEqualsDir compares what repoquery lists for repoID with the
// packages in the metadata of dir. Both lists are sorted first, so only
// the set of packages matters, not the order either side prints them in.
func (st *steps) repoEqualsDir(ctx context.Context, repoID, dir, message string) error {
	out, err := st.dnf().RepoQuery(ctx, &manager.Opts{
		Config:      st.sc.Overrides.Config,
		Installroot: st.sc.Overrides.Installroot,
		Releasever:  st.sc.Overrides.Releasever,
		Quiet:       true,
	}, repoID)
	if err != nil {
		return fmt.Errorf("repo query failed: %w", err)
	}

	queried := make([]repomd.NEVRA, 0, len(out))
	for _, line := range out {
		n, err := repomd.ParseNEVRA(line)
		if err != nil {
			return fmt.Errorf("repo query failed: %w", err)
		}
		queried = append(queried, n)
	}
	repomd.Sort(queried)

	expected, err := repomd.LoadSorted(dir)
	if err != nil {
		return fmt.Errorf("directory query failed: %w", err)
	}

	return assertSameList(repomd.Strings(expected), repomd.Strings(queried), message)
}

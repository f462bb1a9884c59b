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

package repomd

import (
	"fmt"
	"sort"
	"strings"

	"go.elara.ws/vercmp"
)

// NEVRA identifies one package by name, epoch, version, release and
// architecture.
type NEVRA struct {
	Name    string
	Epoch   string
	Version string
	Release string
	Arch    string
}

// String formats the NEVRA as name-epoch:version-release.arch. A
// missing epoch is printed as 0.
func (n NEVRA) String() string {
	epoch := n.Epoch
	if epoch == "" {
		epoch = "0"
	}
	return fmt.Sprintf("%s-%s:%s-%s.%s", n.Name, epoch, n.Version, n.Release, n.Arch)
}

// ParseNEVRA parses name-[epoch:]version-release.arch.
func ParseNEVRA(s string) (NEVRA, error) {
	var n NEVRA

	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return n, fmt.Errorf("invalid NEVRA %q: no architecture", s)
	}
	n.Arch = s[dot+1:]
	rest := s[:dot]

	dash := strings.LastIndexByte(rest, '-')
	if dash <= 0 || dash == len(rest)-1 {
		return n, fmt.Errorf("invalid NEVRA %q: no release", s)
	}
	n.Release = rest[dash+1:]
	rest = rest[:dash]

	dash = strings.LastIndexByte(rest, '-')
	if dash <= 0 || dash == len(rest)-1 {
		return n, fmt.Errorf("invalid NEVRA %q: no version", s)
	}
	n.Name = rest[:dash]
	evr := rest[dash+1:]

	n.Epoch = "0"
	if epoch, version, ok := strings.Cut(evr, ":"); ok {
		n.Epoch = epoch
		evr = version
	}
	n.Version = evr
	return n, nil
}

// Compare orders by name, then epoch, version and release using RPM
// version comparison, then architecture.
func Compare(a, b NEVRA) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	for _, pair := range [][2]string{
		{orZero(a.Epoch), orZero(b.Epoch)},
		{a.Version, b.Version},
		{a.Release, b.Release},
	} {
		if c := vercmp.Compare(pair[0], pair[1]); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Arch, b.Arch)
}

func orZero(epoch string) string {
	if epoch == "" {
		return "0"
	}
	return epoch
}

// Sort sorts nevras in place by Compare.
func Sort(nevras []NEVRA) {
	sort.SliceStable(nevras, func(i, j int) bool {
		return Compare(nevras[i], nevras[j]) < 0
	})
}

// Strings formats every NEVRA.
func Strings(nevras []NEVRA) []string {
	out := make([]string, len(nevras))
	for i, n := range nevras {
		out[i] = n.String()
	}
	return out
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNEVRA(t *testing.T) {
	n, err := ParseNEVRA("signed-foo-0:1-1.noarch")
	require.NoError(t, err)
	assert.Equal(t, NEVRA{Name: "signed-foo", Epoch: "0", Version: "1", Release: "1", Arch: "noarch"}, n)

	n, err = ParseNEVRA("kernel-core-6.11.4-301.fc41.x86_64")
	require.NoError(t, err)
	assert.Equal(t, NEVRA{Name: "kernel-core", Epoch: "0", Version: "6.11.4", Release: "301.fc41", Arch: "x86_64"}, n)
	assert.Equal(t, "kernel-core-0:6.11.4-301.fc41.x86_64", n.String())

	for _, bad := range []string{"", "foo", "foo.noarch", "foo-1.noarch", "foo-1-1."} {
		_, err := ParseNEVRA(bad)
		assert.Error(t, err, bad)
	}
}

func TestCompare(t *testing.T) {
	older := NEVRA{Name: "foo", Version: "1.9", Release: "1", Arch: "noarch"}
	newer := NEVRA{Name: "foo", Epoch: "0", Version: "1.10", Release: "1", Arch: "noarch"}
	epoch := NEVRA{Name: "foo", Epoch: "1", Version: "0.1", Release: "1", Arch: "noarch"}

	assert.Equal(t, -1, Compare(older, newer))
	assert.Equal(t, 1, Compare(epoch, newer))
	assert.Equal(t, 0, Compare(newer, NEVRA{Name: "foo", Version: "1.10", Release: "1", Arch: "noarch"}))
	assert.Equal(t, -1, Compare(NEVRA{Name: "bar", Version: "9"}, older))
}

func TestSort(t *testing.T) {
	nevras := []NEVRA{
		{Name: "signed-foo", Version: "1", Release: "1", Arch: "noarch"},
		{Name: "foo", Version: "1", Release: "10", Arch: "noarch"},
		{Name: "foo", Version: "1", Release: "2", Arch: "noarch"},
	}
	Sort(nevras)
	assert.Equal(t, []string{
		"foo-0:1-2.noarch",
		"foo-0:1-10.noarch",
		"signed-foo-0:1-1.noarch",
	}, Strings(nevras))
}

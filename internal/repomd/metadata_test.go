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
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primaryXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://linux.duke.edu/metadata/common" xmlns:rpm="http://linux.duke.edu/metadata/rpm" packages="2">
<package type="rpm">
  <name>signed-foo</name>
  <arch>noarch</arch>
  <version epoch="0" ver="1" rel="1"/>
  <format><rpm:license>GPLv3+</rpm:license></format>
</package>
<package type="rpm">
  <name>foo</name>
  <arch>noarch</arch>
  <version epoch="0" ver="1" rel="1"/>
</package>
</metadata>
`

func repomdXML(href string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<repomd xmlns="http://linux.duke.edu/metadata/repo" xmlns:rpm="http://linux.duke.edu/metadata/rpm">
  <revision>1700000000</revision>
  <data type="filelists">
    <location href="repodata/filelists.xml.gz"/>
  </data>
  <data type="primary">
    <location href="` + href + `"/>
  </data>
</repomd>
`
}

func writeRepo(t *testing.T, href string, compress bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "repodata"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repodata", "repomd.xml"), []byte(repomdXML(href)), 0o644))

	fl, err := os.Create(filepath.Join(dir, filepath.FromSlash(href)))
	require.NoError(t, err)
	defer fl.Close()
	if compress {
		gz := gzip.NewWriter(fl)
		_, err = gz.Write([]byte(primaryXML))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
	} else {
		_, err = fl.Write([]byte(primaryXML))
		require.NoError(t, err)
	}
	return dir
}

func TestLoadGzipPrimary(t *testing.T) {
	dir := writeRepo(t, "repodata/0123abcd-primary.xml.gz", true)

	nevras, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"signed-foo-0:1-1.noarch", "foo-0:1-1.noarch"}, Strings(nevras))
}

func TestLoadPlainPrimary(t *testing.T) {
	dir := writeRepo(t, "repodata/primary.xml", false)

	nevras, err := LoadSorted(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo-0:1-1.noarch", "signed-foo-0:1-1.noarch"}, Strings(nevras))
}

func TestLoadMissingRepodata(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadWithoutPrimary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "repodata"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repodata", "repomd.xml"),
		[]byte(`<repomd xmlns="http://linux.duke.edu/metadata/repo"></repomd>`), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no primary metadata")
}

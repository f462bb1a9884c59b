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

package resources

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/tempstate"
)

var metalinkTmpl = template.Must(template.New("metalink").Parse(`<?xml version="1.0" encoding="utf-8"?>
<metalink version="3.0" xmlns="http://www.metalinker.org/" type="dynamic" pubdate="{{.PubDate}}" generator="dnf-extra-tests" xmlns:mm0="http://fedorahosted.org/mirrormanager">
 <files>
  <file name="repomd.xml">
   <mm0:timestamp>{{.Timestamp}}</mm0:timestamp>
   <size>{{.Size}}</size>
   <verification>
    <hash type="sha256">{{.SHA256}}</hash>
   </verification>
   <resources maxconnections="1">
    <url protocol="file" type="file" location="XX" preference="100">{{.URL}}</url>
   </resources>
  </file>
 </files>
</metalink>
`))

type metalinkData struct {
	PubDate   string
	Timestamp int64
	Size      int64
	SHA256    string
	URL       string
}

// WriteMetalink writes a metalink pointing at the repomd.xml of repoDir.
func WriteMetalink(path, repoDir string, now time.Time) error {
	repomd := filepath.Join(repoDir, "repodata", "repomd.xml")
	fl, err := os.Open(repomd)
	if err != nil {
		return err
	}
	defer fl.Close()

	h := sha256.New()
	size, err := io.Copy(h, fl)
	if err != nil {
		return err
	}

	u, err := tempstate.FileURL(repomd)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return metalinkTmpl.Execute(out, metalinkData{
		PubDate:   now.UTC().Format(time.RFC1123),
		Timestamp: now.Unix(),
		Size:      size,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		URL:       u,
	})
}

// WriteMirrorlist writes a mirror list with repoDir as the only mirror.
func WriteMirrorlist(path, repoDir string) error {
	u, err := tempstate.FileURL(repoDir)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.TrimSuffix(u, "/")+"/\n"), 0o644)
}

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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"
	"github.com/hashicorp/go-multierror"
	"github.com/mholt/archiver/v4"
)

// Load reads the package list of the repository in dir from the
// primary metadata referenced by repodata/repomd.xml.
func Load(dir string) ([]NEVRA, error) {
	href, err := primaryLocation(dir)
	if err != nil {
		return nil, err
	}

	r, err := openPrimary(filepath.Join(dir, filepath.FromSlash(href)))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return parsePrimary(r)
}

func primaryLocation(dir string) (string, error) {
	path := filepath.Join(dir, "repodata", "repomd.xml")
	fl, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("repomd: %w", err)
	}
	defer fl.Close()

	doc, err := xmlquery.Parse(fl)
	if err != nil {
		return "", fmt.Errorf("repomd: %s: %w", path, err)
	}

	for _, data := range xmlquery.Find(doc, "//data") {
		if data.SelectAttr("type") != "primary" {
			continue
		}
		loc := xmlquery.FindOne(data, "location")
		if loc == nil {
			break
		}
		if href := loc.SelectAttr("href"); href != "" {
			return href, nil
		}
	}
	return "", fmt.Errorf("repomd: %s: no primary metadata", path)
}

type primaryReader struct {
	io.Reader
	closers []io.Closer
}

func (r *primaryReader) Close() error {
	var merr *multierror.Error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// openPrimary returns the uncompressed content of the primary file.
func openPrimary(path string) (io.ReadCloser, error) {
	fl, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("repomd: %w", err)
	}

	format, stream, err := archiver.Identify(filepath.Base(path), fl)
	if errors.Is(err, archiver.ErrNoMatch) {
		// plain XML
		if _, err := fl.Seek(0, io.SeekStart); err != nil {
			fl.Close()
			return nil, fmt.Errorf("repomd: %w", err)
		}
		return &primaryReader{Reader: fl, closers: []io.Closer{fl}}, nil
	} else if err != nil {
		fl.Close()
		return nil, fmt.Errorf("repomd: %s: %w", path, err)
	}

	dec, ok := format.(archiver.Decompressor)
	if !ok {
		fl.Close()
		return nil, fmt.Errorf("repomd: %s: %s is not a compression format", path, format.Name())
	}
	rc, err := dec.OpenReader(stream)
	if err != nil {
		fl.Close()
		return nil, fmt.Errorf("repomd: %s: %w", path, err)
	}
	return &primaryReader{Reader: rc, closers: []io.Closer{fl, rc}}, nil
}

func parsePrimary(r io.Reader) ([]NEVRA, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("repomd: primary: %w", err)
	}

	var nevras []NEVRA
	for _, pkg := range xmlquery.Find(doc, "//package") {
		name := xmlquery.FindOne(pkg, "name")
		arch := xmlquery.FindOne(pkg, "arch")
		version := xmlquery.FindOne(pkg, "version")
		if name == nil || arch == nil || version == nil {
			return nil, errors.New("repomd: primary: incomplete package entry")
		}
		nevras = append(nevras, NEVRA{
			Name:    name.InnerText(),
			Epoch:   orZero(version.SelectAttr("epoch")),
			Version: version.SelectAttr("ver"),
			Release: version.SelectAttr("rel"),
			Arch:    arch.InnerText(),
		})
	}
	return nevras, nil
}

// LoadSorted is Load followed by Sort.
func LoadSorted(dir string) ([]NEVRA, error) {
	nevras, err := Load(dir)
	if err != nil {
		return nil, err
	}
	Sort(nevras)
	return nevras, nil
}

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
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/ini.v1"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/manager"
)

func init() {
	ini.PrettyFormat = false
}

// MetadataCleaner invalidates cached repository metadata.
type MetadataCleaner interface {
	CleanMetadata(ctx context.Context, opts *manager.Opts) ([]byte, error)
}

// RepoConfig is a repository definition written to <Dir>/<ID>.repo.
type RepoConfig struct {
	ID             string
	BaseURL        string
	Metalink       string
	MirrorList     string
	MetadataExpire int
	GPGCheck       bool
	GPGKey         string

	Dir     string
	Cleaner MetadataCleaner

	// Path is set by Add and cleared by Remove.
	Path string
}

type repoKey struct {
	name, value string
}

func (r *RepoConfig) file() (*ini.File, error) {
	f := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	sec, err := f.NewSection(r.ID)
	if err != nil {
		return nil, err
	}

	keys := []repoKey{
		{"baseurl", r.BaseURL},
		{"metalink", r.Metalink},
		{"mirrorlist", r.MirrorList},
	}
	if r.MetadataExpire > 0 {
		keys = append(keys, repoKey{"metadata_expire", strconv.Itoa(r.MetadataExpire)})
	}
	keys = append(keys,
		repoKey{"gpgcheck", strconv.FormatBool(r.GPGCheck)},
		repoKey{"gpgkey", r.GPGKey},
	)

	for _, k := range keys {
		if k.value == "" {
			continue
		}
		if _, err := sec.NewKey(k.name, k.value); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Section renders the repository as an INI section.
func (r *RepoConfig) Section() (string, error) {
	f, err := r.file()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Add writes the repository file.
func (r *RepoConfig) Add() error {
	if r.Path != "" {
		return &StateError{Op: "add repository", Msg: fmt.Sprintf("%s already added at %s", r.ID, r.Path)}
	}
	if r.Dir == "" {
		return &StateError{Op: "add repository", Msg: "no repository directory"}
	}
	if err := fsutils.EnsureDir(r.Dir); err != nil {
		return err
	}
	f, err := r.file()
	if err != nil {
		return err
	}
	path := filepath.Join(r.Dir, r.ID+".repo")
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	r.Path = path
	return nil
}

// Remove invalidates the cached metadata of the repository and deletes
// its file. The file is deleted even if cleaning fails.
func (r *RepoConfig) Remove(ctx context.Context) error {
	if r.Path == "" {
		return &StateError{Op: "remove repository", Msg: fmt.Sprintf("%s not added", r.ID)}
	}

	var merr *multierror.Error
	if r.Cleaner != nil {
		if _, err := r.Cleaner.CleanMetadata(ctx, ScopedTo(r.ID)); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := fsutils.RemoveIfExists(r.Path); err != nil {
		merr = multierror.Append(merr, err)
	} else {
		r.Path = ""
	}
	return merr.ErrorOrNil()
}

// ScopedTo returns quiet options restricting DNF to the repository id.
func ScopedTo(id string) *manager.Opts {
	return &manager.Opts{
		Quiet:       true,
		DisableRepo: "*",
		EnableRepo:  id,
	}
}

// MainSection renders pairs as a [main] section, keeping their order.
func MainSection(pairs [][2]string) (string, error) {
	f := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	sec, err := f.NewSection("main")
	if err != nil {
		return "", err
	}
	for _, p := range pairs {
		if _, err := sec.NewKey(p[0], p[1]); err != nil {
			return "", err
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

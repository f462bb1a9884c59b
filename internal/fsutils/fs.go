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

package fsutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDir creates path and all missing parents. An existing
// directory is fine, an existing file is not.
func EnsureDir(path string) error {
	fi, err := os.Stat(path)
	switch {
	case err == nil && fi.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", path)
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether something is at path. Dangling symlinks count.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// RemoveIfExists removes a single file. A missing file is not an error.
func RemoveIfExists(path string) error {
	ok, err := Exists(path)
	if err != nil || !ok {
		return err
	}
	return os.Remove(path)
}

// RemoveAllIfExists removes a whole tree. A missing tree is not an error.
func RemoveAllIfExists(path string) error {
	ok, err := Exists(path)
	if err != nil || !ok {
		return err
	}
	return os.RemoveAll(path)
}

// ListDir returns the names in dir. A missing directory is empty.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// CopyFile copies the content of src over dst, keeping dst's inode when
// it already exists. A new dst gets the permissions of src.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CopyTree copies the directory src to dst, which must not exist yet.
func CopyTree(src, dst string) error {
	ok, err := Exists(dst)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%s already exists", dst)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			fi, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, fi.Mode().Perm()|0o700)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			return CopyFile(path, target)
		}
		return fmt.Errorf("%s: unsupported file type %s", path, d.Type())
	})
}

// AppendFile appends data to path, creating it if needed.
func AppendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Truncate empties an existing file or creates an empty one.
func Truncate(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Chrooted returns path as seen from inside root. An empty root leaves
// path as is.
func Chrooted(root, path string) string {
	if root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// EnsureDirTracked is EnsureDir that also returns the outermost
// directory it had to create, or "" when path already existed.
func EnsureDirTracked(path string) (string, error) {
	path = filepath.Clean(path)
	top := ""
	for p := path; ; p = filepath.Dir(p) {
		ok, err := Exists(p)
		if err != nil {
			return "", err
		}
		if ok {
			break
		}
		top = p
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	if err := EnsureDir(path); err != nil {
		return "", err
	}
	return top, nil
}

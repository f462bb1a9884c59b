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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/constants"
	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
)

// Store is the read-only directory of static fixtures.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Store{Dir: abs}, nil
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *Store) RepositoryDir() string {
	return s.Path(constants.RepositoryDir)
}

func (s *Store) PackagePath(file string) string {
	return filepath.Join(s.RepositoryDir(), file)
}

// KeyID returns the short ID of the public test key, upper case.
func (s *Store) KeyID() (string, error) {
	fl, err := os.Open(s.Path(constants.GPGKeyName))
	if err != nil {
		return "", err
	}
	defer fl.Close()

	keys, err := openpgp.ReadArmoredKeyRing(fl)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", constants.GPGKeyName, err)
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("%s contains no keys", constants.GPGKeyName)
	}
	return strings.ToUpper(keys[0].PrimaryKey.KeyIdShortString()), nil
}

// Required lists the fixtures every run needs, relative to the store.
func Required() []string {
	return []string{
		filepath.Join(constants.RepositoryDir, constants.TestPackageFile),
		filepath.Join(constants.RepositoryDir, constants.SignedPackageFile),
		filepath.Join(constants.RepositoryDir, "repodata", "repomd.xml"),
		constants.GPGKeyName,
		constants.MetalinkName,
		constants.MirrorlistName,
		constants.PluginName,
		constants.PluginConfName,
	}
}

// Missing returns the required fixtures absent from the store.
func (s *Store) Missing() ([]string, error) {
	var missing []string
	for _, name := range Required() {
		ok, err := fsutils.Exists(s.Path(name))
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (s *Store) Check() error {
	missing, err := s.Missing()
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &MissingError{Dir: s.Dir, Names: missing}
	}
	return nil
}

type MissingError struct {
	Dir   string
	Names []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("resource store %s is missing %s", e.Dir, strings.Join(e.Names, ", "))
}

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
	"bytes"
	"crypto"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

const (
	keyName    = "dnf-extra-tests"
	keyComment = "test key, do not trust"
	keyEmail   = "dnf-extra-tests@localhost"
)

// ArmoredKeyPair is an OpenPGP key in its armored private and public
// forms.
type ArmoredKeyPair struct {
	Private []byte
	Public  []byte
}

// GenerateKey creates an unprotected RSA signing key.
func GenerateKey() (*ArmoredKeyPair, error) {
	entity, err := openpgp.NewEntity(keyName, keyComment, keyEmail, &packet.Config{
		Algorithm:     packet.PubKeyAlgoRSA,
		RSABits:       3072,
		DefaultHash:   crypto.SHA256,
		DefaultCipher: packet.CipherAES256,
	})
	if err != nil {
		return nil, err
	}

	var priv, pub bytes.Buffer

	w, err := armor.Encode(&priv, openpgp.PrivateKeyType, nil)
	if err != nil {
		return nil, err
	}
	if err := entity.SerializePrivate(w, nil); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	w, err = armor.Encode(&pub, openpgp.PublicKeyType, nil)
	if err != nil {
		return nil, err
	}
	if err := entity.Serialize(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &ArmoredKeyPair{Private: priv.Bytes(), Public: pub.Bytes()}, nil
}

// WriteTo writes the pair to the given paths. The private key is only
// readable by the owner.
func (p *ArmoredKeyPair) WriteTo(privatePath, publicPath string) error {
	if err := os.WriteFile(privatePath, p.Private, 0o600); err != nil {
		return fmt.Errorf("cannot write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, p.Public, 0o644); err != nil {
		return fmt.Errorf("cannot write public key: %w", err)
	}
	return nil
}

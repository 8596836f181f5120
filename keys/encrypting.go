// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package keys

import (
	"crypto/ecdh"

	"github.com/sage-x-project/keybundle/seed"
	"github.com/sage-x-project/keybundle/securebuf"
)

// EncryptingPrivateLen is the fixed length of an encrypting pair's private half.
const EncryptingPrivateLen = 32

// EncryptingKeyPair is the X25519-style key-exchange half of a key bundle. It
// exists for key-exchange and future encrypt/decrypt operations outside this
// core; it exposes no sign/verify operations.
type EncryptingKeyPair struct {
	public    string
	publicRaw []byte
	private   *securebuf.Buffer
}

// NewEncryptingKeyPairFromSeed deterministically derives an X25519 keypair from
// a 32-byte seed. Any 32 bytes are a valid X25519 scalar (RFC 7748), so the seed
// is used directly with no intermediate conversion.
func NewEncryptingKeyPairFromSeed(s *seed.Seed) (*EncryptingKeyPair, error) {
	rg, err := s.Buffer().ReadLock()
	if err != nil {
		return nil, err
	}
	defer rg.Release()
	if len(rg.Bytes()) != seed.Len {
		return nil, ErrInvalidLength
	}

	priv, err := ecdh.X25519().NewPrivateKey(rg.Bytes())
	if err != nil {
		return nil, ErrKeyDerivation
	}
	pubRaw := priv.PublicKey().Bytes()

	id, err := EncodeEncryptingPubKey(pubRaw)
	if err != nil {
		return nil, ErrKeyDerivation
	}

	buf, err := securebuf.NewSecure(EncryptingPrivateLen)
	if err != nil {
		return nil, err
	}
	if err := buf.Write(0, priv.Bytes()); err != nil {
		buf.Destroy()
		return nil, err
	}

	return &EncryptingKeyPair{public: id, publicRaw: pubRaw, private: buf}, nil
}

// NewEncryptingKeyPairFromParts reconstructs an encrypting keypair from its raw
// public key bytes and its 32-byte private key buffer, as done when importing a
// blob. It takes ownership of privateBuf.
func NewEncryptingKeyPairFromParts(publicRaw []byte, privateBuf *securebuf.Buffer) (*EncryptingKeyPair, error) {
	if len(publicRaw) != rawKeyLen || privateBuf.Len() != EncryptingPrivateLen {
		return nil, ErrInvalidLength
	}
	id, err := EncodeEncryptingPubKey(publicRaw)
	if err != nil {
		return nil, ErrInvalidIdentifier
	}
	return &EncryptingKeyPair{public: id, publicRaw: append([]byte{}, publicRaw...), private: privateBuf}, nil
}

// Public returns the base32 public identifier.
func (k *EncryptingKeyPair) Public() string { return k.public }

// PublicRaw returns the raw 32-byte public key.
func (k *EncryptingKeyPair) PublicRaw() []byte { return append([]byte{}, k.publicRaw...) }

// Private returns the secure buffer holding the 32-byte private scalar.
func (k *EncryptingKeyPair) Private() *securebuf.Buffer { return k.private }

// Destroy zeroes the private key buffer.
func (k *EncryptingKeyPair) Destroy() { k.private.Destroy() }

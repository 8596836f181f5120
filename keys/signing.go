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

// Package keys implements the two keypair families a key bundle derives from a
// 32-byte seed: an Ed25519-style signing pair and an X25519-style encrypting
// pair. Both expose a string-encoded public identifier and a secure-buffer
// private half.
package keys

import (
	"crypto/ecdh"
	"crypto/ed25519"

	"github.com/sage-x-project/keybundle/seed"
	"github.com/sage-x-project/keybundle/securebuf"
)

// SigningPrivateLen is the fixed length of a signing pair's private half.
const SigningPrivateLen = ed25519.PrivateKeySize // 64

// SignatureLen is the fixed length of an Ed25519-style signature.
const SignatureLen = ed25519.SignatureSize // 64

// SigningKeyPair is the Ed25519-style signing half of a key bundle. Its private
// half lives in a secure buffer; Sign/Verify never expose it directly.
type SigningKeyPair struct {
	public    string
	publicRaw []byte
	private   *securebuf.Buffer
}

// NewSigningKeyPairFromSeed deterministically derives a signing keypair from a
// 32-byte seed.
func NewSigningKeyPairFromSeed(s *seed.Seed) (*SigningKeyPair, error) {
	rg, err := s.Buffer().ReadLock()
	if err != nil {
		return nil, err
	}
	defer rg.Release()
	if len(rg.Bytes()) != seed.Len {
		return nil, ErrInvalidLength
	}

	priv := ed25519.NewKeyFromSeed(rg.Bytes())
	pubRaw := append([]byte{}, priv[32:]...)

	id, err := EncodeSigningPubKey(pubRaw)
	if err != nil {
		return nil, ErrKeyDerivation
	}

	buf, err := securebuf.NewSecure(SigningPrivateLen)
	if err != nil {
		return nil, err
	}
	if err := buf.Write(0, priv); err != nil {
		buf.Destroy()
		return nil, err
	}

	return &SigningKeyPair{public: id, publicRaw: pubRaw, private: buf}, nil
}

// NewSigningKeyPairFromParts reconstructs a signing keypair from its raw public
// key bytes and its 64-byte private key buffer, as done when importing a blob.
// It takes ownership of privateBuf.
func NewSigningKeyPairFromParts(publicRaw []byte, privateBuf *securebuf.Buffer) (*SigningKeyPair, error) {
	if len(publicRaw) != rawKeyLen || privateBuf.Len() != SigningPrivateLen {
		return nil, ErrInvalidLength
	}
	id, err := EncodeSigningPubKey(publicRaw)
	if err != nil {
		return nil, ErrInvalidIdentifier
	}
	return &SigningKeyPair{public: id, publicRaw: append([]byte{}, publicRaw...), private: privateBuf}, nil
}

// Public returns the base32 public identifier.
func (k *SigningKeyPair) Public() string { return k.public }

// PublicRaw returns the raw 32-byte public key.
func (k *SigningKeyPair) PublicRaw() []byte { return append([]byte{}, k.publicRaw...) }

// Private returns the secure buffer holding the 64-byte private key. Callers
// must not retain the guard's byte slice past Release.
func (k *SigningKeyPair) Private() *securebuf.Buffer { return k.private }

// Sign writes a 64-byte Ed25519-style signature of data into sigOut. sigOut
// must be exactly SignatureLen bytes.
func (k *SigningKeyPair) Sign(data []byte, sigOut *securebuf.Buffer) error {
	if sigOut.Len() != SignatureLen {
		return ErrInvalidLength
	}
	rg, err := k.private.ReadLock()
	if err != nil {
		return err
	}
	defer rg.Release()

	sig := ed25519.Sign(ed25519.PrivateKey(rg.Bytes()), data)
	return sigOut.Write(0, sig)
}

// Verify reports whether sig is a valid signature of data under this pair's
// public key. A malformed signature never panics; it simply returns false.
func (k *SigningKeyPair) Verify(data, sig []byte) bool {
	if len(sig) != SignatureLen {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(k.publicRaw), data, sig)
}

// Destroy zeroes the private key buffer.
func (k *SigningKeyPair) Destroy() { k.private.Destroy() }

// VerifyWithPublicIdentifier verifies sig over data against the raw public
// key encoded in id, without requiring a full SigningKeyPair. It is used by
// callers that only hold a bundle's public identifier, such as the CLI
// verify command.
func VerifyWithPublicIdentifier(id string, data, sig []byte) (bool, error) {
	if len(sig) != SignatureLen {
		return false, nil
	}
	pubRaw, err := DecodeSigningPubKey(id)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(pubRaw), data, sig), nil
}

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
	"crypto/sha256"
	"encoding/base32"
)

// Identifiers are HCID-style: a 4-byte prefix identifying the key class, the
// 32-byte raw public key, and a 3-byte checksum, base32-encoded without padding.
//
//	offset  length  field
//	0       4       prefix
//	4       32      raw public key
//	36      3       checksum (first 3 bytes of sha256(prefix || public key))
//
// 39 raw bytes encode to exactly 63 base32 characters (ceil(39*8/5) = 63), the
// fixed identifier length named in the glossary.
const (
	rawKeyLen = 32
	// RawPublicKeyLen is the fixed length of a raw (un-encoded) public key for
	// either keypair family.
	RawPublicKeyLen  = rawKeyLen
	checksumLen      = 3
	identifierRawLen = 4 + rawKeyLen + checksumLen
	IdentifierLen    = 63
)

var signingPrefix = [4]byte{0x84, 0x20, 0x24, 0x01}
var encryptingPrefix = [4]byte{0x84, 0x20, 0x24, 0x02}

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

func checksum(prefix [4]byte, raw []byte) [checksumLen]byte {
	h := sha256.Sum256(append(append([]byte{}, prefix[:]...), raw...))
	var out [checksumLen]byte
	copy(out[:], h[:checksumLen])
	return out
}

// encodeIdentifier builds the base32 identifier for a raw public key under the
// given class prefix.
func encodeIdentifier(prefix [4]byte, raw []byte) (string, error) {
	if len(raw) != rawKeyLen {
		return "", ErrInvalidLength
	}
	sum := checksum(prefix, raw)
	packed := make([]byte, 0, identifierRawLen)
	packed = append(packed, prefix[:]...)
	packed = append(packed, raw...)
	packed = append(packed, sum[:]...)
	return b32.EncodeToString(packed), nil
}

// decodeIdentifier reverses encodeIdentifier, verifying the prefix and checksum,
// and returns the raw 32-byte public key.
func decodeIdentifier(prefix [4]byte, id string) ([]byte, error) {
	packed, err := b32.DecodeString(id)
	if err != nil || len(packed) != identifierRawLen {
		return nil, ErrInvalidIdentifier
	}
	gotPrefix := packed[:4]
	raw := packed[4 : 4+rawKeyLen]
	gotSum := packed[4+rawKeyLen:]

	for i := range prefix {
		if gotPrefix[i] != prefix[i] {
			return nil, ErrInvalidIdentifier
		}
	}
	wantSum := checksum(prefix, raw)
	for i := range wantSum {
		if gotSum[i] != wantSum[i] {
			return nil, ErrInvalidIdentifier
		}
	}
	return raw, nil
}

// EncodeSigningPubKey encodes a raw 32-byte Ed25519-style public key as a
// signing-key identifier.
func EncodeSigningPubKey(raw []byte) (string, error) {
	return encodeIdentifier(signingPrefix, raw)
}

// DecodeSigningPubKey recovers the raw 32-byte public key from a signing-key
// identifier.
func DecodeSigningPubKey(id string) ([]byte, error) {
	return decodeIdentifier(signingPrefix, id)
}

// EncodeEncryptingPubKey encodes a raw 32-byte X25519-style public key as an
// encrypting-key identifier.
func EncodeEncryptingPubKey(raw []byte) (string, error) {
	return encodeIdentifier(encryptingPrefix, raw)
}

// DecodeEncryptingPubKey recovers the raw 32-byte public key from an
// encrypting-key identifier.
func DecodeEncryptingPubKey(id string) ([]byte, error) {
	return decodeIdentifier(encryptingPrefix, id)
}

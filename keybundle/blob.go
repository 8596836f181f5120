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

package keybundle

import (
	"github.com/sage-x-project/keybundle/keys"
	"github.com/sage-x-project/keybundle/seed"
)

// BlobFormatVersion is the current blob layout version. Bumping it is a
// breaking change for every persisted blob.
const BlobFormatVersion byte = 2

// Layout of the decrypted plaintext buffer packed by AsBlob / unpacked by
// FromBlob:
//
//	offset  length  field
//	0       1       blob format version (must equal BlobFormatVersion)
//	1       32      signing public key (raw)
//	33      32      encrypting public key (raw)
//	65      64      signing private key
//	129     32      encrypting private key
//	161     7       zero padding
//
// blobDataLenMisaligned (161) is the packed length before alignment;
// BlobDataLen (168) rounds that up to the next multiple of 8.
const (
	offsetVersion          = 0
	offsetSigningPublic    = offsetVersion + 1
	offsetEncryptingPublic = offsetSigningPublic + keys.RawPublicKeyLen
	offsetSigningPrivate   = offsetEncryptingPublic + keys.RawPublicKeyLen
	offsetEncryptingPriv   = offsetSigningPrivate + keys.SigningPrivateLen

	blobDataLenMisaligned = offsetEncryptingPriv + keys.EncryptingPrivateLen // 161

	// BlobDataLen is the padded plaintext payload length, rounded up to the
	// next multiple of 8.
	BlobDataLen = ((blobDataLenMisaligned + 8 - 1) / 8) * 8 // 168
)

// KeyBlob is the portable serialization of a bundle: a seed type tag, a
// user-chosen hint, and base64(JSON(EncryptedData)) in Data.
type KeyBlob struct {
	SeedType seed.Type `json:"seed_type"`
	Hint     string    `json:"hint"`
	Data     string    `json:"data"`
}

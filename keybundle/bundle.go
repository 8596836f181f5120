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

// Package keybundle aggregates a signing pair and an encrypting pair derived
// from the same seed into a single portable identity, and serializes that
// identity to and from a passphrase-encrypted blob.
package keybundle

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/sage-x-project/keybundle/keys"
	"github.com/sage-x-project/keybundle/metrics"
	"github.com/sage-x-project/keybundle/pwhash"
	"github.com/sage-x-project/keybundle/securebuf"
	"github.com/sage-x-project/keybundle/seed"
)

// Bundle is the product of one signing pair, one encrypting pair, and a seed
// type. It does not retain the seed it was derived from.
type Bundle struct {
	signing    *keys.SigningKeyPair
	encrypting *keys.EncryptingKeyPair
	seedType   seed.Type
}

// NewFromSeed derives both keypairs from s and bundles them with s's type.
// The seed is not retained by the returned Bundle; callers still own it and
// should Destroy it when done.
func NewFromSeed(s *seed.Seed) (bundle *Bundle, err error) {
	start := time.Now()
	defer func() { metrics.Observe("generate", "bundle", start, err) }()

	if s.Buffer().Len() != seed.Len {
		return nil, ErrInvalidLength
	}

	signing, err := keys.NewSigningKeyPairFromSeed(s)
	if err != nil {
		return nil, err
	}
	encrypting, err := keys.NewEncryptingKeyPairFromSeed(s)
	if err != nil {
		signing.Destroy()
		return nil, err
	}

	return &Bundle{signing: signing, encrypting: encrypting, seedType: s.Type()}, nil
}

// GetID returns the signing pair's public identifier.
func (b *Bundle) GetID() string { return b.signing.Public() }

// SeedType returns the tag the bundle was derived with.
func (b *Bundle) SeedType() seed.Type { return b.seedType }

// Sign delegates to the signing pair.
func (b *Bundle) Sign(data []byte, sigOut *securebuf.Buffer) (err error) {
	start := time.Now()
	defer func() { metrics.Observe("sign", "bundle", start, err) }()
	err = b.signing.Sign(data, sigOut)
	return err
}

// Verify delegates to the signing pair.
func (b *Bundle) Verify(data, sig []byte) bool {
	start := time.Now()
	ok := b.signing.Verify(data, sig)
	var err error
	if !ok {
		err = errVerifyFailed
	}
	metrics.Observe("verify", "bundle", start, err)
	return ok
}

// EncryptingPublic returns the encrypting pair's public identifier.
func (b *Bundle) EncryptingPublic() string { return b.encrypting.Public() }

// IsSame reports structural equality: both public identifiers match, both
// private buffers compare equal in constant time, and the seed type matches.
func (b *Bundle) IsSame(other *Bundle) bool {
	if other == nil {
		return false
	}
	return b.signing.Public() == other.signing.Public() &&
		b.encrypting.Public() == other.encrypting.Public() &&
		b.seedType == other.seedType &&
		b.signing.Private().IsSame(other.signing.Private()) &&
		b.encrypting.Private().IsSame(other.encrypting.Private())
}

// Destroy zeroes both private key buffers.
func (b *Bundle) Destroy() {
	b.signing.Destroy()
	b.encrypting.Destroy()
}

// AsBlob packs the bundle's public and private key material into the layout
// buffer described in blob.go, encrypts it under passphrase via pwhash, and
// returns the resulting portable blob.
//
// The original source this layout was distilled from wrote the signing
// private key into both the signing-private slot and the slot intended for
// the encrypting private key — almost certainly a copy-paste bug, since the
// encrypting private key was then never persisted. This implementation writes
// each pair's own private bytes into its own slot.
func (b *Bundle) AsBlob(passphrase *securebuf.Buffer, hint string, cfg *pwhash.Config) (blob *KeyBlob, err error) {
	start := time.Now()
	defer func() { metrics.Observe("as_blob", "bundle", start, err) }()

	plain, err := securebuf.NewSecure(BlobDataLen)
	if err != nil {
		return nil, err
	}
	defer plain.Destroy()

	if err := plain.Write(offsetVersion, []byte{BlobFormatVersion}); err != nil {
		return nil, err
	}
	if err := plain.Write(offsetSigningPublic, b.signing.PublicRaw()); err != nil {
		return nil, err
	}
	if err := plain.Write(offsetEncryptingPublic, b.encrypting.PublicRaw()); err != nil {
		return nil, err
	}

	signPrivGuard, err := b.signing.Private().ReadLock()
	if err != nil {
		return nil, err
	}
	werr := plain.Write(offsetSigningPrivate, signPrivGuard.Bytes())
	signPrivGuard.Release()
	if werr != nil {
		return nil, werr
	}

	encPrivGuard, err := b.encrypting.Private().ReadLock()
	if err != nil {
		return nil, err
	}
	werr = plain.Write(offsetEncryptingPriv, encPrivGuard.Bytes())
	encPrivGuard.Release()
	if werr != nil {
		return nil, werr
	}
	// offsetEncryptingPriv + EncryptingPrivateLen == blobDataLenMisaligned;
	// the remaining bytes up to BlobDataLen stay zero as alignment padding.

	enc, err := pwhash.Encrypt(plain, passphrase, cfg)
	if err != nil {
		return nil, err
	}

	rawJSON, err := json.Marshal(enc)
	if err != nil {
		return nil, err
	}
	data := base64.StdEncoding.EncodeToString(rawJSON)

	return &KeyBlob{SeedType: b.seedType, Hint: hint, Data: data}, nil
}

// FromBlob reverses AsBlob: it base64/JSON-decodes blob.Data, decrypts the
// resulting payload under passphrase, checks the version byte, and
// reconstructs both keypairs from the fixed-offset fields. Every intermediate
// secure buffer is destroyed before returning, on both the success and
// failure paths.
func FromBlob(blob *KeyBlob, passphrase *securebuf.Buffer, cfg *pwhash.Config) (bundle *Bundle, err error) {
	start := time.Now()
	defer func() { metrics.Observe("from_blob", "bundle", start, err) }()

	rawJSON, err := base64.StdEncoding.DecodeString(blob.Data)
	if err != nil {
		return nil, ErrBlobDecode
	}
	var enc pwhash.EncryptedData
	if err := json.Unmarshal(rawJSON, &enc); err != nil {
		return nil, ErrBlobDecode
	}

	plain, err := securebuf.NewSecure(BlobDataLen)
	if err != nil {
		return nil, err
	}
	defer plain.Destroy()

	if err := pwhash.Decrypt(&enc, passphrase, plain, cfg); err != nil {
		return nil, err
	}

	rg, err := plain.ReadLock()
	if err != nil {
		return nil, err
	}
	version := rg.Bytes()[offsetVersion]
	if version != BlobFormatVersion {
		rg.Release()
		return nil, &VersionError{Actual: version, Expected: BlobFormatVersion}
	}

	signPublic := append([]byte{}, rg.Bytes()[offsetSigningPublic:offsetSigningPublic+keys.RawPublicKeyLen]...)
	encPublic := append([]byte{}, rg.Bytes()[offsetEncryptingPublic:offsetEncryptingPublic+keys.RawPublicKeyLen]...)
	signPrivateRaw := append([]byte{}, rg.Bytes()[offsetSigningPrivate:offsetSigningPrivate+keys.SigningPrivateLen]...)
	encPrivateRaw := append([]byte{}, rg.Bytes()[offsetEncryptingPriv:offsetEncryptingPriv+keys.EncryptingPrivateLen]...)
	rg.Release()

	signPrivBuf, err := securebuf.NewSecure(keys.SigningPrivateLen)
	if err != nil {
		return nil, err
	}
	if err := signPrivBuf.Write(0, signPrivateRaw); err != nil {
		signPrivBuf.Destroy()
		return nil, err
	}
	for i := range signPrivateRaw {
		signPrivateRaw[i] = 0
	}

	encPrivBuf, err := securebuf.NewSecure(keys.EncryptingPrivateLen)
	if err != nil {
		signPrivBuf.Destroy()
		return nil, err
	}
	if err := encPrivBuf.Write(0, encPrivateRaw); err != nil {
		signPrivBuf.Destroy()
		encPrivBuf.Destroy()
		return nil, err
	}
	for i := range encPrivateRaw {
		encPrivateRaw[i] = 0
	}

	signing, err := keys.NewSigningKeyPairFromParts(signPublic, signPrivBuf)
	if err != nil {
		signPrivBuf.Destroy()
		encPrivBuf.Destroy()
		return nil, err
	}
	encrypting, err := keys.NewEncryptingKeyPairFromParts(encPublic, encPrivBuf)
	if err != nil {
		signing.Destroy()
		encPrivBuf.Destroy()
		return nil, err
	}

	return &Bundle{signing: signing, encrypting: encrypting, seedType: blob.SeedType}, nil
}

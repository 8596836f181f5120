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

package pwhash

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sage-x-project/keybundle/securebuf"
)

// SaltLen is the fixed length of the KDF salt.
const SaltLen = 16

// derivedKeyLen is the AEAD key size chacha20poly1305 expects.
const derivedKeyLen = chacha20poly1305.KeySize

// ByteArray marshals as a JSON array of byte-valued integers (`[1,2,3]`)
// rather than Go's default base64-string encoding of []byte, matching the
// wire format named in the external interfaces: each EncryptedData field is a
// JSON array of byte-valued integers, not a base64 string.
type ByteArray []byte

// MarshalJSON implements json.Marshaler.
func (b ByteArray) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// EncryptedData is the (salt, nonce, ciphertext) triple produced by Encrypt.
type EncryptedData struct {
	Salt   ByteArray `json:"salt"`
	Nonce  ByteArray `json:"nonce"`
	Cipher ByteArray `json:"cipher"`
}

// Encrypt derives a symmetric key from passphrase under cfg (nil for
// defaults), draws a fresh salt and nonce from the CSPRNG, and AEAD-encrypts
// plaintext with no associated data.
func Encrypt(plaintext *securebuf.Buffer, passphrase *securebuf.Buffer, cfg *Config) (*EncryptedData, error) {
	cfg = cfg.orDefault()

	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, ErrKdfError
	}

	keyBuf, err := deriveKey(passphrase, salt, cfg)
	if err != nil {
		return nil, err
	}
	defer keyBuf.Destroy()

	aead, err := newAEAD(keyBuf)
	if err != nil {
		return nil, ErrCipherError
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, ErrCipherError
	}

	ptGuard, err := plaintext.ReadLock()
	if err != nil {
		return nil, err
	}
	defer ptGuard.Release()

	cipherBytes := aead.Seal(nil, nonce, ptGuard.Bytes(), nil)

	return &EncryptedData{Salt: salt, Nonce: nonce, Cipher: cipherBytes}, nil
}

// Decrypt re-derives the symmetric key from passphrase and data.Salt under
// cfg, AEAD-decrypts data.Cipher with data.Nonce, and writes exactly
// plaintextOut.Len() bytes into it. Returns ErrWrongPassphrase on tag mismatch
// and ErrInvalidLength if the decrypted length does not match plaintextOut.
func Decrypt(data *EncryptedData, passphrase *securebuf.Buffer, plaintextOut *securebuf.Buffer, cfg *Config) error {
	cfg = cfg.orDefault()

	keyBuf, err := deriveKey(passphrase, data.Salt, cfg)
	if err != nil {
		return err
	}
	defer keyBuf.Destroy()

	aead, err := newAEAD(keyBuf)
	if err != nil {
		return ErrCipherError
	}

	plain, err := aead.Open(nil, data.Nonce, data.Cipher, nil)
	if err != nil {
		return ErrWrongPassphrase
	}
	if len(plain) != plaintextOut.Len() {
		return ErrInvalidLength
	}

	return plaintextOut.Write(0, plain)
}

func deriveKey(passphrase *securebuf.Buffer, salt []byte, cfg *Config) (*securebuf.Buffer, error) {
	if cfg.Alg != Argon2id13 {
		return nil, ErrKdfError
	}

	pg, err := passphrase.ReadLock()
	if err != nil {
		return nil, ErrKdfError
	}
	defer pg.Release()

	derived := argon2.IDKey(pg.Bytes(), salt, cfg.OpsLimit, cfg.MemLimitKiB, cfg.Threads, derivedKeyLen)

	buf, err := securebuf.NewSecure(derivedKeyLen)
	if err != nil {
		return nil, err
	}
	if err := buf.Write(0, derived); err != nil {
		buf.Destroy()
		return nil, err
	}
	for i := range derived {
		derived[i] = 0
	}
	return buf, nil
}

func newAEAD(keyBuf *securebuf.Buffer) (cipher.AEAD, error) {
	kg, err := keyBuf.ReadLock()
	if err != nil {
		return nil, err
	}
	defer kg.Release()
	return chacha20poly1305.NewX(kg.Bytes())
}

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

// Package vault implements the "keystore persistence" collaborator: it stores
// and retrieves opaque KeyBlob values keyed by bundle ID. A blob is already a
// self-contained encrypted record (see package keybundle), so the vault never
// sees a passphrase and performs no encryption of its own.
package vault

import (
	"errors"
	"os"

	"github.com/sage-x-project/keybundle/keybundle"
)

// ErrKeyNotFound is returned when no blob is stored under the requested ID.
var ErrKeyNotFound = errors.New("vault: key not found")

// ErrInvalidKeyID is returned for an empty or otherwise invalid key ID.
var ErrInvalidKeyID = errors.New("vault: invalid key id")

// BlobVault stores and retrieves KeyBlob values keyed by bundle ID.
type BlobVault interface {
	Store(id string, blob keybundle.KeyBlob) error
	Load(id string) (keybundle.KeyBlob, error)
	Delete(id string) error
	Exists(id string) bool
	List() ([]string, error)
	SetPermissions(id string, mode os.FileMode) error
}

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

package vault

import (
	"os"
	"sort"
	"sync"

	"github.com/sage-x-project/keybundle/keybundle"
)

// MemoryVault is an in-process BlobVault backed by a map, useful for tests
// and short-lived tooling. SetPermissions is a no-op since there is no
// underlying file.
type MemoryVault struct {
	mu    sync.RWMutex
	blobs map[string]keybundle.KeyBlob
}

// NewMemoryVault returns an empty MemoryVault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{blobs: make(map[string]keybundle.KeyBlob)}
}

// Store saves blob under id, overwriting any existing entry.
func (v *MemoryVault) Store(id string, blob keybundle.KeyBlob) error {
	if id == "" {
		return ErrInvalidKeyID
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.blobs[id] = blob
	return nil
}

// Load returns the blob stored under id.
func (v *MemoryVault) Load(id string) (keybundle.KeyBlob, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	blob, ok := v.blobs[id]
	if !ok {
		return keybundle.KeyBlob{}, ErrKeyNotFound
	}
	return blob, nil
}

// Delete removes the entry stored under id, if any.
func (v *MemoryVault) Delete(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.blobs, id)
	return nil
}

// Exists reports whether id has a stored entry.
func (v *MemoryVault) Exists(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.blobs[id]
	return ok
}

// List returns every stored key ID, sorted lexically.
func (v *MemoryVault) List() ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := make([]string, 0, len(v.blobs))
	for id := range v.blobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// SetPermissions changes nothing for MemoryVault; it exists only to satisfy
// BlobVault, and returns ErrKeyNotFound when id has no entry.
func (v *MemoryVault) SetPermissions(id string, mode os.FileMode) error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if _, ok := v.blobs[id]; !ok {
		return ErrKeyNotFound
	}
	return nil
}

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
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sage-x-project/keybundle/keybundle"
	"github.com/sage-x-project/keybundle/metrics"
)

const blobFileExt = ".keyblob.json"

// FileVault persists blobs as one JSON file per key ID under a base
// directory. Key IDs are sanitized with filepath.Base before touching the
// filesystem, so a caller cannot escape the base directory with a crafted ID.
type FileVault struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileVault creates (if needed) baseDir with 0700 permissions and returns a
// vault rooted there.
func NewFileVault(baseDir string) (*FileVault, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, err
	}
	return &FileVault{baseDir: baseDir}, nil
}

func (v *FileVault) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return "", ErrInvalidKeyID
	}
	clean := filepath.Base(id)
	if clean != id || clean == "." || clean == string(filepath.Separator) {
		return "", ErrInvalidKeyID
	}
	return filepath.Join(v.baseDir, clean+blobFileExt), nil
}

// Store writes blob to disk under id, creating or truncating the file with
// mode 0600.
func (v *FileVault) Store(id string, blob keybundle.KeyBlob) (err error) {
	start := time.Now()
	defer func() { metrics.Observe("vault_store", "vault", start, err) }()

	p, perr := v.path(id)
	if perr != nil {
		err = perr
		return err
	}
	raw, merr := json.Marshal(blob)
	if merr != nil {
		err = merr
		return err
	}

	v.mu.Lock()
	err = os.WriteFile(p, raw, 0o600)
	count := v.countLocked()
	v.mu.Unlock()
	if err == nil {
		metrics.SetVaultSize(v.baseDir, count)
	}
	return err
}

// Load reads and decodes the blob stored under id.
func (v *FileVault) Load(id string) (blob keybundle.KeyBlob, err error) {
	start := time.Now()
	defer func() { metrics.Observe("vault_load", "vault", start, err) }()

	p, perr := v.path(id)
	if perr != nil {
		err = perr
		return keybundle.KeyBlob{}, err
	}

	v.mu.RLock()
	raw, rerr := os.ReadFile(p)
	v.mu.RUnlock()
	if os.IsNotExist(rerr) {
		err = ErrKeyNotFound
		return keybundle.KeyBlob{}, err
	}
	if rerr != nil {
		err = rerr
		return keybundle.KeyBlob{}, err
	}

	if err = json.Unmarshal(raw, &blob); err != nil {
		return keybundle.KeyBlob{}, err
	}
	return blob, nil
}

// countLocked returns the number of stored blobs. Callers must already hold
// v.mu (read or write).
func (v *FileVault) countLocked() int {
	entries, err := os.ReadDir(v.baseDir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), blobFileExt) {
			n++
		}
	}
	return n
}

// Delete removes the file stored under id. Deleting a nonexistent ID is not
// an error.
func (v *FileVault) Delete(id string) error {
	p, err := v.path(id)
	if err != nil {
		return err
	}

	v.mu.Lock()
	err = os.Remove(p)
	count := v.countLocked()
	v.mu.Unlock()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	metrics.SetVaultSize(v.baseDir, count)
	return nil
}

// Exists reports whether a blob is stored under id.
func (v *FileVault) Exists(id string) bool {
	p, err := v.path(id)
	if err != nil {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, err = os.Stat(p)
	return err == nil
}

// List returns every stored key ID, sorted lexically.
func (v *FileVault) List() ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	entries, err := os.ReadDir(v.baseDir)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, blobFileExt) {
			ids = append(ids, strings.TrimSuffix(name, blobFileExt))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// SetPermissions changes the file mode of the blob stored under id.
func (v *FileVault) SetPermissions(id string, mode os.FileMode) error {
	p, err := v.path(id)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return ErrKeyNotFound
	}
	return os.Chmod(p, mode)
}

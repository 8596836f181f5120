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

// Package rotation replaces the bundle stored under a vault key ID with a
// freshly derived bundle of the same seed type, keeping an in-memory,
// newest-first history of each rotation.
package rotation

import (
	"fmt"
	"sync"
	"time"

	"github.com/sage-x-project/keybundle/keybundle"
	"github.com/sage-x-project/keybundle/metrics"
	"github.com/sage-x-project/keybundle/pwhash"
	"github.com/sage-x-project/keybundle/securebuf"
	"github.com/sage-x-project/keybundle/seed"
	"github.com/sage-x-project/keybundle/vault"
)

// Event records a single rotation.
type Event struct {
	Timestamp time.Time
	OldID     string
	NewID     string
	Reason    string
}

// Config controls rotation behavior. Only KeepOldBlob is currently
// consulted; RotationInterval and MaxAge are reserved for a future
// scheduler-driven auto-rotation feature.
type Config struct {
	KeepOldBlob      bool
	RotationInterval time.Duration
	MaxAge           time.Duration
}

// Rotator rotates vault-stored bundles and records rotation history.
type Rotator struct {
	v        vault.BlobVault
	mu       sync.RWMutex
	config   Config
	history  map[string][]Event
	rotating map[string]bool
}

// NewRotator returns a Rotator operating over v, with old blobs discarded by
// default.
func NewRotator(v vault.BlobVault) *Rotator {
	return &Rotator{
		v:        v,
		config:   Config{KeepOldBlob: false},
		history:  make(map[string][]Event),
		rotating: make(map[string]bool),
	}
}

// SetConfig replaces the rotator's configuration.
func (r *Rotator) SetConfig(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = cfg
}

// Rotate loads the blob stored under id, decrypts it with passphrase, derives
// a brand new bundle of the same seed type from fresh randomness, stores the
// new blob back under id (optionally preserving the old one under
// "id.old.<oldID>"), and records an Event. It returns the new bundle; callers
// own it and must Destroy it.
func (r *Rotator) Rotate(id string, passphrase *securebuf.Buffer, hint string, cfg *pwhash.Config) (newBundle *keybundle.Bundle, err error) {
	start := time.Now()
	defer func() { metrics.Observe("rotate", "bundle", start, err) }()

	r.mu.Lock()
	if r.rotating[id] {
		r.mu.Unlock()
		return nil, fmt.Errorf("rotation: key %s is already being rotated", id)
	}
	r.rotating[id] = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.rotating, id)
		r.mu.Unlock()
	}()

	var oldBlob keybundle.KeyBlob
	oldBlob, err = r.v.Load(id)
	if err != nil {
		return nil, err
	}
	oldBundle, err := keybundle.FromBlob(&oldBlob, passphrase, cfg)
	if err != nil {
		return nil, fmt.Errorf("rotation: decrypt old bundle: %w", err)
	}
	oldID := oldBundle.GetID()
	oldSeedType := oldBundle.SeedType()
	oldBundle.Destroy()

	newSeed, err := seed.NewRandom(oldSeedType)
	if err != nil {
		return nil, fmt.Errorf("rotation: generate seed: %w", err)
	}
	defer newSeed.Destroy()

	newBundle, err = keybundle.NewFromSeed(newSeed)
	if err != nil {
		return nil, fmt.Errorf("rotation: derive new bundle: %w", err)
	}

	newBlob, err := newBundle.AsBlob(passphrase, hint, cfg)
	if err != nil {
		newBundle.Destroy()
		return nil, fmt.Errorf("rotation: encrypt new bundle: %w", err)
	}

	r.mu.RLock()
	keepOld := r.config.KeepOldBlob
	r.mu.RUnlock()
	if keepOld {
		oldKeyID := fmt.Sprintf("%s.old.%s", id, oldID)
		if err := r.v.Store(oldKeyID, oldBlob); err != nil {
			newBundle.Destroy()
			return nil, fmt.Errorf("rotation: store old blob: %w", err)
		}
	}

	if err := r.v.Store(id, *newBlob); err != nil {
		newBundle.Destroy()
		return nil, fmt.Errorf("rotation: store new blob: %w", err)
	}

	event := Event{
		Timestamp: time.Now(),
		OldID:     oldID,
		NewID:     newBundle.GetID(),
		Reason:    "manual rotation",
	}
	r.mu.Lock()
	r.history[id] = append(r.history[id], event)
	r.mu.Unlock()

	return newBundle, nil
}

// History returns the rotation history for id, newest first.
func (r *Rotator) History(id string) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events, ok := r.history[id]
	if !ok {
		return []Event{}
	}
	out := make([]Event, len(events))
	for i, e := range events {
		out[len(events)-1-i] = e
	}
	return out
}

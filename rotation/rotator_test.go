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

package rotation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/keybundle/keybundle"
	"github.com/sage-x-project/keybundle/pwhash"
	"github.com/sage-x-project/keybundle/securebuf"
	"github.com/sage-x-project/keybundle/seed"
	"github.com/sage-x-project/keybundle/vault"
)

func fastConfig() *pwhash.Config {
	return &pwhash.Config{Alg: pwhash.Argon2id13, OpsLimit: 1, MemLimitKiB: 8 * 1024, Threads: 1}
}

func mustPassphrase(t *testing.T, s string) *securebuf.Buffer {
	t.Helper()
	b, err := securebuf.NewSecure(len(s))
	require.NoError(t, err)
	require.NoError(t, b.Write(0, []byte(s)))
	return b
}

func seedBundle(t *testing.T, typ seed.Type) *keybundle.Bundle {
	t.Helper()
	s, err := seed.NewRandom(typ)
	require.NoError(t, err)
	defer s.Destroy()
	b, err := keybundle.NewFromSeed(s)
	require.NoError(t, err)
	return b
}

func TestRotateReplacesBlobAndRecordsHistory(t *testing.T) {
	v := vault.NewMemoryVault()
	pass := mustPassphrase(t, "pw")
	defer pass.Destroy()

	orig := seedBundle(t, seed.TypeApplication)
	defer orig.Destroy()
	origBlob, err := orig.AsBlob(pass, "v1", fastConfig())
	require.NoError(t, err)
	require.NoError(t, v.Store("svc", *origBlob))

	r := NewRotator(v)
	newBundle, err := r.Rotate("svc", pass, "v2", fastConfig())
	require.NoError(t, err)
	defer newBundle.Destroy()

	assert.NotEqual(t, orig.GetID(), newBundle.GetID())

	stored, err := v.Load("svc")
	require.NoError(t, err)
	assert.Equal(t, "v2", stored.Hint)

	hist := r.History("svc")
	require.Len(t, hist, 1)
	assert.Equal(t, orig.GetID(), hist[0].OldID)
	assert.Equal(t, newBundle.GetID(), hist[0].NewID)
}

func TestRotatePreservesOldBlobWhenConfigured(t *testing.T) {
	v := vault.NewMemoryVault()
	pass := mustPassphrase(t, "pw")
	defer pass.Destroy()

	orig := seedBundle(t, seed.TypeDevice)
	defer orig.Destroy()
	origBlob, err := orig.AsBlob(pass, "v1", fastConfig())
	require.NoError(t, err)
	require.NoError(t, v.Store("dev", *origBlob))

	r := NewRotator(v)
	r.SetConfig(Config{KeepOldBlob: true})

	newBundle, err := r.Rotate("dev", pass, "v2", fastConfig())
	require.NoError(t, err)
	defer newBundle.Destroy()

	oldKeyID := "dev.old." + orig.GetID()
	assert.True(t, v.Exists(oldKeyID))
}

func TestRotateUnknownIDFails(t *testing.T) {
	v := vault.NewMemoryVault()
	pass := mustPassphrase(t, "pw")
	defer pass.Destroy()

	r := NewRotator(v)
	_, err := r.Rotate("ghost", pass, "hint", fastConfig())
	assert.ErrorIs(t, err, vault.ErrKeyNotFound)
}

func TestRotateWrongPassphraseFails(t *testing.T) {
	v := vault.NewMemoryVault()
	pass := mustPassphrase(t, "right")
	defer pass.Destroy()
	wrong := mustPassphrase(t, "wrong")
	defer wrong.Destroy()

	orig := seedBundle(t, seed.TypeRoot)
	defer orig.Destroy()
	origBlob, err := orig.AsBlob(pass, "v1", fastConfig())
	require.NoError(t, err)
	require.NoError(t, v.Store("k", *origBlob))

	r := NewRotator(v)
	_, err = r.Rotate("k", wrong, "v2", fastConfig())
	assert.Error(t, err)
}

// TestRotateConcurrent races several goroutines against Rotate on the same
// ID. The rotating map guard turns away any caller that overlaps a rotation
// in progress; at least one caller must succeed, the history must hold one
// event per success, and the vault must end up holding a single, decryptable
// bundle, never a torn or duplicated write.
func TestRotateConcurrent(t *testing.T) {
	v := vault.NewMemoryVault()
	pass := mustPassphrase(t, "pw")
	defer pass.Destroy()

	orig := seedBundle(t, seed.TypeApplication)
	defer orig.Destroy()
	origBlob, err := orig.AsBlob(pass, "v0", fastConfig())
	require.NoError(t, err)
	require.NoError(t, v.Store("concurrent", *origBlob))

	r := NewRotator(v)

	const attempts = 5
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			newBundle, err := r.Rotate("concurrent", pass, "v1", fastConfig())
			if newBundle != nil {
				newBundle.Destroy()
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var errs []error
	for err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}

	assert.Less(t, len(errs), attempts, "at least one concurrent rotation must succeed")

	stored, err := v.Load("concurrent")
	require.NoError(t, err)
	final, err := keybundle.FromBlob(&stored, pass, fastConfig())
	require.NoError(t, err)
	defer final.Destroy()

	hist := r.History("concurrent")
	assert.Len(t, hist, attempts-len(errs))
}

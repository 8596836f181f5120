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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/keybundle/keybundle"
	"github.com/sage-x-project/keybundle/seed"
)

func sampleBlob(hint string) keybundle.KeyBlob {
	return keybundle.KeyBlob{SeedType: seed.TypeRoot, Hint: hint, Data: "YWJjZA=="}
}

func testVaultRoundTrip(t *testing.T, v BlobVault) {
	t.Helper()

	assert.False(t, v.Exists("alice"))
	_, err := v.Load("alice")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, v.Store("alice", sampleBlob("a")))
	require.NoError(t, v.Store("bob", sampleBlob("b")))

	assert.True(t, v.Exists("alice"))
	got, err := v.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Hint)

	ids, err := v.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, ids)

	require.NoError(t, v.Delete("alice"))
	assert.False(t, v.Exists("alice"))
	ids, err = v.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, ids)
}

func TestMemoryVaultRoundTrip(t *testing.T) {
	testVaultRoundTrip(t, NewMemoryVault())
}

func TestMemoryVaultInvalidID(t *testing.T) {
	v := NewMemoryVault()
	assert.ErrorIs(t, v.Store("", sampleBlob("x")), ErrInvalidKeyID)
}

func TestFileVaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	v, err := NewFileVault(dir)
	require.NoError(t, err)
	testVaultRoundTrip(t, v)
}

func TestFileVaultRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	v, err := NewFileVault(dir)
	require.NoError(t, err)

	err = v.Store("../escape", sampleBlob("x"))
	assert.ErrorIs(t, err, ErrInvalidKeyID)

	err = v.Store("sub/dir", sampleBlob("x"))
	assert.ErrorIs(t, err, ErrInvalidKeyID)
}

func TestFileVaultPermissionsAndMode(t *testing.T) {
	dir := t.TempDir()
	v, err := NewFileVault(dir)
	require.NoError(t, err)

	require.NoError(t, v.Store("carol", sampleBlob("c")))

	p := filepath.Join(dir, "carol"+blobFileExt)
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, v.SetPermissions("carol", 0o400))
	info, err = os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())

	err = v.SetPermissions("missing", 0o600)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileVaultLoadCorruptJSON(t *testing.T) {
	dir := t.TempDir()
	v, err := NewFileVault(dir)
	require.NoError(t, err)

	p := filepath.Join(dir, "dave"+blobFileExt)
	require.NoError(t, os.WriteFile(p, []byte("not json"), 0o600))

	_, err = v.Load("dave")
	assert.Error(t, err)
}

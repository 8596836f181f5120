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

package securebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecureAndInsecure(t *testing.T) {
	sb, err := NewSecure(32)
	require.NoError(t, err)
	assert.Equal(t, 32, sb.Len())
	assert.True(t, sb.IsSecure())

	ib, err := NewInsecure(16)
	require.NoError(t, err)
	assert.Equal(t, 16, ib.Len())
	assert.False(t, ib.IsSecure())

	_, err = NewSecure(-1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestWriteBoundsChecked(t *testing.T) {
	b, err := NewSecure(8)
	require.NoError(t, err)
	defer b.Destroy()

	assert.NoError(t, b.Write(0, []byte("12345678")))
	assert.ErrorIs(t, b.Write(4, []byte("12345678")), ErrOutOfBounds)
	assert.ErrorIs(t, b.Write(-1, []byte("a")), ErrOutOfBounds)
}

func TestReadWriteLockRoundTrip(t *testing.T) {
	b, err := NewSecure(4)
	require.NoError(t, err)
	defer b.Destroy()

	wg, err := b.WriteLock()
	require.NoError(t, err)
	copy(wg.Bytes(), []byte{1, 2, 3, 4})
	wg.Release()

	rg, err := b.ReadLock()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, rg.Bytes())
	rg.Release()
}

func TestRandomizeFillsBuffer(t *testing.T) {
	b, err := NewInsecure(32)
	require.NoError(t, err)
	defer b.Destroy()

	zero := make([]byte, 32)
	rg, _ := b.ReadLock()
	before := append([]byte(nil), rg.Bytes()...)
	rg.Release()
	assert.Equal(t, zero, before)

	require.NoError(t, b.Randomize())
	rg, _ = b.ReadLock()
	after := append([]byte(nil), rg.Bytes()...)
	rg.Release()
	assert.NotEqual(t, zero, after)
}

func TestDestroyZeroesAndIsIdempotent(t *testing.T) {
	b, err := NewSecure(16)
	require.NoError(t, err)
	require.NoError(t, b.Randomize())

	b.Destroy()
	assert.True(t, b.Destroyed())

	rg, err := b.ReadLock()
	assert.ErrorIs(t, err, ErrDestroyed)
	assert.Nil(t, rg)

	// idempotent
	assert.NotPanics(t, func() { b.Destroy() })
}

func TestIsSame(t *testing.T) {
	a, err := NewSecure(4)
	require.NoError(t, err)
	defer a.Destroy()
	require.NoError(t, a.Write(0, []byte{9, 9, 9, 9}))

	b, err := NewSecure(4)
	require.NoError(t, err)
	defer b.Destroy()
	require.NoError(t, b.Write(0, []byte{9, 9, 9, 9}))

	c, err := NewSecure(5)
	require.NoError(t, err)
	defer c.Destroy()

	assert.True(t, a.IsSame(b))
	assert.False(t, a.IsSame(c))

	require.NoError(t, b.Write(0, []byte{1, 9, 9, 9}))
	assert.False(t, a.IsSame(b))
}

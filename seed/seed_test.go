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

package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/keybundle/securebuf"
)

func TestNewRandomHasFixedLength(t *testing.T) {
	s, err := NewRandom(TypeRoot)
	require.NoError(t, err)
	defer s.Destroy()

	assert.Equal(t, Len, s.Buffer().Len())
	assert.Equal(t, TypeRoot, s.Type())
}

func TestNewFromBytesRejectsWrongLength(t *testing.T) {
	_, err := NewFromBytes(make([]byte, 16), TypeApplication)
	assert.ErrorIs(t, err, securebuf.ErrInvalidLength)
}

func TestNewFromBytesFixedSeed(t *testing.T) {
	raw := make([]byte, Len)
	s, err := NewFromBytes(raw, TypeRoot)
	require.NoError(t, err)
	defer s.Destroy()

	rg, err := s.Buffer().ReadLock()
	require.NoError(t, err)
	defer rg.Release()
	assert.Equal(t, raw, rg.Bytes())
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeRoot, TypeRevocation, TypeDevice, TypeDevicePin, TypeApplication} {
		assert.True(t, typ.Valid())
	}
	assert.False(t, Type("bogus").Valid())
}

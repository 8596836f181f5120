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

package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIdentifierFixedLength(t *testing.T) {
	raw := make([]byte, rawKeyLen)
	for i := range raw {
		raw[i] = byte(i)
	}

	id, err := EncodeSigningPubKey(raw)
	require.NoError(t, err)
	assert.Len(t, id, IdentifierLen)

	decoded, err := DecodeSigningPubKey(id)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestEncodeIdentifierRejectsWrongLength(t *testing.T) {
	_, err := EncodeSigningPubKey(make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestDecodeIdentifierRejectsWrongClass(t *testing.T) {
	raw := make([]byte, rawKeyLen)
	signingID, err := EncodeSigningPubKey(raw)
	require.NoError(t, err)

	_, err = DecodeEncryptingPubKey(signingID)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestDecodeIdentifierRejectsCorruption(t *testing.T) {
	raw := make([]byte, rawKeyLen)
	id, err := EncodeSigningPubKey(raw)
	require.NoError(t, err)

	corrupted := []rune(id)
	if corrupted[0] == 'A' {
		corrupted[0] = 'B'
	} else {
		corrupted[0] = 'A'
	}
	_, err = DecodeSigningPubKey(string(corrupted))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

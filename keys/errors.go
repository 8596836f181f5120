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

import "errors"

// ErrKeyDerivation is returned when the underlying primitive rejects a seed.
var ErrKeyDerivation = errors.New("keys: underlying primitive rejected seed")

// ErrInvalidLength is returned when a buffer passed to a keys operation has the wrong size.
var ErrInvalidLength = errors.New("keys: invalid length")

// ErrInvalidIdentifier is returned when a base32 identifier fails to decode or its
// checksum does not match.
var ErrInvalidIdentifier = errors.New("keys: invalid identifier")

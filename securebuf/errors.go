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

import "errors"

// ErrOutOfBounds is returned when a write would exceed a buffer's fixed capacity.
var ErrOutOfBounds = errors.New("securebuf: write exceeds buffer capacity")

// ErrInvalidLength is returned when a buffer or slice has the wrong size for an operation.
var ErrInvalidLength = errors.New("securebuf: invalid length")

// ErrDestroyed is returned when an operation is attempted on a buffer that was already destroyed.
var ErrDestroyed = errors.New("securebuf: buffer already destroyed")

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

package pwhash

import "errors"

// ErrKdfError is returned when the key derivation step fails (unsupported
// algorithm, or memory/ops limits the runtime cannot satisfy).
var ErrKdfError = errors.New("pwhash: kdf failure")

// ErrCipherError is returned for an AEAD failure other than a tag mismatch.
var ErrCipherError = errors.New("pwhash: cipher failure")

// ErrWrongPassphrase is returned when the AEAD authentication tag does not
// match on decrypt — distinct from ErrCipherError so callers can give a
// passphrase-specific remediation message.
var ErrWrongPassphrase = errors.New("pwhash: wrong passphrase")

// ErrInvalidLength is returned when a destination buffer does not match the
// expected plaintext length.
var ErrInvalidLength = errors.New("pwhash: invalid length")

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

package keybundle

import (
	"errors"
	"fmt"
)

// ErrBlobDecode is returned when a blob's data field fails base64 or JSON
// decoding.
var ErrBlobDecode = errors.New("keybundle: blob decode failed")

// ErrInvalidLength is returned when a seed or buffer has the wrong size.
var ErrInvalidLength = errors.New("keybundle: invalid length")

// errVerifyFailed marks a failed signature check for metrics purposes only;
// Bundle.Verify still reports the result as a plain bool to callers.
var errVerifyFailed = errors.New("keybundle: signature verification failed")

// VersionError reports a blob format version mismatch, carrying both the
// version byte actually found and the version this build expects.
type VersionError struct {
	Actual, Expected byte
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("keybundle: blob version %d, expected %d", e.Actual, e.Expected)
}

// IsVersionError reports whether err is a *VersionError.
func IsVersionError(err error) bool {
	var ve *VersionError
	return errors.As(err, &ve)
}

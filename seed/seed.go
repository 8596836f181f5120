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

// Package seed models the 32-byte root secret a key bundle is derived from,
// plus the descriptive tag classifying its role.
package seed

import (
	"github.com/sage-x-project/keybundle/securebuf"
)

// Len is the fixed length of a seed in bytes.
const Len = 32

// Type classifies the role a bundle built from a seed plays. It is descriptive
// only: it never alters key derivation.
type Type string

const (
	TypeRoot        Type = "Root"
	TypeRevocation  Type = "Revocation"
	TypeDevice      Type = "Device"
	TypeDevicePin   Type = "DevicePin"
	TypeApplication Type = "Application"
)

// Valid reports whether t is one of the five enumerated seed types.
func (t Type) Valid() bool {
	switch t {
	case TypeRoot, TypeRevocation, TypeDevice, TypeDevicePin, TypeApplication:
		return true
	default:
		return false
	}
}

// Seed is a 32-byte secure buffer carrying a Type tag.
type Seed struct {
	buf *securebuf.Buffer
	typ Type
}

// New wraps an existing 32-byte secure buffer as a seed with the given type.
// It takes ownership of buf: callers must not Destroy it separately.
func New(buf *securebuf.Buffer, typ Type) (*Seed, error) {
	if buf.Len() != Len {
		return nil, securebuf.ErrInvalidLength
	}
	return &Seed{buf: buf, typ: typ}, nil
}

// NewRandom allocates a fresh secure buffer, fills it with CSPRNG bytes, and
// returns it as a seed of the given type.
func NewRandom(typ Type) (*Seed, error) {
	buf, err := securebuf.NewSecure(Len)
	if err != nil {
		return nil, err
	}
	if err := buf.Randomize(); err != nil {
		buf.Destroy()
		return nil, err
	}
	return &Seed{buf: buf, typ: typ}, nil
}

// NewFromBytes copies raw into a fresh secure buffer and returns it as a seed.
// raw must be exactly Len bytes.
func NewFromBytes(raw []byte, typ Type) (*Seed, error) {
	if len(raw) != Len {
		return nil, securebuf.ErrInvalidLength
	}
	buf, err := securebuf.NewSecure(Len)
	if err != nil {
		return nil, err
	}
	if err := buf.Write(0, raw); err != nil {
		buf.Destroy()
		return nil, err
	}
	return &Seed{buf: buf, typ: typ}, nil
}

// Buffer returns the underlying secure buffer holding the 32 secret bytes.
func (s *Seed) Buffer() *securebuf.Buffer { return s.buf }

// Type returns the seed's descriptive tag.
func (s *Seed) Type() Type { return s.typ }

// Destroy zeroes and releases the seed's backing buffer.
func (s *Seed) Destroy() { s.buf.Destroy() }

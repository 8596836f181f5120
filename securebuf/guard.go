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

import "sync"

// ReadGuard grants read-only access to a Buffer's contents for as long as it is
// held. Release must be called exactly once per guard; it is safe to call more
// than once (subsequent calls are no-ops) so a deferred Release is always safe
// even after an early explicit release on a success path.
type ReadGuard struct {
	buf      *Buffer
	once     sync.Once
	released bool
}

// Bytes returns the buffer's underlying contents. The returned slice is only
// valid until Release is called; callers must not retain it afterwards.
func (g *ReadGuard) Bytes() []byte {
	return g.buf.data
}

// Release unlocks the buffer for other readers and writers.
func (g *ReadGuard) Release() {
	g.once.Do(func() {
		g.buf.mu.RUnlock()
		g.released = true
	})
}

// WriteGuard grants exclusive read/write access to a Buffer's contents.
type WriteGuard struct {
	buf  *Buffer
	once sync.Once
}

// Bytes returns the buffer's underlying contents for direct mutation. The
// returned slice is only valid until Release is called.
func (g *WriteGuard) Bytes() []byte {
	return g.buf.data
}

// Release unlocks the buffer.
func (g *WriteGuard) Release() {
	g.once.Do(func() {
		g.buf.mu.Unlock()
	})
}

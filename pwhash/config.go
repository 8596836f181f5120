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

// Package pwhash couples a memory-hard KDF to an authenticated cipher, turning
// a passphrase and a plaintext buffer into a (salt, nonce, ciphertext) record
// and back.
package pwhash

// Algorithm names the KDF family used. Argon2id13 is the only alg this module
// implements; the type exists so a config can be round-tripped and rejected
// with ErrKdfError if a future alg name appears that this build does not know.
type Algorithm string

// Argon2id13 is the only supported KDF algorithm.
const Argon2id13 Algorithm = "argon2id13"

// Config is the tunable cost record for the KDF. A nil *Config passed to
// Encrypt/Decrypt means "use library defaults" (the Moderate preset).
type Config struct {
	Alg       Algorithm
	OpsLimit  uint32 // Argon2 time parameter
	MemLimitKiB uint32 // Argon2 memory parameter, in KiB
	Threads   uint8
}

// Interactive is tuned for frequent, low-latency unlocks (e.g. CLI prompts).
func Interactive() *Config {
	return &Config{Alg: Argon2id13, OpsLimit: 2, MemLimitKiB: 19 * 1024, Threads: 1}
}

// Moderate is the default preset: a balance of latency and resistance,
// anchored on the RFC 9106 "second recommended option" (low-memory) parameters.
func Moderate() *Config {
	return &Config{Alg: Argon2id13, OpsLimit: 3, MemLimitKiB: 64 * 1024, Threads: 4}
}

// Sensitive is tuned for rarely-unlocked, high-value secrets (e.g. a root
// seed), trading latency for resistance.
func Sensitive() *Config {
	return &Config{Alg: Argon2id13, OpsLimit: 4, MemLimitKiB: 1024 * 1024, Threads: 4}
}

func (c *Config) orDefault() *Config {
	if c == nil {
		return Moderate()
	}
	return c
}

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

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sage-x-project/keybundle/securebuf"
)

// readPassphrase reads a passphrase from envVar if set, otherwise prompts
// the terminal without echoing input, and returns it copied into a secure
// buffer. Callers must Destroy the returned buffer.
func readPassphrase(envVar, prompt string) (*securebuf.Buffer, error) {
	if envVar != "" {
		if v := os.Getenv(envVar); v != "" {
			return bufFromString(v)
		}
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()

	return bufFromString(string(raw))
}

func bufFromString(s string) (*securebuf.Buffer, error) {
	buf, err := securebuf.NewSecure(len(s))
	if err != nil {
		return nil, err
	}
	if err := buf.Write(0, []byte(s)); err != nil {
		buf.Destroy()
		return nil, err
	}
	return buf, nil
}

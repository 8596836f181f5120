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

//go:build unix

package securebuf

import "golang.org/x/sys/unix"

// lockMemory locks the pages backing buf so the kernel never swaps them to disk.
// Failure is non-fatal: callers still get a zeroed-on-destroy buffer, just not a
// non-swappable one. Most containers and unprivileged users hit RLIMIT_MEMLOCK
// here, so this is expected to fail silently outside of hardened deployments.
func lockMemory(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	return unix.Mlock(buf) == nil
}

func unlockMemory(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Munlock(buf)
}

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

package metrics

import "time"

// Observe records one operation's outcome and duration. Callers wrap a
// bundle/vault/rotation call with it:
//
//	start := time.Now()
//	err := bundle.Sign(msg, sig)
//	metrics.Observe("sign", "signing", start, err)
func Observe(operation, family string, start time.Time, err error) {
	Operations.WithLabelValues(operation, family).Inc()
	OperationDuration.WithLabelValues(operation, family).Observe(time.Since(start).Seconds())
	if err != nil {
		Errors.WithLabelValues(operation).Inc()
	}
}

// SetVaultSize reports the current number of entries held by the named
// vault.
func SetVaultSize(vaultName string, count int) {
	VaultSize.WithLabelValues(vaultName).Set(float64(count))
}

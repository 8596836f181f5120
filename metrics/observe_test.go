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

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveIncrementsCounters(t *testing.T) {
	before := testutil.ToFloat64(Operations.WithLabelValues("sign", "signing"))
	Observe("sign", "signing", time.Now(), nil)
	after := testutil.ToFloat64(Operations.WithLabelValues("sign", "signing"))
	assert.Equal(t, before+1, after)
}

func TestObserveRecordsErrors(t *testing.T) {
	before := testutil.ToFloat64(Errors.WithLabelValues("verify"))
	Observe("verify", "signing", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(Errors.WithLabelValues("verify"))
	assert.Equal(t, before+1, after)
}

func TestSetVaultSize(t *testing.T) {
	SetVaultSize("test-vault", 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(VaultSize.WithLabelValues("test-vault")))
}

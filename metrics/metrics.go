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

// Package metrics exposes Prometheus counters and histograms for bundle
// operations (generate/sign/verify/as_blob/from_blob), vault store/load and
// rotation on a dedicated registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "keybundle"

// Registry is the dedicated Prometheus registry all metrics below register
// to, rather than the global default registry.
var Registry = prometheus.NewRegistry()

var (
	// Operations counts bundle operations by kind and key family.
	Operations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bundle",
			Name:      "operations_total",
			Help:      "Total number of key bundle operations",
		},
		[]string{"operation", "family"}, // generate/sign/verify/as_blob/from_blob/vault_store/vault_load/rotate, bundle/vault
	)

	// Errors counts failed bundle operations by kind.
	Errors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bundle",
			Name:      "errors_total",
			Help:      "Total number of failed key bundle operations",
		},
		[]string{"operation"},
	)

	// OperationDuration tracks operation latency in seconds.
	OperationDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bundle",
			Name:      "operation_duration_seconds",
			Help:      "Key bundle operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15), // 10us to 163ms
		},
		[]string{"operation", "family"},
	)

	// VaultSize reports the number of blobs currently tracked by a vault.
	VaultSize = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "vault",
			Name:      "entries",
			Help:      "Number of key blobs currently stored in the vault",
		},
		[]string{"vault"},
	)
)

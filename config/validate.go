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

package config

import "fmt"

// Issue describes a single configuration validation finding. Level is
// either "error" (Load fails) or "warning" (Load succeeds, caller may log
// it).
type Issue struct {
	Field   string
	Message string
	Level   string
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validVaultTypes = map[string]bool{"file": true, "memory": true}

// ValidateConfiguration checks cfg for structurally invalid values. It never
// mutates cfg.
func ValidateConfiguration(cfg *Config) []Issue {
	var issues []Issue

	if cfg.Vault != nil {
		if !validVaultTypes[cfg.Vault.Type] {
			issues = append(issues, Issue{
				Field:   "vault.type",
				Message: fmt.Sprintf("unsupported vault type %q, expected file or memory", cfg.Vault.Type),
				Level:   "error",
			})
		}
		if cfg.Vault.Type == "file" && cfg.Vault.Directory == "" {
			issues = append(issues, Issue{Field: "vault.directory", Message: "directory is required for a file vault", Level: "error"})
		}
	}

	if cfg.Logging != nil && !validLogLevels[cfg.Logging.Level] {
		issues = append(issues, Issue{
			Field:   "logging.level",
			Message: fmt.Sprintf("unrecognized log level %q", cfg.Logging.Level),
			Level:   "warning",
		})
	}

	if cfg.Metrics != nil && cfg.Metrics.Enabled && cfg.Metrics.Port <= 0 {
		issues = append(issues, Issue{Field: "metrics.port", Message: "port must be positive when metrics are enabled", Level: "error"})
	}

	if cfg.Health != nil && cfg.Health.Enabled && cfg.Health.Port <= 0 {
		issues = append(issues, Issue{Field: "health.port", Message: "port must be positive when health checks are enabled", Level: "error"})
	}

	return issues
}

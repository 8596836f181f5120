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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/health"
	"github.com/sage-x-project/keybundle/internal/logger"
	"github.com/sage-x-project/keybundle/vault"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report vault reachability",
	Long: `Run the registered health checks against the configured vault and print
their status. Exits non-zero if any check reports unhealthy.`,
	Example: `  keybundle health --vault-dir ./vault`,
	RunE:    runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().StringVar(&vaultDirFlag, "vault-dir", "", "Vault directory (default: vault.directory from --config)")
}

func runHealth(cmd *cobra.Command, args []string) error {
	vaultDir, err := resolveVaultDir(cmd)
	if err != nil {
		return err
	}

	v, err := vault.NewFileVault(vaultDir)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}

	timeout := 5 * time.Second
	checker := health.NewHealthChecker(timeout)
	checker.SetLogger(appLog)
	checker.RegisterCheck("vault", health.VaultHealthCheck(v))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	results := checker.CheckAll(ctx)
	overall := checker.GetOverallStatus(ctx)

	for name, result := range results {
		fmt.Printf("%s: %s", name, result.Status)
		if result.Message != "" {
			fmt.Printf(" (%s)", result.Message)
		}
		fmt.Println()
	}
	fmt.Printf("Overall: %s\n", overall)

	appLog.Info("health check complete", logger.String("overall", string(overall)))

	if overall != health.StatusHealthy {
		return fmt.Errorf("health check reported status %s", overall)
	}
	return nil
}

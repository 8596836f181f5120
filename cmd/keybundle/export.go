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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/internal/logger"
	"github.com/sage-x-project/keybundle/vault"
)

var exportOutFlag string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a vault-stored blob as portable JSON",
	Long: `Export the KeyBlob stored under a key ID as JSON, either to stdout or
to a file. The blob remains passphrase-encrypted; export does not require
a passphrase.`,
	Example: `  # Export to stdout
  keybundle export --vault-dir ./vault --key-id svc

  # Export to a file
  keybundle export --vault-dir ./vault --key-id svc --out svc.keyblob.json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&vaultDirFlag, "vault-dir", "", "Vault directory (default: vault.directory from --config)")
	exportCmd.Flags().StringVarP(&keyIDFlag, "key-id", "k", "", "Key ID to export (required)")
	exportCmd.Flags().StringVar(&exportOutFlag, "out", "", "Output file (default: stdout)")

	exportCmd.MarkFlagRequired("key-id")
}

func runExport(cmd *cobra.Command, args []string) error {
	vaultDir, err := resolveVaultDir(cmd)
	if err != nil {
		return err
	}

	v, err := vault.NewFileVault(vaultDir)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}

	blob, err := v.Load(keyIDFlag)
	if err != nil {
		appLog.Error("load blob failed", logger.String("key_id", keyIDFlag), logger.Error(err))
		return fmt.Errorf("load blob: %w", err)
	}

	out, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blob: %w", err)
	}

	if exportOutFlag == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(exportOutFlag, out, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", exportOutFlag, err)
	}
	appLog.Info("blob exported", logger.String("key_id", keyIDFlag), logger.String("out", exportOutFlag))
	fmt.Printf("Exported %s to %s\n", keyIDFlag, exportOutFlag)
	return nil
}

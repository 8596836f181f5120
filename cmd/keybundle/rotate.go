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

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/internal/logger"
	"github.com/sage-x-project/keybundle/rotation"
	"github.com/sage-x-project/keybundle/vault"
)

var keepOldFlag bool

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate a bundle in a vault",
	Long: `Rotate the bundle stored under a key ID, replacing it with a freshly
derived bundle of the same seed type.`,
	Example: `  # Rotate and discard the old bundle
  keybundle rotate --vault-dir ./vault --key-id svc

  # Rotate and keep the old bundle under "svc.old.<id>"
  keybundle rotate --vault-dir ./vault --key-id svc --keep-old`,
	RunE: runRotate,
}

func init() {
	rootCmd.AddCommand(rotateCmd)

	rotateCmd.Flags().StringVar(&vaultDirFlag, "vault-dir", "", "Vault directory (default: vault.directory from --config)")
	rotateCmd.Flags().StringVarP(&keyIDFlag, "key-id", "k", "", "Key ID to rotate (required)")
	rotateCmd.Flags().StringVar(&passEnvFlag, "passphrase-env", "", "Environment variable holding the passphrase (otherwise prompts)")
	rotateCmd.Flags().StringVar(&hintFlag, "hint", "", "Passphrase hint for the new blob")
	rotateCmd.Flags().BoolVar(&keepOldFlag, "keep-old", false, "Keep the old bundle under a derived key ID")

	rotateCmd.MarkFlagRequired("key-id")
}

func runRotate(cmd *cobra.Command, args []string) error {
	vaultDir, err := resolveVaultDir(cmd)
	if err != nil {
		return err
	}

	v, err := vault.NewFileVault(vaultDir)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}

	pass, err := readPassphrase(passEnvFlag, "Passphrase: ")
	if err != nil {
		return err
	}
	defer pass.Destroy()

	appLog.Info("rotating bundle", logger.String("key_id", keyIDFlag), logger.Bool("keep_old", keepOldFlag))

	r := rotation.NewRotator(v)
	r.SetConfig(rotation.Config{KeepOldBlob: keepOldFlag})

	newBundle, err := r.Rotate(keyIDFlag, pass, hintFlag, nil)
	if err != nil {
		appLog.Error("rotate failed", logger.String("key_id", keyIDFlag), logger.Error(err))
		return fmt.Errorf("rotate: %w", err)
	}
	defer newBundle.Destroy()

	appLog.Info("bundle rotated", logger.String("key_id", keyIDFlag), logger.String("new_signer", newBundle.GetID()))

	fmt.Println("Bundle rotation successful!")
	fmt.Printf("  Key ID: %s\n", keyIDFlag)
	fmt.Printf("  New Signing Identifier: %s\n", newBundle.GetID())

	hist := r.History(keyIDFlag)
	if len(hist) > 0 {
		fmt.Printf("\nRotation history (%d rotations):\n", len(hist))
		for i, ev := range hist {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(hist)-5)
				break
			}
			fmt.Printf("  %s: %s -> %s (%s)\n",
				ev.Timestamp.Format("2006-01-02 15:04:05"), ev.OldID, ev.NewID, ev.Reason)
		}
	}

	return nil
}

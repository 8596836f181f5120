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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/vault"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundles in a vault",
	Long:  `List every key ID stored in the specified vault directory.`,
	Example: `  # List all bundles in a vault
  keybundle list --vault-dir ./vault`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&vaultDirFlag, "vault-dir", "", "Vault directory (default: vault.directory from --config)")
}

func runList(cmd *cobra.Command, args []string) error {
	vaultDir, err := resolveVaultDir(cmd)
	if err != nil {
		return err
	}

	v, err := vault.NewFileVault(vaultDir)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}

	ids, err := v.List()
	if err != nil {
		return fmt.Errorf("list vault: %w", err)
	}

	if len(ids) == 0 {
		fmt.Println("No bundles found in vault")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KEY ID\tSEED TYPE\tHINT\n")
	fmt.Fprintf(w, "------\t---------\t----\n")
	for _, id := range ids {
		blob, err := v.Load(id)
		if err != nil {
			fmt.Fprintf(w, "%s\t<error>\t%v\n", id, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, blob.SeedType, blob.Hint)
	}
	w.Flush()

	fmt.Printf("\nTotal bundles: %d\n", len(ids))
	fmt.Printf("Vault location: %s\n", vaultDir)
	return nil
}

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

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/internal/logger"
	"github.com/sage-x-project/keybundle/keybundle"
	"github.com/sage-x-project/keybundle/pwhash"
	"github.com/sage-x-project/keybundle/seed"
	"github.com/sage-x-project/keybundle/vault"
)

var (
	seedTypeFlag   string
	vaultDirFlag   string
	keyIDFlag      string
	hintFlag       string
	passEnvFlag    string
	kdfProfileFlag string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key bundle",
	Long: `Generate a new key bundle from fresh randomness.

The seed type tags the bundle's role and is one of:
  Root, Revocation, Device, DevicePin, Application`,
	Example: `  # Generate an Application bundle and store it under "svc" in ./vault
  keybundle generate --type Application --vault-dir ./vault --key-id svc

  # Use a non-default Argon2id cost profile
  keybundle generate --type Root --vault-dir ./vault --key-id root --kdf sensitive`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&seedTypeFlag, "type", "t", "Application", "Seed type (Root, Revocation, Device, DevicePin, Application)")
	generateCmd.Flags().StringVar(&vaultDirFlag, "vault-dir", "", "Vault directory to store the blob in (default: vault.directory from --config)")
	generateCmd.Flags().StringVarP(&keyIDFlag, "key-id", "k", "", "Key ID to store the blob under (default: a generated UUID)")
	generateCmd.Flags().StringVar(&hintFlag, "hint", "", "Human-readable passphrase hint stored alongside the blob")
	generateCmd.Flags().StringVar(&passEnvFlag, "passphrase-env", "", "Environment variable holding the passphrase (otherwise prompts)")
	generateCmd.Flags().StringVar(&kdfProfileFlag, "kdf", "moderate", "Argon2id cost profile (interactive, moderate, sensitive)")
}

func kdfConfigFor(profile string) (*pwhash.Config, error) {
	switch profile {
	case "interactive":
		return pwhash.Interactive(), nil
	case "moderate":
		return pwhash.Moderate(), nil
	case "sensitive":
		return pwhash.Sensitive(), nil
	default:
		return nil, fmt.Errorf("unsupported kdf profile: %s", profile)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	st := seed.Type(seedTypeFlag)
	if !st.Valid() {
		return fmt.Errorf("unsupported seed type: %s", seedTypeFlag)
	}

	if keyIDFlag == "" {
		keyIDFlag = uuid.NewString()
	}

	vaultDir, err := resolveVaultDir(cmd)
	if err != nil {
		return err
	}

	cfg, err := kdfConfigFor(kdfProfileFlag)
	if err != nil {
		return err
	}

	appLog.Info("generating bundle", logger.String("key_id", keyIDFlag), logger.String("seed_type", string(st)))

	s, err := seed.NewRandom(st)
	if err != nil {
		return fmt.Errorf("generate seed: %w", err)
	}
	defer s.Destroy()

	bundle, err := keybundle.NewFromSeed(s)
	if err != nil {
		appLog.Error("derive bundle failed", logger.Error(err))
		return fmt.Errorf("derive bundle: %w", err)
	}
	defer bundle.Destroy()

	pass, err := readPassphrase(passEnvFlag, "Passphrase: ")
	if err != nil {
		return err
	}
	defer pass.Destroy()

	blob, err := bundle.AsBlob(pass, hintFlag, cfg)
	if err != nil {
		appLog.Error("encrypt bundle failed", logger.Error(err))
		return fmt.Errorf("encrypt bundle: %w", err)
	}

	v, err := vault.NewFileVault(vaultDir)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}
	if err := v.Store(keyIDFlag, *blob); err != nil {
		appLog.Error("store blob failed", logger.String("key_id", keyIDFlag), logger.Error(err))
		return fmt.Errorf("store blob: %w", err)
	}

	appLog.Info("bundle generated", logger.String("key_id", keyIDFlag), logger.String("signer", bundle.GetID()))

	fmt.Printf("Bundle generated:\n")
	fmt.Printf("  Key ID: %s\n", keyIDFlag)
	fmt.Printf("  Seed Type: %s\n", st)
	fmt.Printf("  Signing Identifier: %s\n", bundle.GetID())
	fmt.Printf("  Encrypting Identifier: %s\n", bundle.EncryptingPublic())
	fmt.Printf("  Vault Location: %s\n", vaultDir)

	return nil
}

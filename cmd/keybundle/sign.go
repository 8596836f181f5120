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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/internal/logger"
	"github.com/sage-x-project/keybundle/keybundle"
	"github.com/sage-x-project/keybundle/keys"
	"github.com/sage-x-project/keybundle/securebuf"
	"github.com/sage-x-project/keybundle/vault"
)

var (
	messageFlag     string
	messageFileFlag string
	base64OutFlag   bool
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a message with a stored bundle",
	Long: `Sign a message using the signing half of a bundle loaded from a vault.

The message can come from --message, --message-file, or stdin.`,
	Example: `  # Sign a literal message
  keybundle sign --vault-dir ./vault --key-id svc --message "hello"

  # Sign a file's contents, output base64 only
  keybundle sign --vault-dir ./vault --key-id svc --message-file doc.txt --base64`,
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)

	signCmd.Flags().StringVar(&vaultDirFlag, "vault-dir", "", "Vault directory (default: vault.directory from --config)")
	signCmd.Flags().StringVarP(&keyIDFlag, "key-id", "k", "", "Key ID to sign with (required)")
	signCmd.Flags().StringVar(&passEnvFlag, "passphrase-env", "", "Environment variable holding the passphrase (otherwise prompts)")
	signCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Message to sign")
	signCmd.Flags().StringVar(&messageFileFlag, "message-file", "", "File containing the message to sign")
	signCmd.Flags().BoolVar(&base64OutFlag, "base64", false, "Output only the base64 signature")

	signCmd.MarkFlagRequired("key-id")
}

func readMessage() ([]byte, error) {
	if messageFlag != "" {
		return []byte(messageFlag), nil
	}
	if messageFileFlag != "" {
		return os.ReadFile(messageFileFlag)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no message provided")
	}
	return data, nil
}

func loadBundle(vaultDir, id string, pass *securebuf.Buffer) (*keybundle.Bundle, error) {
	v, err := vault.NewFileVault(vaultDir)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	blob, err := v.Load(id)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}
	bundle, err := keybundle.FromBlob(&blob, pass, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt bundle: %w", err)
	}
	return bundle, nil
}

func runSign(cmd *cobra.Command, args []string) error {
	vaultDir, err := resolveVaultDir(cmd)
	if err != nil {
		return err
	}

	pass, err := readPassphrase(passEnvFlag, "Passphrase: ")
	if err != nil {
		return err
	}
	defer pass.Destroy()

	bundle, err := loadBundle(vaultDir, keyIDFlag, pass)
	if err != nil {
		appLog.Error("load bundle failed", logger.String("key_id", keyIDFlag), logger.Error(err))
		return err
	}
	defer bundle.Destroy()

	msg, err := readMessage()
	if err != nil {
		return err
	}

	sigBuf, err := securebuf.NewSecure(keys.SignatureLen)
	if err != nil {
		return err
	}
	defer sigBuf.Destroy()

	if err := bundle.Sign(msg, sigBuf); err != nil {
		appLog.Error("sign failed", logger.String("key_id", keyIDFlag), logger.Error(err))
		return fmt.Errorf("sign message: %w", err)
	}
	appLog.Info("message signed", logger.String("key_id", keyIDFlag), logger.String("signer", bundle.GetID()))
	rg, err := sigBuf.ReadLock()
	if err != nil {
		return err
	}
	sig := append([]byte{}, rg.Bytes()...)
	rg.Release()

	encoded := base64.StdEncoding.EncodeToString(sig)
	if base64OutFlag {
		fmt.Println(encoded)
		return nil
	}

	out, err := json.MarshalIndent(map[string]string{
		"signature": encoded,
		"signer":    bundle.GetID(),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

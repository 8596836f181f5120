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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/internal/logger"
	"github.com/sage-x-project/keybundle/keys"
)

var (
	signerIDFlag string
	signatureB64 string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a signature against a signing identifier",
	Long: `Verify a signature was produced by the holder of the named signing
identifier. Unlike sign, this needs no vault access or passphrase: the
signing identifier already encodes the public key.`,
	Example: `  keybundle verify --signer <identifier> --message "hello" --signature-b64 "<base64sig>"`,
	RunE:    runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&signerIDFlag, "signer", "", "Signing identifier (required)")
	verifyCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Message to verify")
	verifyCmd.Flags().StringVar(&messageFileFlag, "message-file", "", "File containing the message to verify")
	verifyCmd.Flags().StringVar(&signatureB64, "signature-b64", "", "Base64 encoded signature (required)")

	verifyCmd.MarkFlagRequired("signer")
	verifyCmd.MarkFlagRequired("signature-b64")
}

func runVerify(cmd *cobra.Command, args []string) error {
	msg, err := readMessage()
	if err != nil {
		return err
	}

	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	ok, err := keys.VerifyWithPublicIdentifier(signerIDFlag, msg, sig)
	if err != nil {
		appLog.Error("verify failed", logger.String("signer", signerIDFlag), logger.Error(err))
		return fmt.Errorf("verify: %w", err)
	}
	if !ok {
		appLog.Warn("signature verification failed", logger.String("signer", signerIDFlag))
		fmt.Println("Signature verification FAILED")
		return fmt.Errorf("invalid signature")
	}

	appLog.Info("signature verified", logger.String("signer", signerIDFlag))
	fmt.Println("Signature verification PASSED")
	fmt.Printf("Signer: %s\n", signerIDFlag)
	return nil
}

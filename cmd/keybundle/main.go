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

	"github.com/spf13/cobra"

	"github.com/sage-x-project/keybundle/config"
	"github.com/sage-x-project/keybundle/internal/logger"
)

// configPathFlag names a config file to load via config.LoadFromFile. When
// empty, config.Load falls back to its usual search path (./config/*.yaml)
// and, failing that, built-in defaults.
var configPathFlag string

// appConfig and appLog are populated once in rootCmd's PersistentPreRunE and
// read by every subcommand's RunE.
var (
	appConfig *config.Config
	appLog    logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "keybundle",
	Short: "keybundle CLI - derive, store, and use seed-derived signing/encrypting key bundles",
	Long: `keybundle provides tools for deriving deterministic signing and encrypting
key pairs from a seed, persisting them as passphrase-encrypted blobs, and
performing everyday operations against them.

This tool supports:
- Bundle generation from a fresh random seed
- Passphrase-encrypted blob export/import
- Message signing and signature verification
- Vault-backed storage and listing
- Key rotation with history
- A health subcommand reporting vault reachability`,
	PersistentPreRunE: loadAppConfig,
}

// loadAppConfig loads configuration once per invocation and wires up the
// default logger from its Logging section. A missing --config file is not an
// error: config.Load falls back to defaults, which is the common case for a
// one-off CLI invocation with no config file on disk.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configPathFlag != "" {
		appConfig, err = config.LoadFromFile(configPathFlag)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLog = logger.NewDefaultLogger()
	if sl, ok := appLog.(*logger.StructuredLogger); ok && appConfig.Logging != nil {
		sl.SetLevel(logLevelFromString(appConfig.Logging.Level))
	}
	logger.SetDefaultLogger(appLog)

	appLog.Debug("configuration loaded",
		logger.String("environment", appConfig.Environment),
		logger.String("command", cmd.Name()))
	return nil
}

func logLevelFromString(s string) logger.Level {
	switch s {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

// resolveVaultDir returns the --vault-dir flag value if the caller set it
// explicitly, otherwise the vault directory named in the loaded config, and
// fails only when neither source supplies one.
func resolveVaultDir(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("vault-dir") && vaultDirFlag != "" {
		return vaultDirFlag, nil
	}
	if appConfig != nil && appConfig.Vault != nil && appConfig.Vault.Directory != "" {
		return appConfig.Vault.Directory, nil
	}
	if vaultDirFlag != "" {
		return vaultDirFlag, nil
	}
	return "", fmt.Errorf("no vault directory: pass --vault-dir or set vault.directory in --config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if appLog != nil {
			appLog.Error("command failed", logger.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to a config file (YAML or JSON); falls back to ./config/*.yaml or built-in defaults")
	// Commands are registered in their own files:
	// generate.go, sign.go, verify.go, export.go, importcmd.go, rotate.go,
	// list.go, identity.go, health.go
}

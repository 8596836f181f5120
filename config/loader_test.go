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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToEmptyConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoaderOptions{ConfigDir: filepath.Join(dir, "missing"), DotEnvPath: ""})
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadPrefersEnvironmentSpecificFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staging.yaml"), []byte("logging:\n  level: debug\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte("logging:\n  level: error\n"), 0o644))

	cfg, err := Load(LoaderOptions{ConfigDir: dir, Environment: "staging", DotEnvPath: ""})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte("vault:\n  type: file\n  directory: /tmp/a\n"), 0o644))
	t.Setenv("KEYBUNDLE_VAULT_DIR", "/tmp/override")

	cfg, err := Load(LoaderOptions{ConfigDir: dir, DotEnvPath: ""})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override", cfg.Vault.Directory)
}

func TestLoadFailsValidationOnBadVaultType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte("vault:\n  type: carrier-pigeon\n"), 0o644))

	_, err := Load(LoaderOptions{ConfigDir: dir, DotEnvPath: ""})
	assert.Error(t, err)
}

func TestMustLoadPanicsOnInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte("vault:\n  type: bogus\n"), 0o644))

	assert.Panics(t, func() {
		MustLoad(LoaderOptions{ConfigDir: dir, DotEnvPath: ""})
	})
}

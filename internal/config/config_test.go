// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets REGCTL_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("REGCTL_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	cleanup := setupTestConfig(t, "regctl.yaml")
	defer cleanup()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Source)
	assert.Contains(t, cfg.Data, "store")
}

func TestLoadMissingFile(t *testing.T) {
	cleanup := setupTestConfig(t, "does-not-exist.yaml")
	defer cleanup()

	_, err := Load()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	cleanup := setupTestConfig(t, "regctl.yaml")
	defer cleanup()
	_, _ = Load()

	got, err := GetString("store")
	require.NoError(t, err)
	assert.Equal(t, "machines.hive.json", got)

	// Nested dotted path.
	got, err = GetString("aws.profile")
	require.NoError(t, err)
	assert.Equal(t, "fleet", got)

	// Missing key with default.
	got, err = GetString("nope", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	// Missing key without default.
	_, err = GetString("nope")
	assert.Error(t, err)
}

func TestGetStringNamespace(t *testing.T) {
	cleanup := setupTestConfig(t, "regctl.yaml")
	defer cleanup()
	_, _ = Load("apply")

	// The namespaced key wins over the global one.
	got, err := GetString("store")
	require.NoError(t, err)
	assert.Equal(t, "winreg:HKCU", got)
}

func TestGetBool(t *testing.T) {
	cleanup := setupTestConfig(t, "regctl.yaml")
	defer cleanup()
	_, _ = Load()

	got, err := GetBool("color")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = GetBool("nope", false)
	require.NoError(t, err)
	assert.False(t, got)
}

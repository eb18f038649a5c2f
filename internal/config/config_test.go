// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFailsValidationWithoutJWTSecret(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestDefaultConfigPassesValidationWithJWTSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "a-secret-that-is-at-least-32-bytes!"
	assert.NoError(t, cfg.Validate())
}

func TestValidateServerRejectsOutOfRangePort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "a-secret-that-is-at-least-32-bytes!"
	cfg.Server.Port = 70000
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateLoggingRejectsUnknownLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "a-secret-that-is-at-least-32-bytes!"
	cfg.Logging.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoadWithKoanfAppliesEnvironmentOverride(t *testing.T) {
	t.Setenv("CALL_SERVER_PORT", "9090")
	t.Setenv("CALL_SECURITY_JWT_SECRET", "a-secret-that-is-at-least-32-bytes!")

	cfg, err := LoadWithKoanf()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "a-secret-that-is-at-least-32-bytes!", cfg.Security.JWTSecret)
}

func TestFindConfigFileHonorsConfigPathEnvVar(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/custom.yaml"
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 1234\n"), 0o644))
	t.Setenv(ConfigPathEnvVar, path)

	assert.Equal(t, path, findConfigFile())
}

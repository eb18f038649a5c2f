// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config provides centralized configuration management for the CALL
server.

This package handles loading, validation, and defaulting of the settings
that wire together the HTTP listener, the token-signing security layer,
the async operation store, and structured logging.

# Configuration Loading

Configuration loads in three layers via Koanf v2, each overriding the
last:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML config file (config.yaml, or the path named by
    CONFIG_PATH)
 3. Environment variables prefixed CALL_, e.g. CALL_SERVER_PORT,
    CALL_SECURITY_JWT_SECRET, CALL_ASYNC_DEFAULT_TTL

# Required Settings

CALL_SECURITY_JWT_SECRET must be set to a value at least 32 bytes long
in any environment that issues tokens; Load returns a validation error
otherwise.

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("failed to load config")
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
*/
package config

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import "fmt"

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateAsync(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive, got %s", c.Security.TokenTTL)
	}
	return nil
}

func (c *Config) validateAsync() error {
	if c.Async.DefaultTTL <= 0 {
		return fmt.Errorf("async.default_ttl must be positive, got %s", c.Async.DefaultTTL)
	}
	if c.Async.IdempotencyCacheSize <= 0 {
		return fmt.Errorf("async.idempotency_cache_size must be positive, got %d", c.Async.IdempotencyCacheSize)
	}
	if c.Async.QueueDepth <= 0 {
		return fmt.Errorf("async.queue_depth must be positive, got %d", c.Async.QueueDepth)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug|info|warn|error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import "time"

// Config holds all application configuration loaded from environment
// variables and an optional config file. Provides centralized
// configuration for the HTTP listener, the auth/token-signing layer,
// the async operation store, the operation registry's discovery
// document, and structured logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Async    AsyncConfig    `koanf:"async"`
	Registry RegistryConfig `koanf:"registry"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds bearer-token signing and issuance settings.
type SecurityConfig struct {
	// JWTSecret signs the HS256 tokens wrapped by demo_/agent_ bearer
	// tokens. Must be at least 32 bytes.
	JWTSecret string `koanf:"jwt_secret"`
	// TokenTTL is how long an issued human or agent token remains valid.
	TokenTTL time.Duration `koanf:"token_ttl"`
}

// AsyncConfig holds settings for the async operation store, its
// idempotency cache, and the background worker pool that drains it.
type AsyncConfig struct {
	// DefaultTTL is checked to be positive when the configuration loads.
	// The dispatcher does not read it: async operations whose handler
	// gives no TTL get the dispatcher's own fixed five-minute fallback.
	DefaultTTL time.Duration `koanf:"default_ttl"`
	// PollMinInterval is the minimum interval a client must wait
	// between two polls of the same instance before being rate limited.
	PollMinInterval time.Duration `koanf:"poll_min_interval"`
	// SweepInterval is loaded from configuration but not read: nothing
	// calls the store's Sweep on a schedule, so expired instances are
	// evicted only on lookup.
	SweepInterval time.Duration `koanf:"sweep_interval"`
	// IdempotencyCacheSize bounds the LRU cache of terminal responses
	// keyed by (op, idempotencyKey, subject).
	IdempotencyCacheSize int `koanf:"idempotency_cache_size"`
	// QueueDepth bounds the worker pool's job channel.
	QueueDepth int `koanf:"queue_depth"`
}

// RegistryConfig holds settings for the operation discovery document.
type RegistryConfig struct {
	// DiscoveryCacheMaxAge is the Cache-Control max-age advertised on
	// GET /.well-known/ops.
	DiscoveryCacheMaxAge time.Duration `koanf:"discovery_cache_max_age"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is the output format: json or console.
	Format string `koanf:"format"`
	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from environment variables and an optional
// config file. See LoadWithKoanf for the layered loading order.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

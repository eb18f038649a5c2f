// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package main is the entry point for the CALL server.

CALL is a uniform RPC-over-HTTP dispatch protocol: every operation is
invoked through one entrypoint carrying a self-describing envelope, and
every response is a uniform envelope whose shape depends only on a
state tag (complete, error, accepted, streaming).

# Application Architecture

The server implements a two-layer Suture v4 supervision tree:

	RootSupervisor ("call")
	├── worker-layer
	│   ├── Worker pool (drives async operation continuations)
	│   └── Stream hub (fans out state:streaming events to websocket clients)
	└── http-layer
	    └── HTTP server (chi router: /call, /auth, /ops, /.well-known/ops)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Registry: the immutable operation descriptor table
 4. Auth store: bearer token issuance and resolution, seeded with demo patrons
 5. Async store + idempotency cache: the async instance lifecycle and replay cache
 6. Worker pool and stream hub: background execution for async and streaming operations
 7. Dispatcher: the eight-step request pipeline binding all of the above
 8. Supervisor tree: worker pool, stream hub, and HTTP server as independently restartable services

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables (CALL_*) > Config file > Defaults

Core environment variables:

	CALL_SERVER_PORT=8080
	CALL_SERVER_HOST=0.0.0.0
	CALL_LOGGING_LEVEL=info              # debug, info, warn, error
	CALL_LOGGING_FORMAT=json             # json or console
	CALL_SECURITY_JWT_SECRET=<32+ chars> # required, no default
	CALL_SECURITY_TOKEN_TTL=24h
	CALL_ASYNC_DEFAULT_TTL=5m
	CALL_ASYNC_POLL_MIN_INTERVAL=250ms

See internal/config for the complete set of keys and defaults.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests to complete (configurable timeout)
 3. Stops the worker pool
 4. Reports any services that failed to stop within the timeout

# See Also

  - internal/config: configuration management
  - internal/supervisor: process supervision
  - internal/dispatcher: the CALL protocol pipeline
  - internal/api: HTTP handlers and routing
*/
package main

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics registers and updates the Prometheus instrumentation
for the CALL server: HTTP request throughput and latency, per-operation
dispatch outcomes, the async instance state machine, chunked-result
retrieval, idempotency cache effectiveness, and per-operation circuit
breaker state.

All metrics are registered once at package init via promauto against
the default Prometheus registry, then scraped through GET /metrics
(promhttp.Handler).
*/
package metrics

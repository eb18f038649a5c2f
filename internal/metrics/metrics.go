// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for the CALL dispatcher.
// This package provides instrumentation for:
// - API request latency and throughput
// - Dispatch pipeline outcomes per operation
// - Async instance lifecycle transitions
// - Chunked result retrieval
// - Idempotency cache hit rate
// - Per-operation circuit breaker state

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Dispatch Pipeline Metrics
	DispatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_outcomes_total",
			Help: "Total number of dispatch outcomes by operation and terminal state",
		},
		[]string{"op", "state"}, // state: "complete", "error", "accepted", "streaming"
	)

	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Duration of the full dispatch pipeline in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// Async Operation Lifecycle Metrics
	AsyncInstancesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_instances_created_total",
			Help: "Total number of async operation instances created",
		},
		[]string{"op"},
	)

	AsyncInstanceTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_instance_transitions_total",
			Help: "Total number of async instance state transitions",
		},
		[]string{"op", "to_state"},
	)

	AsyncInstancesExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_instances_expired_total",
			Help: "Total number of async instances evicted after TTL expiry",
		},
		[]string{"op"},
	)

	AsyncActiveInstances = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "async_active_instances",
			Help: "Current number of tracked async operation instances",
		},
	)

	// Chunked Retrieval Metrics
	ChunksServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chunks_served_total",
			Help: "Total number of chunk responses served",
		},
		[]string{"op"},
	)

	// Idempotency Cache Metrics
	IdempotencyCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "idempotency_cache_hits_total",
			Help: "Total number of idempotency cache hits that replayed a cached response",
		},
	)

	IdempotencyCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "idempotency_cache_misses_total",
			Help: "Total number of idempotency-keyed requests that were not found in cache",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"op"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of worker pool jobs through a circuit breaker",
		},
		[]string{"op", "result"}, // result: "success", "failure", "domain_error"
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate-limited request for the given endpoint.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDispatch records the terminal outcome and latency of one dispatch.
func RecordDispatch(op, state string, duration time.Duration) {
	DispatchOutcomes.WithLabelValues(op, state).Inc()
	DispatchDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordAsyncCreated records a new async instance being seeded.
func RecordAsyncCreated(op string) {
	AsyncInstancesCreated.WithLabelValues(op).Inc()
	AsyncActiveInstances.Inc()
}

// RecordAsyncTransition records an async instance moving to a new state.
func RecordAsyncTransition(op, toState string) {
	AsyncInstanceTransitions.WithLabelValues(op, toState).Inc()
}

// RecordAsyncExpired records an async instance being evicted after TTL expiry.
func RecordAsyncExpired(op string) {
	AsyncInstancesExpired.WithLabelValues(op).Inc()
	AsyncActiveInstances.Dec()
}

// RecordChunkServed records one chunk response being served for op.
func RecordChunkServed(op string) {
	ChunksServed.WithLabelValues(op).Inc()
}

// RecordIdempotencyLookup records whether an idempotency-keyed dispatch hit the cache.
func RecordIdempotencyLookup(hit bool) {
	if hit {
		IdempotencyCacheHits.Inc()
	} else {
		IdempotencyCacheMisses.Inc()
	}
}

// SetCircuitBreakerState records the current numeric state of op's breaker.
func SetCircuitBreakerState(op string, state float64) {
	CircuitBreakerState.WithLabelValues(op).Set(state)
}

// RecordCircuitBreakerRequest records one request outcome through op's breaker.
func RecordCircuitBreakerRequest(op, result string) {
	CircuitBreakerRequests.WithLabelValues(op, result).Inc()
}

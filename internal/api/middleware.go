// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/metrics"
)

// chiMiddleware adapts the internal/middleware http.HandlerFunc chain
// style to Chi's func(http.Handler) http.Handler, so the existing
// Compression/RequestID/PrometheusMetrics middleware work unchanged
// under r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// RateLimitConfig tunes the per-route-group request ceilings.
type RateLimitConfig struct {
	CallRequests int
	CallWindow   time.Duration

	AuthRequests int
	AuthWindow   time.Duration

	PollRequests int
	PollWindow   time.Duration
}

// DefaultRateLimitConfig mirrors a conservative production posture: the
// auth endpoints are tightest (brute-force resistance), /call is the
// general-purpose ceiling, and polling gets the most headroom since
// asyncstore already enforces a per-instance minimum interval.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		CallRequests: 120,
		CallWindow:   time.Minute,
		AuthRequests: 20,
		AuthWindow:   time.Minute,
		PollRequests: 600,
		PollWindow:   time.Minute,
	}
}

// rateLimited wraps httprate.Limit with a handler that reports
// RATE_LIMITED through the CALL envelope shape rather than a bare
// status code, and records the rejection via internal/metrics.
func rateLimited(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordRateLimitHit(r.URL.Path)
			writeEnvelope(w, http.StatusTooManyRequests, envelope.Failed("", "",
				envelope.New(envelope.CodeRateLimited, "rate limit exceeded")))
		}),
	)
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package api wires the CALL protocol's HTTP surface: the chi router,
// its handlers, and the suture.Service wrapper that lets the HTTP
// listener live inside the same supervision tree as the worker pool.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/call/internal/asyncstore"
	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/dispatcher"
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/middleware"
	"github.com/tomtom215/call/internal/registry"
	"github.com/tomtom215/call/internal/streamhub"
)

// Handler groups the composition root's core components behind the
// methods the routes below call. It holds no state of its own beyond
// these references.
type Handler struct {
	dispatcher          *dispatcher.Dispatcher
	auth                *authn.Store
	async               *asyncstore.Store
	registry            *registry.Registry
	streams             *streamhub.Hub
	discoveryMaxAgeSecs int
}

// NewHandler builds a Handler from the process's already-constructed
// core components. discoveryMaxAge is the Cache-Control max-age
// advertised on GET /.well-known/ops.
func NewHandler(d *dispatcher.Dispatcher, auth *authn.Store, async *asyncstore.Store, reg *registry.Registry, streams *streamhub.Hub, discoveryMaxAge time.Duration) *Handler {
	return &Handler{
		dispatcher:          d,
		auth:                auth,
		async:               async,
		registry:            reg,
		streams:             streams,
		discoveryMaxAgeSecs: int(discoveryMaxAge.Seconds()),
	}
}

// Router owns the chi mux and the middleware configuration layered onto
// it. It is built once at process start and never mutated afterward.
type Router struct {
	handler   *Handler
	rateLimit RateLimitConfig
	perfMon   *middleware.PerformanceMonitor
	swaggerOn bool
}

// NewRouter builds a Router. swaggerOn controls whether /swagger/* is
// mounted - disabled in production by default, enabled for local
// development and the demo deployment.
func NewRouter(handler *Handler, rateLimit RateLimitConfig, swaggerOn bool) *Router {
	return &Router{
		handler:   handler,
		rateLimit: rateLimit,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		swaggerOn: swaggerOn,
	}
}

// SetupChi builds the full route tree: global middleware, then one
// route group per concern, each carrying only the rate limiter that
// concern needs.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.Compression))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(router.perfMon.Middleware)

	r.Route("/auth", func(r chi.Router) {
		r.Use(rateLimited(router.rateLimit.AuthRequests, router.rateLimit.AuthWindow))
		r.Post("/", router.handler.HandleIssueHuman)
		r.Post("/agent", router.handler.HandleIssueAgent)
	})

	r.Route("/call", func(r chi.Router) {
		r.Use(rateLimited(router.rateLimit.CallRequests, router.rateLimit.CallWindow))
		r.Post("/", router.handler.HandleCall)
		r.MethodNotAllowed(methodNotAllowed)
	})

	r.Route("/ops", func(r chi.Router) {
		r.Use(rateLimited(router.rateLimit.PollRequests, router.rateLimit.PollWindow))
		r.Get("/{requestId}", router.handler.HandlePollStatus)
		r.Get("/{requestId}/chunks", router.handler.HandleChunk)
		r.Get("/stream/{requestId}", router.handler.HandleStream)
	})

	r.Get("/.well-known/ops", router.handler.HandleDiscovery)
	r.Handle("/metrics", promhttp.Handler())

	if router.swaggerOn {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	return r
}

// methodNotAllowed reports METHOD_NOT_ALLOWED with the Allow header
// spec.md's route table requires for any non-POST /call request.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeCallError(w, http.StatusMethodNotAllowed,
		envelope.New(envelope.CodeMethodNotAllowed, "only POST is permitted on /call"))
}

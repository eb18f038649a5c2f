// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package dispatcher implements the CALL request pipeline: parse,
// lookup, deprecation gate, auth, idempotency replay, validate,
// execute, record. Each step either hands off to the next or produces a
// decisive envelope.Response and stops the pipeline outright - the
// pipeline never runs two steps' worth of side effects for one
// decision.
package dispatcher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/asyncstore"
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/metrics"
	"github.com/tomtom215/call/internal/ops"
	"github.com/tomtom215/call/internal/registry"
	"github.com/tomtom215/call/internal/streamhub"
	"github.com/tomtom215/call/internal/worker"
)

// Dispatcher wires the registry, the operation catalogue, auth, the
// idempotency cache, the async instance store, and the worker pool
// into the eight-step pipeline described in its package doc.
type Dispatcher struct {
	registry *registry.Registry
	entries  map[string]ops.Entry
	auth     *authn.Store
	idem     *asyncstore.IdempotencyCache
	async    *asyncstore.Store
	pool     *worker.Pool
	streams  *streamhub.Hub

	asyncTTLFallback time.Duration
}

// New builds a Dispatcher. entries must cover every op the registry
// knows about; a registry op with no catalogue entry can never execute
// and fails stepLookup with UNKNOWN_OPERATION. streams
// may be nil, in which case any KindStreamSeed outcome still produces a
// {state:streaming} envelope but its Location can never be redeemed.
func New(reg *registry.Registry, entries []ops.Entry, authStore *authn.Store, idem *asyncstore.IdempotencyCache, asyncStore *asyncstore.Store, pool *worker.Pool, streams *streamhub.Hub) *Dispatcher {
	byOp := make(map[string]ops.Entry, len(entries))
	for _, e := range entries {
		byOp[e.Op] = e
	}
	return &Dispatcher{
		registry:         reg,
		entries:          byOp,
		auth:             authStore,
		idem:             idem,
		async:            asyncStore,
		pool:             pool,
		streams:          streams,
		asyncTTLFallback: 5 * time.Minute,
	}
}

// dispatchContext threads the per-request state through the pipeline
// steps. It is allocated fresh for every call to Dispatch.
type dispatchContext struct {
	ctx        context.Context
	rawBody    []byte
	authHeader string

	req       envelope.Request
	requestID string
	sessionID string

	descriptor registry.Descriptor
	entry      ops.Entry

	principal *authn.Principal
	args      any

	idempotencyKey string
	idemSubject    string

	outcome ops.Outcome
}

// Dispatch runs the full pipeline for one inbound /call request.
func (d *Dispatcher) Dispatch(ctx context.Context, rawBody []byte, authHeader string) *envelope.Response {
	start := time.Now()
	dc := &dispatchContext{ctx: ctx, rawBody: rawBody, authHeader: authHeader}

	resp := d.run(dc)

	op := dc.req.Op
	if op == "" {
		op = "unknown"
	}
	metrics.RecordDispatch(op, string(resp.State), time.Since(start))
	return resp
}

func (d *Dispatcher) run(dc *dispatchContext) *envelope.Response {
	if resp := d.stepParse(dc); resp != nil {
		return resp
	}
	if resp := d.stepLookup(dc); resp != nil {
		return resp
	}
	if resp := d.stepDeprecation(dc); resp != nil {
		return resp
	}
	if resp := d.stepAuth(dc); resp != nil {
		return resp
	}
	if resp := d.stepIdempotency(dc); resp != nil {
		return resp
	}
	if resp := d.stepValidate(dc); resp != nil {
		return resp
	}

	resp := d.stepExecute(dc)
	d.stepIdempotencyRecord(dc, resp)
	return resp
}

// newRequestID honors a caller-supplied requestId only when it parses
// as a UUID; anything else - empty, malformed, or absent - is treated
// as no requestId at all and replaced with a fresh one.
func newRequestID(ctx *envelope.Context) string {
	if ctx != nil && ctx.RequestID != "" {
		if _, err := uuid.Parse(ctx.RequestID); err == nil {
			return ctx.RequestID
		}
	}
	return uuid.NewString()
}

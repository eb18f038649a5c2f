// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import (
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/ops"
)

// stepExecute invokes the handler and shapes its Outcome into the
// matching wire response. Exactly one of the four outcomes spec.md §3
// describes comes out the other end: complete, domain error, accepted,
// or streaming.
func (d *Dispatcher) stepExecute(dc *dispatchContext) *envelope.Response {
	outcome, err := dc.entry.Handle(dc.ctx, dc.args, dc.principal)
	if err != nil {
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.New(envelope.CodeInternalError, "handler failed: "+err.Error()))
	}
	dc.outcome = outcome

	switch outcome.Kind {
	case ops.KindResult:
		return envelope.Complete(dc.requestID, dc.sessionID, outcome.Result)

	case ops.KindRedirect:
		return envelope.Redirect(dc.requestID, dc.sessionID, outcome.Location)

	case ops.KindDomainError:
		return envelope.Failed(dc.requestID, dc.sessionID, outcome.Error)

	case ops.KindAsyncSeed:
		ttl := outcome.AsyncTTL
		if ttl <= 0 {
			ttl = d.asyncTTLFallback
		}
		instance := d.async.Create(dc.req.Op, ttl, outcome.AsyncRetryAfterMs)
		d.pool.Submit(dc.req.Op, instance, outcome.Continuation)
		return envelope.Accepted(dc.requestID, dc.sessionID, "/ops/"+instance.RequestID, outcome.AsyncRetryAfterMs)

	case ops.KindStreamSeed:
		if d.streams != nil {
			d.streams.RegisterPending(dc.requestID, outcome.StreamTopics)
		}
		return envelope.Streaming(dc.requestID, envelope.Stream{
			Transport: "websocket",
			Location:  "/ops/stream/" + dc.requestID,
			SessionID: dc.sessionID,
			Encoding:  "json",
		})

	default:
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.New(envelope.CodeInternalError, "handler returned an unrecognized outcome kind"))
	}
}

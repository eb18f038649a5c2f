// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import "github.com/tomtom215/call/internal/envelope"

// stepIdempotencyRecord caches resp for later replay when the call was
// side-effecting, carried an idempotency key, and reached a terminal
// state. An Accepted response is not terminal - the async instance
// itself is the source of truth for the eventual result, and caching
// the Accepted envelope would just hand back a stale polling location
// on retry instead of letting the client discover the real one.
func (d *Dispatcher) stepIdempotencyRecord(dc *dispatchContext, resp *envelope.Response) {
	if !dc.descriptor.SideEffecting || dc.idempotencyKey == "" {
		return
	}
	if resp.State != envelope.StateComplete && resp.State != envelope.StateError {
		return
	}
	d.idem.Put(dc.req.Op, dc.idempotencyKey, dc.idemSubject, resp)
}

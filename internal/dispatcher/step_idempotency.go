// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import (
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/metrics"
)

// stepIdempotency replays a previously recorded terminal outcome for a
// side-effecting call submitted again with the same idempotency key and
// principal. Only terminal outcomes are ever cached (see
// step_idempotency_record.go), so a retry that arrives while the
// original call is still in flight falls through and executes again
// rather than blocking on a cache miss.
func (d *Dispatcher) stepIdempotency(dc *dispatchContext) *envelope.Response {
	if !dc.descriptor.SideEffecting || dc.idempotencyKey == "" {
		return nil
	}

	cached, ok := d.idem.Get(dc.req.Op, dc.idempotencyKey, dc.idemSubject)
	metrics.RecordIdempotencyLookup(ok)
	if ok {
		return cached
	}
	return nil
}

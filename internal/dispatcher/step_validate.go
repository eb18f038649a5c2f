// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import (
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/validation"
)

// stepValidate enforces the idempotency-key-required invariant for ops
// that declare it, then strictly decodes and validates args into the
// catalogue entry's concrete type.
func (d *Dispatcher) stepValidate(dc *dispatchContext) *envelope.Response {
	if dc.descriptor.IdempotencyRequired && dc.idempotencyKey == "" {
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.New(envelope.CodeIdempotencyRequired, "operation "+dc.req.Op+" requires ctx.idempotencyKey"))
	}

	target := dc.entry.NewArgs()
	if callErr := validation.ValidateArgs(dc.req.Args, target); callErr != nil {
		return envelope.Failed(dc.requestID, dc.sessionID, callErr)
	}

	dc.args = target
	return nil
}

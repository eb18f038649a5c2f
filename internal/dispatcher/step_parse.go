// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/tomtom215/call/internal/envelope"
)

// stepParse decodes the outer CALL envelope. A malformed envelope has
// no reliable requestId to echo back, so the error response carries a
// freshly minted one.
func (d *Dispatcher) stepParse(dc *dispatchContext) *envelope.Response {
	body := dc.rawBody
	if len(bytes.TrimSpace(body)) == 0 {
		return envelope.Failed(newRequestID(nil), "", envelope.New(envelope.CodeInvalidEnvelope, "request body is empty"))
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	var req envelope.Request
	if err := decoder.Decode(&req); err != nil {
		return envelope.Failed(newRequestID(nil), "", envelope.New(envelope.CodeInvalidEnvelope, "malformed request envelope: "+err.Error()))
	}
	if req.Op == "" {
		return envelope.Failed(newRequestID(req.Ctx), "", envelope.New(envelope.CodeInvalidEnvelope, "op is required"))
	}

	dc.req = req
	dc.requestID = newRequestID(req.Ctx)
	if req.Ctx != nil {
		dc.sessionID = req.Ctx.SessionID
		dc.idempotencyKey = req.Ctx.IdempotencyKey
	}
	return nil
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import "github.com/tomtom215/call/internal/envelope"

// stepAuth resolves the bearer token into a principal and checks it
// carries every scope the descriptor requires. Missing or malformed
// tokens and insufficient scopes are both transport-level failures -
// the handler never runs.
func (d *Dispatcher) stepAuth(dc *dispatchContext) *envelope.Response {
	principal, err := d.auth.Resolve(dc.authHeader)
	if err != nil {
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.New(envelope.CodeAuthRequired, "missing or invalid bearer token"))
	}

	if ok, missing := principal.HasScopes(dc.descriptor.AuthScopes); !ok {
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.WithCause(envelope.CodeInsufficientScopes, "principal is missing required scopes",
				map[string]any{"missing": missing}))
	}

	dc.principal = principal
	dc.idemSubject = principal.Subject
	return nil
}

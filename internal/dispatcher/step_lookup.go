// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import "github.com/tomtom215/call/internal/envelope"

// stepLookup resolves the requested op against both the registry
// (schema, scopes, execution model) and the operation catalogue
// (handler). The two must agree for the call to proceed - a registry
// entry with no wired handler is a server-side integration bug, not a
// client error, so it also fails as UNKNOWN_OPERATION rather than
// panicking.
func (d *Dispatcher) stepLookup(dc *dispatchContext) *envelope.Response {
	descriptor, found := d.registry.Lookup(dc.req.Op)
	if !found {
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.New(envelope.CodeUnknownOperation, "no such operation: "+dc.req.Op))
	}

	entry, found := d.entries[dc.req.Op]
	if !found {
		return envelope.Failed(dc.requestID, dc.sessionID,
			envelope.New(envelope.CodeUnknownOperation, "no such operation: "+dc.req.Op))
	}

	dc.descriptor = descriptor
	dc.entry = entry
	return nil
}

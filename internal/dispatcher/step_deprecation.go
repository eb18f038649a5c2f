// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import (
	"time"

	"github.com/tomtom215/call/internal/envelope"
)

// stepDeprecation rejects calls to an operation whose sunset date has
// passed. Deprecated-but-not-yet-sunset operations still execute; the
// discovery document is where clients learn to migrate ahead of time.
func (d *Dispatcher) stepDeprecation(dc *dispatchContext) *envelope.Response {
	if !dc.descriptor.Deprecated {
		return nil
	}
	if !dc.descriptor.SunsetPassed(time.Now()) {
		return nil
	}

	cause := map[string]any{}
	if dc.descriptor.Replacement != "" {
		cause["replacement"] = dc.descriptor.Replacement
	}
	return envelope.Failed(dc.requestID, dc.sessionID,
		envelope.WithCause(envelope.CodeOpRemoved, "operation "+dc.req.Op+" was sunset on "+dc.descriptor.Sunset, cause))
}

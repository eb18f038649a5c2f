// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package api is the CALL server's HTTP surface: a chi router mounting
POST /auth, POST /auth/agent, POST /call, GET /ops/{requestId}, GET
/ops/{requestId}/chunks, GET /ops/stream/{requestId}, GET
/.well-known/ops, and GET /metrics, plus an optional /swagger/* for
local development.

The handlers themselves do no protocol logic - they decode a request,
hand off to the dispatcher, authn store, asyncstore, streamhub, or
registry, and shape whatever comes back into the HTTP response. All
protocol decisions live in internal/dispatcher and its collaborators;
this package only ever translates between envelope.Response and the
wire, except for the websocket upgrade in handlers_stream.go, which has
nowhere else to live.
*/
package api

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package envelope defines the wire types for the CALL protocol: the
// inbound request envelope, the outbound response envelope (a tagged
// union over State), and the closed error taxonomy.
package envelope

import (
	"github.com/goccy/go-json"
)

// State is the outbound envelope's discriminant. Exactly one of
// Result, Error, Location, Stream is populated, determined by State.
type State string

const (
	StateComplete  State = "complete"
	StateError     State = "error"
	StateAccepted  State = "accepted"
	StateStreaming State = "streaming"
)

// Context carries the optional client-supplied correlation fields.
type Context struct {
	RequestID      string `json:"requestId,omitempty"`
	SessionID      string `json:"sessionId,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Request is the inbound envelope posted to /call.
type Request struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args"`
	Ctx  *Context        `json:"ctx,omitempty"`
}

// Location points at an externally addressable resource: either the
// polling location for an accepted async operation, or a media redirect
// produced by a sync handler.
type Location struct {
	URI string `json:"uri"`
}

// Stream describes a streaming upgrade handshake.
type Stream struct {
	Transport string `json:"transport"`
	Location  string `json:"location"`
	SessionID string `json:"sessionId"`
	Encoding  string `json:"encoding"`
}

// Response is the outbound envelope. Only the field matching State is
// ever populated; the others are always absent from the wire form.
type Response struct {
	RequestID    string      `json:"requestId"`
	SessionID    string      `json:"sessionId,omitempty"`
	State        State       `json:"state"`
	Result       any         `json:"result,omitempty"`
	Error        *CallError  `json:"error,omitempty"`
	Location     *Location   `json:"location,omitempty"`
	Stream       *Stream     `json:"stream,omitempty"`
	RetryAfterMs int64       `json:"retryAfterMs,omitempty"`
}

// Complete builds a {state:complete} response.
func Complete(requestID, sessionID string, result any) *Response {
	return &Response{RequestID: requestID, SessionID: sessionID, State: StateComplete, Result: result}
}

// Redirect builds a {state:complete, location} response for a media redirect.
func Redirect(requestID, sessionID string, loc Location) *Response {
	return &Response{RequestID: requestID, SessionID: sessionID, State: StateComplete, Location: &loc}
}

// Failed builds a {state:error} response.
func Failed(requestID, sessionID string, callErr *CallError) *Response {
	return &Response{RequestID: requestID, SessionID: sessionID, State: StateError, Error: callErr}
}

// Accepted builds a {state:accepted} response for an async operation.
func Accepted(requestID, sessionID, uri string, retryAfterMs int64) *Response {
	return &Response{
		RequestID:    requestID,
		SessionID:    sessionID,
		State:        StateAccepted,
		Location:     &Location{URI: uri},
		RetryAfterMs: retryAfterMs,
	}
}

// Streaming builds a {state:streaming} response for a stream upgrade.
func Streaming(requestID string, stream Stream) *Response {
	return &Response{RequestID: requestID, State: StateStreaming, Stream: &stream}
}

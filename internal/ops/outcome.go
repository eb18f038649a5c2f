// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package ops implements the demonstration library domain's operation
// handlers: the business logic behind each entry in the registry's
// descriptor table. Handlers never touch HTTP, JSON decoding, or auth
// directly - the dispatcher hands them already-validated args and an
// authenticated principal, and gets back an Outcome.
package ops

import (
	"time"

	"github.com/tomtom215/call/internal/envelope"
)

// Kind discriminates the shape of a handler's Outcome.
type Kind string

const (
	// KindResult is a plain synchronous success; the dispatcher wraps
	// Result in a {state:complete} envelope.
	KindResult Kind = "result"
	// KindRedirect is a synchronous success whose payload is a location
	// rather than an inline result (a media redirect).
	KindRedirect Kind = "redirect"
	// KindDomainError is a business-rule failure distinct from a
	// transport error; Error is carried verbatim into {state:error}.
	KindDomainError Kind = "domain_error"
	// KindAsyncSeed tells the dispatcher to accept the call and run the
	// handler's Continuation in the background worker pool.
	KindAsyncSeed Kind = "async_seed"
	// KindStreamSeed tells the dispatcher to upgrade the call to a
	// streaming transport instead of answering inline.
	KindStreamSeed Kind = "stream_seed"
)

// Continuation is the work a KindAsyncSeed outcome defers to the
// background worker pool. It takes no arguments: the handler builds it
// as a closure over whatever it needs, and it produces the eventual
// terminal result.
type Continuation func() (any, *envelope.CallError)

// Outcome is what an operation handler returns to the dispatcher. Only
// the fields matching Kind are meaningful.
type Outcome struct {
	Kind Kind

	Result   any
	Location envelope.Location
	Error    *envelope.CallError

	AsyncTTL          time.Duration
	AsyncRetryAfterMs int64
	Continuation      Continuation

	StreamTopics []string
}

// Result builds a KindResult outcome.
func Result(result any) Outcome {
	return Outcome{Kind: KindResult, Result: result}
}

// Redirect builds a KindRedirect outcome.
func Redirect(uri string) Outcome {
	return Outcome{Kind: KindRedirect, Location: envelope.Location{URI: uri}}
}

// DomainError builds a KindDomainError outcome.
func DomainError(callErr *envelope.CallError) Outcome {
	return Outcome{Kind: KindDomainError, Error: callErr}
}

// Async builds a KindAsyncSeed outcome. ttl bounds how long the worker
// pool is given to run continuation before the instance is treated as
// abandoned; retryAfterMs seeds the poller's first backoff hint.
func Async(ttl time.Duration, retryAfterMs int64, continuation Continuation) Outcome {
	return Outcome{
		Kind:              KindAsyncSeed,
		AsyncTTL:          ttl,
		AsyncRetryAfterMs: retryAfterMs,
		Continuation:      continuation,
	}
}

// Stream builds a KindStreamSeed outcome.
func Stream(topics []string) Outcome {
	return Outcome{Kind: KindStreamSeed, StreamTopics: topics}
}

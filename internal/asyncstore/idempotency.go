// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package asyncstore

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tomtom215/call/internal/envelope"
)

// idempotencyKey identifies one cached replay slot. Two requests only
// collide when they agree on all three fields: a shared idempotencyKey
// submitted by different principals, or against different ops, is not a
// replay (spec.md §4.3).
type idempotencyKey struct {
	op             string
	idempotencyKey string
	subject        string
}

// IdempotencyCache remembers the terminal outcome of a side-effecting
// call so a retried request with the same idempotency key gets the
// original response instead of executing twice. Only terminal outcomes
// (complete or error) are ever stored: an in-flight async Accepted is
// not cached, so a retry submitted before the original finishes is
// dispatched as a fresh call (Open Question resolution, SPEC_FULL.md §9).
type IdempotencyCache struct {
	entries *lru.Cache[idempotencyKey, *envelope.Response]
}

// NewIdempotencyCache builds a bounded cache holding up to maxEntries
// replay slots, evicting least-recently-used entries beyond that.
func NewIdempotencyCache(maxEntries int) (*IdempotencyCache, error) {
	entries, err := lru.New[idempotencyKey, *envelope.Response](maxEntries)
	if err != nil {
		return nil, err
	}
	return &IdempotencyCache{entries: entries}, nil
}

// Get returns a previously recorded terminal response, if any.
func (c *IdempotencyCache) Get(op, key, subject string) (*envelope.Response, bool) {
	if key == "" {
		return nil, false
	}
	return c.entries.Get(idempotencyKey{op: op, idempotencyKey: key, subject: subject})
}

// Put records a terminal response for later replay. Callers must not
// call Put for an Accepted/Streaming response.
func (c *IdempotencyCache) Put(op, key, subject string, resp *envelope.Response) {
	if key == "" {
		return
	}
	c.entries.Add(idempotencyKey{op: op, idempotencyKey: key, subject: subject}, resp)
}

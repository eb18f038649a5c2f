// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package asyncstore holds the lifecycle of async CALL operations:
// accepted -> pending -> complete|error, chunked result assembly, and
// the per-instance polling rate limit.
package asyncstore

import (
	"sync"
	"time"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/ratelimit"
)

// State is the async instance's lifecycle state.
type State string

const (
	Accepted State = "accepted"
	Pending  State = "pending"
	Complete State = "complete"
	Error    State = "error"
)

// terminal reports whether s is a sink state with no further transitions.
func (s State) terminal() bool {
	return s == Complete || s == Error
}

// Instance is a server-side record of one async operation invocation.
// Each instance owns its own mutex so unrelated instances never block
// each other, per the per-instance locking discipline in spec.md §5.
type Instance struct {
	RequestID    string
	Op           string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	RetryAfterMs int64

	mu      sync.Mutex
	state   State
	result  any
	callErr *envelope.CallError
	chunks  []Chunk
	limiter *ratelimit.Limiter
}

func newInstance(requestID, op string, ttl time.Duration, retryAfterMs int64, pollInterval time.Duration) *Instance {
	now := time.Now()
	return &Instance{
		RequestID:    requestID,
		Op:           op,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		RetryAfterMs: retryAfterMs,
		state:        Accepted,
		limiter:      ratelimit.New(pollInterval),
	}
}

// Snapshot is a read-only, point-in-time view of an instance, safe to
// hand to the HTTP layer without further locking.
type Snapshot struct {
	RequestID    string
	Op           string
	State        State
	Result       any
	Error        *envelope.CallError
	ExpiresAt    time.Time
	RetryAfterMs int64
}

// Snapshot returns the instance's current state under lock. Once
// Complete, Result and the chunk list are immutable, so later snapshots
// of a complete instance are always identical.
func (i *Instance) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return Snapshot{
		RequestID:    i.RequestID,
		Op:           i.Op,
		State:        i.state,
		Result:       i.result,
		Error:        i.callErr,
		ExpiresAt:    i.ExpiresAt,
		RetryAfterMs: i.RetryAfterMs,
	}
}

// AllowPoll consults the instance's rate limiter.
func (i *Instance) AllowPoll(now time.Time) (allowed bool, retryAfterMs int64) {
	return i.limiter.Allow(now)
}

// Expired reports whether the instance has passed its TTL as of now.
func (i *Instance) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// chunksFor returns the chunk list, only meaningful once State is
// Complete.
func (i *Instance) chunksFor() []Chunk {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.chunks
}

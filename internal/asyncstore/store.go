// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package asyncstore

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/metrics"
)

// ErrNotFound is returned by Lookup for an unknown or expired requestId.
var ErrNotFound = errors.New("asyncstore: instance not found")

// ErrInvalidTransition is returned by Transition when the requested move
// is not a permitted edge in the accepted -> pending -> complete|error
// graph.
var ErrInvalidTransition = errors.New("asyncstore: invalid state transition")

// Store is a process-wide, in-memory map from requestId to Instance. The
// top-level map is guarded by a single RWMutex; each Instance then owns
// its own mutex for the fields that mutate after creation (§5).
type Store struct {
	pollInterval time.Duration

	mu        sync.RWMutex
	instances map[string]*Instance
}

// New creates an empty Store. pollInterval is the minimum spacing between
// polls of the same instance (spec.md §4.5).
func New(pollInterval time.Duration) *Store {
	return &Store{
		pollInterval: pollInterval,
		instances:    make(map[string]*Instance),
	}
}

// Create allocates a new instance in the Accepted state.
func (s *Store) Create(op string, ttl time.Duration, retryAfterMs int64) *Instance {
	instance := newInstance(uuid.NewString(), op, ttl, retryAfterMs, s.pollInterval)

	s.mu.Lock()
	s.instances[instance.RequestID] = instance
	s.mu.Unlock()

	metrics.RecordAsyncCreated(op)
	return instance
}

// Lookup returns the instance for requestId, or ErrNotFound if it is
// unknown or has passed its TTL.
func (s *Store) Lookup(requestID string) (*Instance, error) {
	s.mu.RLock()
	instance, ok := s.instances[requestID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if instance.Expired(time.Now()) {
		s.evict(requestID)
		metrics.RecordAsyncExpired(instance.Op)
		return nil, ErrNotFound
	}
	return instance, nil
}

// TransitionToPending moves an Accepted instance to Pending. It is a
// no-op, not an error, if the instance is already Pending (an idempotent
// retry of the same background task).
func (s *Store) TransitionToPending(instance *Instance) error {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	switch instance.state {
	case Accepted:
		instance.state = Pending
		metrics.RecordAsyncTransition(instance.Op, "pending")
		return nil
	case Pending:
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Complete moves an instance to the terminal Complete state, chunking
// the result. result must already be the handler's final, serializable
// value.
func (s *Store) Complete(instance *Instance, result any) error {
	chunks, err := buildChunks(result)
	if err != nil {
		return err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.state.terminal() {
		return nil
	}
	if instance.state != Accepted && instance.state != Pending {
		return ErrInvalidTransition
	}

	instance.state = Complete
	instance.result = result
	instance.chunks = chunks
	metrics.RecordAsyncTransition(instance.Op, "complete")
	return nil
}

// Fail moves an instance to the terminal Error state.
func (s *Store) Fail(instance *Instance, callErr *envelope.CallError) error {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.state.terminal() {
		return nil
	}
	if instance.state != Accepted && instance.state != Pending {
		return ErrInvalidTransition
	}

	instance.state = Error
	instance.callErr = callErr
	metrics.RecordAsyncTransition(instance.Op, "error")
	return nil
}

// Chunks returns the chunk of a completed instance that matches cursor
// (head if cursor is empty), and whether such a chunk exists.
func (s *Store) Chunks(instance *Instance, cursor string) (Chunk, bool, error) {
	snap := instance.Snapshot()
	if snap.State != Complete {
		return Chunk{}, false, errNotComplete
	}

	offset, ok := decodeCursor(cursor)
	if !ok {
		return Chunk{}, false, errBadCursor
	}

	chunk, found := chunkAtOffset(instance.chunksFor(), offset)
	if found {
		metrics.RecordChunkServed(instance.Op)
	}
	return chunk, found, nil
}

// Sweep removes every instance past its expiry. Demand-driven eviction
// on Lookup already handles the common case; Sweep lets a caller reclaim
// memory for instances nobody is polling anymore.
func (s *Store) Sweep() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, instance := range s.instances {
		if instance.Expired(now) {
			delete(s.instances, id)
			metrics.RecordAsyncExpired(instance.Op)
			removed++
		}
	}
	return removed
}

func (s *Store) evict(requestID string) {
	s.mu.Lock()
	delete(s.instances, requestID)
	s.mu.Unlock()
}

var errNotComplete = errors.New("asyncstore: instance is not complete")
var errBadCursor = errors.New("asyncstore: malformed cursor")

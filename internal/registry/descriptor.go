// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package registry holds the immutable table of operation descriptors and
// serves the discovery document at /.well-known/ops.
package registry

import "time"

// ExecutionModel selects which of the three dispatcher execution paths an
// operation takes.
type ExecutionModel string

const (
	Sync   ExecutionModel = "sync"
	Async  ExecutionModel = "async"
	Stream ExecutionModel = "stream"
)

// Descriptor is the immutable metadata the dispatcher consults for one
// operation. ArgsSchema/ResultSchema are JSON-Schema-compatible maps built
// once at process start and never mutated.
type Descriptor struct {
	Op                  string         `json:"op"`
	ArgsSchema          map[string]any `json:"argsSchema"`
	ResultSchema        map[string]any `json:"resultSchema"`
	SideEffecting       bool           `json:"sideEffecting"`
	IdempotencyRequired bool           `json:"idempotencyRequired"`
	ExecutionModel      ExecutionModel `json:"executionModel"`
	MaxSyncMs           int            `json:"maxSyncMs,omitempty"`
	TTLSeconds          int            `json:"ttlSeconds,omitempty"`
	AuthScopes          []string       `json:"authScopes"`
	CachingPolicy       string         `json:"cachingPolicy,omitempty"`
	Deprecated          bool           `json:"deprecated,omitempty"`
	Sunset              string         `json:"sunset,omitempty"`
	Replacement         string         `json:"replacement,omitempty"`
}

// SunsetPassed reports whether the descriptor's sunset date has passed as
// of now. A deprecated descriptor with no sunset, or a sunset in the
// future, is informational only and does not block dispatch.
func (d Descriptor) SunsetPassed(now time.Time) bool {
	if !d.Deprecated || d.Sunset == "" {
		return false
	}
	sunset, err := time.Parse("2006-01-02", d.Sunset)
	if err != nil {
		return false
	}
	return now.After(sunset)
}

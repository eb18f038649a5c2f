// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package ratelimit provides the per-instance polling rate limiter:
// a minimum interval between successive polls of the same requestId.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates polls of a single async operation instance to no more
// than one per interval. It is safe for concurrent use.
type Limiter struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// New creates a Limiter with the given minimum interval between
// successive allowed polls (burst of 1: the first poll is always free).
func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Allow reports whether a poll at now is permitted. When denied, it also
// returns a retryAfterMs hint bounded by the configured interval.
func (l *Limiter) Allow(now time.Time) (allowed bool, retryAfterMs int64) {
	r := l.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, l.interval.Milliseconds()
	}

	delay := r.DelayFrom(now)
	if delay <= 0 {
		return true, 0
	}

	r.CancelAt(now)
	if delay > l.interval {
		delay = l.interval
	}
	return false, delay.Milliseconds()
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterFirstPollAlwaysAllowed(t *testing.T) {
	l := New(time.Second)
	allowed, retry := l.Allow(time.Now())
	assert.True(t, allowed)
	assert.Zero(t, retry)
}

func TestLimiterSecondPollWithinWindowDenied(t *testing.T) {
	l := New(time.Second)
	now := time.Now()

	allowed, _ := l.Allow(now)
	assert.True(t, allowed)

	allowed, retry := l.Allow(now.Add(100 * time.Millisecond))
	assert.False(t, allowed)
	assert.LessOrEqual(t, retry, int64(1000))
	assert.Greater(t, retry, int64(0))
}

func TestLimiterAllowsAfterInterval(t *testing.T) {
	l := New(time.Second)
	now := time.Now()

	allowed, _ := l.Allow(now)
	assert.True(t, allowed)

	allowed, _ = l.Allow(now.Add(2 * time.Second))
	assert.True(t, allowed)
}

func TestLimiterDistinctInstancesIndependent(t *testing.T) {
	a := New(time.Second)
	b := New(time.Second)
	now := time.Now()

	allowedA, _ := a.Allow(now)
	allowedB, _ := b.Allow(now)
	assert.True(t, allowedA)
	assert.True(t, allowedB)
}

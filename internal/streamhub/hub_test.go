// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package streamhub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimIsOneShot(t *testing.T) {
	h := NewHub()
	h.RegisterPending("req-1", []string{"checkout"})

	topics, ok := h.Claim("req-1")
	require.True(t, ok)
	assert.Equal(t, []string{"checkout"}, topics)

	_, ok = h.Claim("req-1")
	assert.False(t, ok, "a claim must be redeemable exactly once")
}

func TestClaimOfUnknownRequestFails(t *testing.T) {
	h := NewHub()
	_, ok := h.Claim("never-registered")
	assert.False(t, ok)
}

func TestServeStopsOnContextCancellation(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}

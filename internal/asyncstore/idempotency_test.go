// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package asyncstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/call/internal/envelope"
)

func TestIdempotencyCacheMissWithoutKey(t *testing.T) {
	c, err := NewIdempotencyCache(16)
	require.NoError(t, err)

	_, ok := c.Get("v1:items.checkout", "", "patron-1")
	assert.False(t, ok)
}

func TestIdempotencyCacheRoundTrip(t *testing.T) {
	c, err := NewIdempotencyCache(16)
	require.NoError(t, err)

	resp := envelope.Complete("req-1", "", map[string]any{"ok": true})
	c.Put("v1:items.checkout", "key-1", "patron-1", resp)

	got, ok := c.Get("v1:items.checkout", "key-1", "patron-1")
	require.True(t, ok)
	assert.Same(t, resp, got)
}

func TestIdempotencyCacheDistinguishesSubject(t *testing.T) {
	c, err := NewIdempotencyCache(16)
	require.NoError(t, err)

	resp := envelope.Complete("req-1", "", "first-patron-result")
	c.Put("v1:items.checkout", "key-1", "patron-1", resp)

	_, ok := c.Get("v1:items.checkout", "key-1", "patron-2")
	assert.False(t, ok)
}

func TestIdempotencyCacheDistinguishesOp(t *testing.T) {
	c, err := NewIdempotencyCache(16)
	require.NoError(t, err)

	resp := envelope.Complete("req-1", "", "checkout-result")
	c.Put("v1:items.checkout", "key-1", "patron-1", resp)

	_, ok := c.Get("v1:items.checkin", "key-1", "patron-1")
	assert.False(t, ok)
}

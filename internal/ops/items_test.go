// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/call/internal/envelope"
)

func TestCheckoutAvailableItemSucceeds(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.CheckoutItem(context.Background(), &CheckoutArgs{ItemID: "item-001", PatronID: "patron-001"}, nil)
	require.NoError(t, err)
	require.Equal(t, KindResult, outcome.Kind)

	body := outcome.Result.(map[string]any)
	assert.Equal(t, "item-001", body["itemId"])
	assert.NotEmpty(t, body["dueAt"])
}

func TestCheckoutUnavailableItemIsDomainError(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.CheckoutItem(context.Background(), &CheckoutArgs{ItemID: "item-004", PatronID: "patron-001"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindDomainError, outcome.Kind)
	assert.Equal(t, "ITEM_UNAVAILABLE", outcome.Error.Code)
}

func TestCheckoutSamePatronRepeatIsIdempotent(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.CheckoutItem(context.Background(), &CheckoutArgs{ItemID: "item-004", PatronID: "patron-002"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindResult, outcome.Kind)
}

func TestCheckoutUnknownPatronIsDomainError(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.CheckoutItem(context.Background(), &CheckoutArgs{ItemID: "item-001", PatronID: "ghost"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindDomainError, outcome.Kind)
	assert.Equal(t, envelope.CodePatronNotFound, outcome.Error.Code)
}

func TestCheckinReturnsItemToShelf(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.CheckinItem(context.Background(), &CheckinArgs{ItemID: "item-004"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindResult, outcome.Kind)

	c.mu.RLock()
	item := c.items["item-004"]
	c.mu.RUnlock()
	assert.True(t, item.Available)
	assert.Empty(t, item.CheckedOutBy)
}

func TestCheckinAlreadyAvailableItemIsNotAnError(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.CheckinItem(context.Background(), &CheckinArgs{ItemID: "item-001"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindResult, outcome.Kind)
}

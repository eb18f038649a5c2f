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
)

func TestListItemsPaginates(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.ListItems(context.Background(), &ListArgs{Limit: 2}, nil)
	require.NoError(t, err)
	require.Equal(t, KindResult, outcome.Kind)

	body, ok := outcome.Result.(map[string]any)
	require.True(t, ok)
	items, ok := body["items"].([]catalogItemView)
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.NotEmpty(t, body["cursor"])
}

func TestListItemsLastPageHasNoCursor(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.ListItems(context.Background(), &ListArgs{Limit: 100}, nil)
	require.NoError(t, err)

	body := outcome.Result.(map[string]any)
	assert.Equal(t, "", body["cursor"])
}

func TestGetItemNotFoundIsDomainError(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.GetItem(context.Background(), &GetArgs{ItemID: "nope"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindDomainError, outcome.Kind)
	assert.Equal(t, "ITEM_NOT_FOUND", outcome.Error.Code)
}

func TestGetItemFound(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.GetItem(context.Background(), &GetArgs{ItemID: "item-001"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindResult, outcome.Kind)
}

func TestLegacySearchIsCaseInsensitive(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.LegacySearch(context.Background(), &LegacySearchArgs{Query: "PRAGMATIC"}, nil)
	require.NoError(t, err)

	body := outcome.Result.(map[string]any)
	items := body["items"].([]catalogItemView)
	require.Len(t, items, 1)
	assert.Equal(t, "item-001", items[0].ID)
}

func TestCatalogueCoversAllOps(t *testing.T) {
	c := NewDemoCatalog()
	entries := Catalogue(c)

	wantOps := []string{
		"v1:catalog.list", "v1:catalog.get", "v1:items.checkout", "v1:items.checkin",
		"v1:patron.fines", "v1:patron.profile", "v1:report.generate", "v1:report.overdue",
		"v1:events.subscribe", "v1:catalog.legacySearch",
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Op] = true
		assert.NotNil(t, e.NewArgs())
		assert.NotNil(t, e.Handle)
	}
	for _, op := range wantOps {
		assert.True(t, seen[op], "missing catalogue entry for %s", op)
	}
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/envelope"
)

// Item is one catalog entry in the demonstration library.
type Item struct {
	ID           string
	Title        string
	Author       string
	Available    bool
	CheckedOutBy string
	DueAt        time.Time
}

// Patron is a library patron record.
type Patron struct {
	ID             string
	AvatarURI      string
	FineCents      int
	OverdueItemIDs []string
}

// Catalog is the in-memory demonstration library backing every
// operation handler. It exists so the handlers have somewhere real to
// read and write; it is not a persistence layer.
type Catalog struct {
	mu        sync.RWMutex
	items     map[string]*Item
	order     []string
	patrons   map[string]*Patron
	publisher EventPublisher
}

// NewDemoCatalog seeds a small, fixed library so the CALL operations
// have deterministic data to operate on.
func NewDemoCatalog() *Catalog {
	c := &Catalog{
		items:   make(map[string]*Item),
		patrons: make(map[string]*Patron),
	}

	seedItems := []*Item{
		{ID: "item-001", Title: "The Pragmatic Programmer", Author: "Hunt & Thomas", Available: true},
		{ID: "item-002", Title: "Structure and Interpretation of Computer Programs", Author: "Abelson & Sussman", Available: true},
		{ID: "item-003", Title: "The Go Programming Language", Author: "Donovan & Kernighan", Available: true},
		{ID: "item-004", Title: "Designing Data-Intensive Applications", Author: "Kleppmann", Available: false, CheckedOutBy: "patron-002", DueAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "item-005", Title: "Release It!", Author: "Nygard", Available: true},
	}
	for _, item := range seedItems {
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}

	c.patrons["patron-001"] = &Patron{ID: "patron-001", AvatarURI: "https://library.example/avatars/patron-001.png"}
	c.patrons["patron-002"] = &Patron{ID: "patron-002", AvatarURI: "https://library.example/avatars/patron-002.png", FineCents: 250, OverdueItemIDs: []string{"item-004"}}

	return c
}

// ListArgs is the argument shape for v1:catalog.list.
type ListArgs struct {
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
	Cursor string `json:"cursor"`
}

// GetArgs is the argument shape for v1:catalog.get.
type GetArgs struct {
	ItemID string `json:"itemId" validate:"required"`
}

// LegacySearchArgs is the argument shape for the deprecated
// v1:catalog.legacySearch.
type LegacySearchArgs struct {
	Query string `json:"query" validate:"required"`
}

// catalogItemView is the wire shape of one catalog item in results.
type catalogItemView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}

func toItemView(item *Item) catalogItemView {
	return catalogItemView{ID: item.ID, Title: item.Title, Author: item.Author, Available: item.Available}
}

// ListItems handles v1:catalog.list: offset-paginated catalog browsing.
func (c *Catalog) ListItems(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*ListArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for catalog.list", rawArgs)
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := args.Offset
	if args.Cursor != "" {
		if parsed, err := strconv.Atoi(args.Cursor); err == nil {
			offset = parsed
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := append([]string(nil), c.order...)
	sort.Strings(ids)

	items := make([]catalogItemView, 0, limit)
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	nextCursor := ""
	if offset < len(ids) {
		for _, id := range ids[offset:end] {
			items = append(items, toItemView(c.items[id]))
		}
		if end < len(ids) {
			nextCursor = strconv.Itoa(end)
		}
	}

	return Result(map[string]any{"items": items, "cursor": nextCursor}), nil
}

// GetItem handles v1:catalog.get: a single catalog lookup by id.
func (c *Catalog) GetItem(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*GetArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for catalog.get", rawArgs)
	}

	c.mu.RLock()
	item, found := c.items[args.ItemID]
	c.mu.RUnlock()

	if !found {
		return DomainError(envelope.New("ITEM_NOT_FOUND", "no catalog item with that id")), nil
	}
	return Result(map[string]any{"item": toItemView(item)}), nil
}

// LegacySearch handles the deprecated v1:catalog.legacySearch: a naive
// substring match over title and author, kept only for clients that
// have not migrated to v1:catalog.list.
func (c *Catalog) LegacySearch(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*LegacySearchArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for catalog.legacySearch", rawArgs)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []catalogItemView
	for _, id := range c.order {
		item := c.items[id]
		if containsFold(item.Title, args.Query) || containsFold(item.Author, args.Query) {
			matches = append(matches, toItemView(item))
		}
	}
	return Result(map[string]any{"items": matches}), nil
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	h, n := []rune(haystack), []rune(needle)
	toLower := func(rs []rune) []rune {
		out := make([]rune, len(rs))
		for i, r := range rs {
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			out[i] = r
		}
		return out
	}
	h, n = toLower(h), toLower(n)
	for i := 0; i+len(n) <= len(h); i++ {
		if string(h[i:i+len(n)]) == string(n) {
			return true
		}
	}
	return false
}

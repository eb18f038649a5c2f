// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/envelope"
)

const checkoutPeriod = 21 * 24 * time.Hour

// CheckoutArgs is the argument shape for v1:items.checkout.
type CheckoutArgs struct {
	ItemID   string `json:"itemId" validate:"required"`
	PatronID string `json:"patronId" validate:"required"`
}

// CheckinArgs is the argument shape for v1:items.checkin.
type CheckinArgs struct {
	ItemID string `json:"itemId" validate:"required"`
}

// CheckoutItem handles v1:items.checkout: a side-effecting, idempotent
// loan of one catalog item to one patron.
func (c *Catalog) CheckoutItem(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*CheckoutArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for items.checkout", rawArgs)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[args.ItemID]
	if !found {
		return DomainError(envelope.New("ITEM_NOT_FOUND", "no catalog item with that id")), nil
	}
	if _, found := c.patrons[args.PatronID]; !found {
		return DomainError(envelope.New(envelope.CodePatronNotFound, "no patron with that id")), nil
	}

	if !item.Available && item.CheckedOutBy != args.PatronID {
		return DomainError(envelope.WithCause("ITEM_UNAVAILABLE", "item is already checked out",
			map[string]any{"checkedOutBy": item.CheckedOutBy})), nil
	}

	item.Available = false
	item.CheckedOutBy = args.PatronID
	item.DueAt = time.Now().Add(checkoutPeriod)

	c.publish("checkout", map[string]any{
		"itemId":   item.ID,
		"patronId": args.PatronID,
		"dueAt":    item.DueAt.Format(time.RFC3339),
	})

	return Result(map[string]any{
		"itemId": item.ID,
		"dueAt":  item.DueAt.Format(time.RFC3339),
	}), nil
}

// CheckinItem handles v1:items.checkin: returning a checked-out item to
// the shelf. Checking in an already-available item is not an error -
// the operation is idempotent by design, matching its descriptor.
func (c *Catalog) CheckinItem(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*CheckinArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for items.checkin", rawArgs)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[args.ItemID]
	if !found {
		return DomainError(envelope.New("ITEM_NOT_FOUND", "no catalog item with that id")), nil
	}

	item.Available = true
	item.CheckedOutBy = ""
	item.DueAt = time.Time{}

	c.publish("checkin", map[string]any{"itemId": item.ID})

	return Result(map[string]any{"itemId": item.ID}), nil
}

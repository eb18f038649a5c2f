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

const reportTTL = 5 * time.Minute
const reportPollIntervalMs = 250

// ReportGenerateArgs is the argument shape for v1:report.generate.
type ReportGenerateArgs struct {
	Format string `json:"format" validate:"omitempty,oneof=csv json"`
}

// ReportOverdueArgs is the argument shape for v1:report.overdue.
type ReportOverdueArgs struct {
	PatronID string `json:"patronId" validate:"required"`
}

// GenerateReport handles v1:report.generate: an async, whole-catalog
// circulation report. The continuation runs on the background worker
// pool and builds the report rows in one pass, with no added delay.
func (c *Catalog) GenerateReport(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*ReportGenerateArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for report.generate", rawArgs)
	}

	format := args.Format
	if format == "" {
		format = "json"
	}

	continuation := func() (any, *envelope.CallError) {
		c.mu.RLock()
		rows := make([]map[string]any, 0, len(c.order))
		for _, id := range c.order {
			item := c.items[id]
			rows = append(rows, map[string]any{
				"itemId":    item.ID,
				"title":     item.Title,
				"available": item.Available,
			})
		}
		c.mu.RUnlock()

		return map[string]any{
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
			"format":      format,
			"rows":        rows,
		}, nil
	}

	return Async(reportTTL, reportPollIntervalMs, continuation), nil
}

// GenerateOverdueReport handles v1:report.overdue: an async per-patron
// overdue check. A patron with no overdue items completes with an empty
// list; a patron with overdue items terminates as the domain error
// OVERDUE_ITEMS_EXIST, after publishing the overdue event so streaming
// subscribers still see it.
func (c *Catalog) GenerateOverdueReport(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*ReportOverdueArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for report.overdue", rawArgs)
	}

	patronID := args.PatronID

	continuation := func() (any, *envelope.CallError) {
		c.mu.RLock()
		patron, found := c.patrons[patronID]
		c.mu.RUnlock()

		if !found {
			return nil, envelope.New(envelope.CodePatronNotFound, "no patron with that id")
		}
		if len(patron.OverdueItemIDs) > 0 {
			c.publish("overdue", map[string]any{"patronId": patronID, "itemIds": patron.OverdueItemIDs})
			return nil, envelope.WithCause(envelope.CodeOverdueItemsExist, "patron has overdue items",
				map[string]any{"patronId": patronID, "itemIds": patron.OverdueItemIDs})
		}
		return map[string]any{"overdueItemIds": []string{}}, nil
	}

	return Async(reportTTL, reportPollIntervalMs, continuation), nil
}

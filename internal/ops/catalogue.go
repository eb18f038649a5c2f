// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"

	"github.com/tomtom215/call/internal/authn"
)

// Handler executes one operation's business logic. args is already
// decoded and validated into the concrete type NewArgs produces;
// principal is the authenticated caller, already scope-checked by the
// dispatcher.
type Handler func(ctx context.Context, args any, principal *authn.Principal) (Outcome, error)

// Entry binds a registry op name to the args type it decodes into and
// the handler that executes it.
type Entry struct {
	Op      string
	NewArgs func() any
	Handle  Handler
}

// Catalogue returns the full operation table for a given Catalog
// instance, keyed the same way as registry.Seed(). The dispatcher joins
// this table against the registry by Op to find both the descriptor
// (schema, scopes, execution model) and the handler to invoke.
func Catalogue(c *Catalog) []Entry {
	return []Entry{
		{Op: "v1:catalog.list", NewArgs: func() any { return &ListArgs{} }, Handle: c.ListItems},
		{Op: "v1:catalog.get", NewArgs: func() any { return &GetArgs{} }, Handle: c.GetItem},
		{Op: "v1:items.checkout", NewArgs: func() any { return &CheckoutArgs{} }, Handle: c.CheckoutItem},
		{Op: "v1:items.checkin", NewArgs: func() any { return &CheckinArgs{} }, Handle: c.CheckinItem},
		{Op: "v1:patron.fines", NewArgs: func() any { return &FinesArgs{} }, Handle: c.PatronFines},
		{Op: "v1:patron.profile", NewArgs: func() any { return &ProfileArgs{} }, Handle: c.PatronProfile},
		{Op: "v1:report.generate", NewArgs: func() any { return &ReportGenerateArgs{} }, Handle: c.GenerateReport},
		{Op: "v1:report.overdue", NewArgs: func() any { return &ReportOverdueArgs{} }, Handle: c.GenerateOverdueReport},
		{Op: "v1:events.subscribe", NewArgs: func() any { return &EventsSubscribeArgs{} }, Handle: c.Subscribe},
		{Op: "v1:catalog.legacySearch", NewArgs: func() any { return &LegacySearchArgs{} }, Handle: c.LegacySearch},
	}
}

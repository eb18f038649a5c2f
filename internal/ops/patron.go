// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"
	"fmt"

	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/envelope"
)

// FinesArgs is the argument shape for v1:patron.fines.
type FinesArgs struct {
	PatronID string `json:"patronId" validate:"required"`
}

// ProfileArgs is the argument shape for v1:patron.profile.
type ProfileArgs struct {
	PatronID string `json:"patronId" validate:"required"`
}

// PatronFines handles v1:patron.fines. Scoped to patron:billing, which
// the auth store strips from ordinary human tokens - this operation is
// reachable only by the subset of principals issued that scope.
func (c *Catalog) PatronFines(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*FinesArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for patron.fines", rawArgs)
	}

	c.mu.RLock()
	patron, found := c.patrons[args.PatronID]
	c.mu.RUnlock()

	if !found {
		return DomainError(envelope.New(envelope.CodePatronNotFound, "no patron with that id")), nil
	}
	return Result(map[string]any{"totalCents": patron.FineCents}), nil
}

// PatronProfile handles v1:patron.profile.
func (c *Catalog) PatronProfile(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*ProfileArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for patron.profile", rawArgs)
	}

	c.mu.RLock()
	patron, found := c.patrons[args.PatronID]
	c.mu.RUnlock()

	if !found {
		return DomainError(envelope.New(envelope.CodePatronNotFound, "no patron with that id")), nil
	}
	return Result(map[string]any{"avatarUri": patron.AvatarURI}), nil
}

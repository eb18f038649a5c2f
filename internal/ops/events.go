// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"
	"fmt"

	"github.com/tomtom215/call/internal/authn"
)

// EventsSubscribeArgs is the argument shape for v1:events.subscribe.
type EventsSubscribeArgs struct {
	Topics []string `json:"topics" validate:"omitempty,dive,oneof=checkout checkin overdue"`
}

// Subscribe handles v1:events.subscribe: requests a streaming upgrade.
// The handler only validates the requested topics and hands off to the
// dispatcher's stream seed path; the websocket handshake itself lives
// in the API layer.
func (c *Catalog) Subscribe(_ context.Context, rawArgs any, _ *authn.Principal) (Outcome, error) {
	args, ok := rawArgs.(*EventsSubscribeArgs)
	if !ok {
		return Outcome{}, fmt.Errorf("ops: unexpected args type %T for events.subscribe", rawArgs)
	}

	topics := args.Topics
	if len(topics) == 0 {
		topics = []string{"checkout", "checkin", "overdue"}
	}
	return Stream(topics), nil
}

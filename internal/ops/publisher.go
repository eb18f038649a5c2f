// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

// EventPublisher is the optional sink catalog handlers notify after a
// side-effecting change, so v1:events.subscribe streams have something
// real to carry. A nil publisher (the default) makes every Publish call
// a no-op; tests and callers that don't care about streaming never need
// to wire one up.
type EventPublisher interface {
	Publish(topic string, payload any)
}

// SetEventPublisher wires the catalog to an event publisher. Safe to
// call once during startup, before the catalog is exposed to handlers.
func (c *Catalog) SetEventPublisher(pub EventPublisher) {
	c.publisher = pub
}

func (c *Catalog) publish(topic string, payload any) {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(topic, payload)
}

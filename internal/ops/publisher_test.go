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

type recordingPublisher struct {
	topics []string
	events []any
}

func (p *recordingPublisher) Publish(topic string, payload any) {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, payload)
}

func TestCheckoutPublishesCheckoutEvent(t *testing.T) {
	c := NewDemoCatalog()
	pub := &recordingPublisher{}
	c.SetEventPublisher(pub)

	_, err := c.CheckoutItem(context.Background(), &CheckoutArgs{ItemID: "item-001", PatronID: "patron-001"}, nil)
	require.NoError(t, err)

	require.Len(t, pub.topics, 1)
	assert.Equal(t, "checkout", pub.topics[0])
}

func TestCheckinPublishesCheckinEvent(t *testing.T) {
	c := NewDemoCatalog()
	pub := &recordingPublisher{}
	c.SetEventPublisher(pub)

	_, err := c.CheckinItem(context.Background(), &CheckinArgs{ItemID: "item-004"}, nil)
	require.NoError(t, err)

	require.Len(t, pub.topics, 1)
	assert.Equal(t, "checkin", pub.topics[0])
}

func TestCatalogWithNoPublisherDoesNotPanic(t *testing.T) {
	c := NewDemoCatalog()
	assert.NotPanics(t, func() {
		_, _ = c.CheckinItem(context.Background(), &CheckinArgs{ItemID: "item-004"}, nil)
	})
}

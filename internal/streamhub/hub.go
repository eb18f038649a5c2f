// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package streamhub

import (
	"context"
	"sync"
	"time"
)

// pendingClaimTTL bounds how long a stream-seed claim stays redeemable
// before the websocket handshake that was supposed to follow it.
const pendingClaimTTL = 30 * time.Second

// Message is one topic-scoped event fanned out to subscribed clients.
type Message struct {
	Topic string `json:"topic"`
	Data  any    `json:"data"`
}

type pendingClaim struct {
	topics    []string
	expiresAt time.Time
}

// Hub owns the set of connected streaming clients and the topic-scoped
// broadcast loop. It is built once at process start and added to the
// supervisor tree alongside the worker pool.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message

	pendingMu sync.Mutex
	pending   map[string]pendingClaim

	clientsMu sync.Mutex
	clients   map[*Client]struct{}
}

// NewHub builds an idle Hub. Call Serve to run its event loop.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 64),
		pending:    make(map[string]pendingClaim),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterPending records that requestID's stream-seed handshake is
// allowed to claim the given topics, for pendingClaimTTL.
func (h *Hub) RegisterPending(requestID string, topics []string) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	h.pending[requestID] = pendingClaim{topics: topics, expiresAt: time.Now().Add(pendingClaimTTL)}
}

// Claim redeems requestID's pending topics exactly once. A second call
// for the same requestID, or a call after pendingClaimTTL has elapsed,
// reports ok=false.
func (h *Hub) Claim(requestID string) (topics []string, ok bool) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()

	claim, found := h.pending[requestID]
	delete(h.pending, requestID)
	if !found || time.Now().After(claim.expiresAt) {
		return nil, false
	}
	return claim.topics, true
}

// Publish fans payload out to every connected client subscribed to
// topic. It satisfies ops.EventPublisher.
func (h *Hub) Publish(topic string, payload any) {
	select {
	case h.broadcast <- Message{Topic: topic, Data: payload}:
	default:
		// Slow consumer of the broadcast channel itself; drop rather
		// than block a catalog handler on streaming fan-out.
	}
}

// Serve runs the hub's register/unregister/broadcast loop until ctx is
// canceled. It satisfies suture.Service, letting the supervisor tree
// restart the hub the same way it restarts the worker pool.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()

		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = struct{}{}
			h.clientsMu.Unlock()

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientsMu.Unlock()

		case msg := <-h.broadcast:
			h.clientsMu.Lock()
			for c := range h.clients {
				if !c.wantsTopic(msg.Topic) {
					continue
				}
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.clientsMu.Unlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// ClientCount reports the number of currently connected streaming
// clients, for the process's diagnostic surface.
func (h *Hub) ClientCount() int {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	return len(h.clients)
}

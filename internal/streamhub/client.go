// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package streamhub

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/call/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 32 * 1024
)

var clientIDCounter atomic.Uint64

// Client is a middleman between one streaming websocket connection and
// the Hub's broadcast loop.
type Client struct {
	id     uint64
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	topics map[string]struct{}
}

// NewClient wraps an already-upgraded websocket connection, scoped to
// the topics its stream-seed claim named.
func NewClient(hub *Hub, conn *websocket.Conn, topics []string) *Client {
	topicSet := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		topicSet[t] = struct{}{}
	}
	return &Client{
		id:     clientIDCounter.Add(1),
		hub:    hub,
		conn:   conn,
		send:   make(chan Message, 64),
		topics: topicSet,
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

func (c *Client) wantsTopic(topic string) bool {
	_, ok := c.topics[topic]
	return ok
}

// Start registers the client with the hub and launches its read and
// write pumps. It returns immediately; the pumps run until the
// connection closes.
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so control frames (ping/pong, close)
// are processed; CALL's streaming protocol is server-to-client only, so
// any data frame the client sends is discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("streamhub: failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn().Err(err).Msg("streamhub: unexpected websocket close")
			}
			return
		}
	}
}

// writePump delivers broadcast messages to the client and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/logging"
	"github.com/tomtom215/call/internal/streamhub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin:      func(*http.Request) bool { return true },
}

// HandleStream redeems a {state:streaming} envelope's Location: it
// claims the topics the originating v1:events.subscribe call seeded,
// upgrades to a websocket, and hands the connection to the hub. A
// requestId with no pending claim - never issued, already redeemed, or
// expired - gets HTTP 404 with a STREAM_NOT_FOUND error body rather than
// a bare 404, since this is still a CALL-protocol surface.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")

	if h.streams == nil {
		writeCallError(w, http.StatusNotFound, envelope.New("STREAM_NOT_FOUND", "streaming is not enabled"))
		return
	}

	topics, ok := h.streams.Claim(requestID)
	if !ok {
		writeCallError(w, http.StatusNotFound, envelope.New("STREAM_NOT_FOUND", "no pending stream for that requestId"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Str("requestId", requestID).Msg("streamhub: websocket upgrade failed")
		return
	}

	client := streamhub.NewClient(h.streams, conn, topics)
	client.Start()
}

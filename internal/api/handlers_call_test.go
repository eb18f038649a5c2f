// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutRequiresItemsWriteNotCheckinScope(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/call",
		strBody(`{"op":"v1:items.checkout","args":{"itemId":"item-001","patronId":"patron-001"}}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", h.issueHuman(t, []string{"items:checkin"}))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCheckinRequiresItemsCheckinNotWriteScope(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/call",
		strBody(`{"op":"v1:items.checkin","args":{"itemId":"item-004"}}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", h.issueHuman(t, []string{"items:write"}))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCheckinWithCorrectScopeSucceeds(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/call",
		strBody(`{"op":"v1:items.checkin","args":{"itemId":"item-004"}}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", h.issueHuman(t, []string{"items:checkin"}))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEventsSubscribeStreamsCheckinNotification(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/call",
		strBody(`{"op":"v1:events.subscribe","args":{"topics":["checkin"]}}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", h.issueHuman(t, []string{"items:browse"}))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body struct {
		RequestID string `json:"requestId"`
		Stream    struct {
			Location string `json:"location"`
		} `json:"stream"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	require.Equal(t, "/ops/stream/"+body.RequestID, body.Stream.Location)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + body.Stream.Location
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	checkinReq, err := http.NewRequest(http.MethodPost, srv.URL+"/call",
		strBody(`{"op":"v1:items.checkin","args":{"itemId":"item-004"}}`))
	require.NoError(t, err)
	checkinReq.Header.Set("Authorization", h.issueHuman(t, []string{"items:checkin"}))
	checkinResp, err := http.DefaultClient.Do(checkinReq)
	require.NoError(t, err)
	checkinResp.Body.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Topic string `json:"topic"`
		Data  struct {
			ItemID string `json:"itemId"`
		} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "checkin", msg.Topic)
	assert.Equal(t, "item-004", msg.Data.ItemID)
}

func TestStreamOfUnclaimedRequestIsNotFound(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ops/stream/never-claimed")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportGenerateCompletesAndChunksAreReadable(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/call", strBody(`{"op":"v1:report.generate","args":{}}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", h.issueHuman(t, []string{"items:read"}))

	accepted, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var acceptedBody struct {
		RequestID string `json:"requestId"`
		Location  struct {
			URI string `json:"uri"`
		} `json:"location"`
	}
	require.NoError(t, json.NewDecoder(accepted.Body).Decode(&acceptedBody))
	accepted.Body.Close()
	require.NotEmpty(t, acceptedBody.RequestID)

	var pollStatus int
	var pollBody struct {
		State string `json:"state"`
	}
	for i := 0; i < 20; i++ {
		time.Sleep(20 * time.Millisecond)
		pollResp, err := http.Get(srv.URL + "/ops/" + acceptedBody.RequestID)
		require.NoError(t, err)
		pollStatus = pollResp.StatusCode
		if pollStatus == http.StatusOK {
			require.NoError(t, json.NewDecoder(pollResp.Body).Decode(&pollBody))
			pollResp.Body.Close()
			break
		}
		pollResp.Body.Close()
	}
	require.Equal(t, "complete", pollBody.State)

	chunkResp, err := http.Get(srv.URL + "/ops/" + acceptedBody.RequestID + "/chunks")
	require.NoError(t, err)
	defer chunkResp.Body.Close()
	assert.Equal(t, http.StatusOK, chunkResp.StatusCode)

	var chunk struct {
		Offset   int    `json:"offset"`
		Data     string `json:"data"`
		Checksum string `json:"checksum"`
		State    string `json:"state"`
	}
	require.NoError(t, json.NewDecoder(chunkResp.Body).Decode(&chunk))
	assert.Equal(t, 0, chunk.Offset)
	assert.NotEmpty(t, chunk.Checksum)
}

func TestChunkOfUnknownRequestIsNotFound(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ops/nope/chunks")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

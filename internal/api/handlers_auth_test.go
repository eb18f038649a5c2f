// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAgentWithUnknownCardIsNotFound(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/auth/agent", "application/json", strBody(`{"cardNumber":"ZZZZ-0000-00"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIssueAgentWithMalformedCardIsBadRequest(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/auth/agent", "application/json", strBody(`{"cardNumber":"not-a-card"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIssueAgentForSeededPatronSucceeds(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	srv := httptest.NewServer(h.router.SetupChi())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/auth/agent", "application/json", strBody(`{"cardNumber":"ABCD-1234-56"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

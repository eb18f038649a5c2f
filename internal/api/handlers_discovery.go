// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"strconv"
)

// HandleDiscovery serves GET /.well-known/ops: the registry's discovery
// document, with ETag/If-None-Match support so a client that already
// holds the current descriptor table gets a 304 and no body.
//
// @Summary Operation discovery document
// @Description Returns the full operation descriptor table (schemas, scopes, execution model) for every registered operation
// @Tags discovery
// @Produce json
// @Success 200 {object} object
// @Success 304 "Not Modified"
// @Router /.well-known/ops [get]
func (h *Handler) HandleDiscovery(w http.ResponseWriter, r *http.Request) {
	body, etag := h.registry.Document()

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(h.discoveryMaxAgeSecs))

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

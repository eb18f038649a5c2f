// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import "net/http"

// HandleCall is the single entry point for the CALL protocol: every
// operation, sync or async, flows through the dispatcher's eight-step
// pipeline and comes back as one envelope.Response.
//
// @Summary Dispatch a CALL operation
// @Description Decodes an envelope, routes it to the named operation, and returns the matching state:complete/error/accepted/streaming envelope
// @Tags call
// @Accept json
// @Produce json
// @Param request body envelope.Request true "CALL request envelope"
// @Success 200 {object} envelope.Response
// @Success 202 {object} envelope.Response
// @Failure 400 {object} envelope.Response
// @Failure 401 {object} envelope.Response
// @Router /call [post]
func (h *Handler) HandleCall(w http.ResponseWriter, r *http.Request) {
	body := readBody(r)
	resp := h.dispatcher.Dispatch(r.Context(), body, r.Header.Get("Authorization"))
	writeDispatchResponse(w, resp)
}

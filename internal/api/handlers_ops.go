// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/call/internal/asyncstore"
	"github.com/tomtom215/call/internal/envelope"
)

// HandlePollStatus serves GET /ops/{requestId}: the current snapshot of
// an async instance, rate-limited to at most one allowed poll per the
// store's configured interval.
//
// @Summary Poll an async operation
// @Description Returns the current state of a previously accepted async operation
// @Tags ops
// @Produce json
// @Param requestId path string true "Request ID returned by the original accepted envelope"
// @Success 200 {object} envelope.Response
// @Success 202 {object} envelope.Response
// @Failure 404 {object} envelope.Response
// @Failure 429 {object} envelope.Response
// @Router /ops/{requestId} [get]
func (h *Handler) HandlePollStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")

	instance, err := h.async.Lookup(requestID)
	if err != nil {
		writeNotFound(w, requestID)
		return
	}

	if allowed, retryAfterMs := instance.AllowPoll(time.Now()); !allowed {
		writeEnvelope(w, http.StatusTooManyRequests,
			rateLimitedResponse(requestID, retryAfterMs))
		return
	}

	writeDispatchResponse(w, snapshotToResponse(instance.Snapshot()))
}

// HandleChunk serves GET /ops/{requestId}/chunks: one chunk of a
// completed instance's result, selected by the optional ?cursor=
// query parameter (the head chunk when absent). The chunk fields are
// flattened to the top level of the response body, per spec.md §6's
// "implementers MUST pick one and document it".
//
// @Summary Fetch a chunked result page
// @Description Returns one checksum-chained chunk of a completed async operation's result
// @Tags ops
// @Produce json
// @Param requestId path string true "Request ID"
// @Param cursor query string false "Opaque cursor from a previous chunk, omitted for the first chunk"
// @Success 200 {object} asyncstore.Chunk
// @Failure 400 {object} envelope.CallError
// @Failure 404 {object} envelope.CallError
// @Router /ops/{requestId}/chunks [get]
func (h *Handler) HandleChunk(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	cursor := r.URL.Query().Get("cursor")

	instance, err := h.async.Lookup(requestID)
	if err != nil {
		writeNotFound(w, requestID)
		return
	}

	if allowed, retryAfterMs := instance.AllowPoll(time.Now()); !allowed {
		writeEnvelope(w, http.StatusTooManyRequests,
			rateLimitedResponse(requestID, retryAfterMs))
		return
	}

	chunk, found, err := h.async.Chunks(instance, cursor)
	if err != nil {
		writeCallError(w, http.StatusBadRequest,
			envelope.New(envelope.CodeInternalError, err.Error()))
		return
	}
	if !found {
		writeCallError(w, http.StatusBadRequest,
			envelope.New(envelope.CodeInternalError, "cursor does not match any chunk"))
		return
	}

	writeJSON(w, http.StatusOK, chunk)
}

func writeNotFound(w http.ResponseWriter, requestID string) {
	writeCallError(w, http.StatusNotFound,
		envelope.New(envelope.CodeOperationNotFound, "no such requestId: "+requestID))
}

func rateLimitedResponse(requestID string, retryAfterMs int64) *envelope.Response {
	resp := envelope.Failed(requestID, "", envelope.New(envelope.CodeRateLimited, "poll interval not yet elapsed"))
	resp.RetryAfterMs = retryAfterMs
	return resp
}

// snapshotToResponse shapes an asyncstore.Snapshot into the same
// envelope.Response the dispatcher would have produced, so polling and
// the original POST /call share one status-mapping code path.
func snapshotToResponse(snap asyncstore.Snapshot) *envelope.Response {
	switch snap.State {
	case asyncstore.Accepted, asyncstore.Pending:
		return envelope.Accepted(snap.RequestID, "", "/ops/"+snap.RequestID, snap.RetryAfterMs)
	case asyncstore.Error:
		return envelope.Failed(snap.RequestID, "", snap.Error)
	default:
		return envelope.Complete(snap.RequestID, "", snap.Result)
	}
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/logging"
)

// statusForError maps a CallError's closed taxonomy code to the HTTP
// status that carries it, per spec.md §7's propagation policy:
// transport-level errors ride on their own 4xx, domain errors ride on
// 200 (the protocol did not fail, the handler did), infrastructure
// failures ride on 5xx.
func statusForError(code string) int {
	switch code {
	case envelope.CodeInvalidEnvelope, envelope.CodeUnknownOperation, envelope.CodeSchemaValidation,
		envelope.CodeIdempotencyRequired:
		return http.StatusBadRequest
	case envelope.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case envelope.CodeAuthRequired:
		return http.StatusUnauthorized
	case envelope.CodeInsufficientScopes:
		return http.StatusForbidden
	case envelope.CodeOpRemoved:
		return http.StatusGone
	case envelope.CodeOperationNotFound:
		return http.StatusNotFound
	case envelope.CodeRateLimited:
		return http.StatusTooManyRequests
	case envelope.CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// statusForResponse picks the transport status for a dispatch outcome:
// 200 for a sync completion, 303 for a media redirect riding inside a
// complete envelope, 202 for an accepted or streaming upgrade, and the
// error-code-specific status otherwise.
func statusForResponse(resp *envelope.Response) int {
	switch resp.State {
	case envelope.StateComplete:
		if resp.Location != nil {
			return http.StatusSeeOther
		}
		return http.StatusOK
	case envelope.StateAccepted, envelope.StateStreaming:
		return http.StatusAccepted
	case envelope.StateError:
		return statusForError(resp.Error.Code)
	default:
		return http.StatusOK
	}
}

// writeEnvelope marshals resp and writes it at status, logging (never
// panicking on) marshal or write failures the way the teacher's
// respondJSON does.
func writeEnvelope(w http.ResponseWriter, status int, resp *envelope.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		logging.Error().Err(err).Str("requestId", resp.RequestID).Msg("failed to marshal envelope response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Str("requestId", resp.RequestID).Msg("failed to write envelope response")
	}
}

// writeDispatchResponse picks the transport status for resp and writes
// it. This is the only place a dispatcher outcome becomes an HTTP
// response.
func writeDispatchResponse(w http.ResponseWriter, resp *envelope.Response) {
	status := statusForResponse(resp)
	if resp.State == envelope.StateAccepted {
		w.Header().Set("Retry-After", strconv.FormatInt(resp.RetryAfterMs/1000+1, 10))
	}
	if status == http.StatusSeeOther && resp.Location != nil {
		w.Header().Set("Location", resp.Location.URI)
	}
	writeEnvelope(w, status, resp)
}

// writeJSON marshals any payload and writes it as a plain JSON body,
// used for the POST /auth family whose response shape predates the
// envelope (token issuance is not a CALL operation).
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal response payload")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("failed to write response payload")
	}
}

// writeCallError writes a bare CallError at status, for failures that
// happen before a requestId exists (malformed auth payloads, etc).
func writeCallError(w http.ResponseWriter, status int, callErr *envelope.CallError) {
	writeJSON(w, status, callErr)
}

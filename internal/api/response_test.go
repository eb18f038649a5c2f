// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomtom215/call/internal/envelope"
)

func TestStatusForErrorMapsTransportCodesExplicitly(t *testing.T) {
	cases := map[string]int{
		envelope.CodeInvalidEnvelope:     http.StatusBadRequest,
		envelope.CodeUnknownOperation:    http.StatusBadRequest,
		envelope.CodeSchemaValidation:    http.StatusBadRequest,
		envelope.CodeIdempotencyRequired: http.StatusBadRequest,
		envelope.CodeMethodNotAllowed:    http.StatusMethodNotAllowed,
		envelope.CodeAuthRequired:        http.StatusUnauthorized,
		envelope.CodeInsufficientScopes:  http.StatusForbidden,
		envelope.CodeOpRemoved:           http.StatusGone,
		envelope.CodeOperationNotFound:   http.StatusNotFound,
		envelope.CodeRateLimited:         http.StatusTooManyRequests,
		envelope.CodeInternalError:       http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, statusForError(code), "code %s", code)
	}
}

func TestStatusForErrorDefaultsUnrecognizedCodesToDomainOK(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusForError(envelope.CodePatronNotFound))
	assert.Equal(t, http.StatusOK, statusForError(envelope.CodeOverdueItemsExist))
	assert.Equal(t, http.StatusOK, statusForError("SOME_FUTURE_DOMAIN_CODE"))
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"io"
	"net/http"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/logging"
	"github.com/tomtom215/call/internal/validation"
)

// issueHumanRequest is the body of POST /auth. Username is optional: an
// empty value mints a fresh handle, matching authn.Store.IssueHuman.
type issueHumanRequest struct {
	Username string   `json:"username"`
	Scopes   []string `json:"scopes"`
}

// issueAgentRequest is the body of POST /auth/agent.
type issueAgentRequest struct {
	CardNumber string `json:"cardNumber" validate:"required"`
}

// HandleIssueHuman issues a human bearer token for the requesting
// patron, filtering any scope the policy never grants to a human.
//
// @Summary Issue a human bearer token
// @Description Mints a token for a human caller, stripping any requested scope humans are never granted
// @Tags auth
// @Accept json
// @Produce json
// @Param request body issueHumanRequest true "Username and requested scopes"
// @Success 200 {object} authn.IssuedHuman
// @Router /auth [post]
func (h *Handler) HandleIssueHuman(w http.ResponseWriter, r *http.Request) {
	var req issueHumanRequest
	if callErr := validation.DecodeStrict(readBody(r), &req); callErr != nil {
		writeCallError(w, http.StatusBadRequest, callErr)
		return
	}

	issued, callErr := h.auth.IssueHuman(req.Username, req.Scopes)
	if callErr != nil {
		writeCallError(w, http.StatusInternalServerError, callErr)
		return
	}
	writeJSON(w, http.StatusOK, issued)
}

// HandleIssueAgent issues an agent bearer token bound to an existing
// patron's card number.
//
// @Summary Issue an agent bearer token
// @Description Mints a fixed-scope token bound to the patron owning cardNumber
// @Tags auth
// @Accept json
// @Produce json
// @Param request body issueAgentRequest true "Patron card number"
// @Success 200 {object} authn.IssuedAgent
// @Failure 404 {object} envelope.CallError
// @Router /auth/agent [post]
func (h *Handler) HandleIssueAgent(w http.ResponseWriter, r *http.Request) {
	var req issueAgentRequest
	if callErr := validation.ValidateArgs(readBody(r), &req); callErr != nil {
		writeCallError(w, http.StatusBadRequest, callErr)
		return
	}

	issued, callErr := h.auth.IssueAgent(req.CardNumber)
	if callErr != nil {
		status := http.StatusBadRequest
		if callErr.Code == envelope.CodePatronNotFound {
			status = http.StatusNotFound
		}
		writeCallError(w, status, callErr)
		return
	}
	writeJSON(w, http.StatusOK, issued)
}

// readBody drains r.Body, logging but not failing on a read error - an
// empty body is handled the same way downstream as a read failure,
// since DecodeStrict/ValidateArgs both treat empty input as "{}".
func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	defer func() { _ = r.Body.Close() }()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logging.Warn().Err(err).Msg("error reading request body")
	}
	return body
}

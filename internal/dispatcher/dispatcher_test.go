// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/call/internal/asyncstore"
	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/ops"
	"github.com/tomtom215/call/internal/registry"
	"github.com/tomtom215/call/internal/streamhub"
	"github.com/tomtom215/call/internal/worker"
)

type harness struct {
	dispatcher *Dispatcher
	auth       *authn.Store
	catalog    *ops.Catalog
	cancel     context.CancelFunc
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	reg, err := registry.New(registry.Seed())
	require.NoError(t, err)

	catalog := ops.NewDemoCatalog()
	entries := ops.Catalogue(catalog)

	authStore, err := authn.NewStore("test-secret-at-least-32-bytes-long!", time.Hour)
	require.NoError(t, err)
	authStore.SeedPatron("alice", "ABCD-1234-56")

	idem, err := asyncstore.NewIdempotencyCache(64)
	require.NoError(t, err)

	asyncStore := asyncstore.New(time.Millisecond)
	pool := worker.New(asyncStore, 8)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = pool.Serve(ctx) }()

	d := New(reg, entries, authStore, idem, asyncStore, pool, streamhub.NewHub())
	return &harness{dispatcher: d, auth: authStore, catalog: catalog, cancel: cancel}
}

func (h *harness) issueHuman(t *testing.T, scopes []string) string {
	t.Helper()
	issued, callErr := h.auth.IssueHuman("alice", scopes)
	require.Nil(t, callErr)
	return "Bearer " + issued.Token
}

func TestDispatchMalformedEnvelopeIsInvalid(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	resp := h.dispatcher.Dispatch(context.Background(), []byte("not json"), "")
	assert.Equal(t, envelope.StateError, resp.State)
	assert.Equal(t, envelope.CodeInvalidEnvelope, resp.Error.Code)
}

func TestDispatchUnknownOperation(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:nope","args":{}}`), token)
	assert.Equal(t, envelope.CodeUnknownOperation, resp.Error.Code)
}

func TestDispatchMissingAuthHeader(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:catalog.list","args":{}}`), "")
	assert.Equal(t, envelope.CodeAuthRequired, resp.Error.Code)
}

func TestDispatchInsufficientScopes(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"patron:read"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:catalog.list","args":{}}`), token)
	assert.Equal(t, envelope.CodeInsufficientScopes, resp.Error.Code)
}

func TestDispatchSyncSuccess(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:catalog.list","args":{}}`), token)
	assert.Equal(t, envelope.StateComplete, resp.State)
	assert.NotNil(t, resp.Result)
}

func TestDispatchEchoesValidSuppliedRequestID(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	supplied := "11111111-1111-4111-8111-111111111111"
	resp := h.dispatcher.Dispatch(context.Background(),
		[]byte(`{"op":"v1:catalog.list","args":{},"ctx":{"requestId":"`+supplied+`"}}`), token)
	assert.Equal(t, supplied, resp.RequestID)
}

func TestDispatchReplacesNonUUIDRequestID(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	resp := h.dispatcher.Dispatch(context.Background(),
		[]byte(`{"op":"v1:catalog.list","args":{},"ctx":{"requestId":"not-a-uuid"}}`), token)
	assert.NotEqual(t, "not-a-uuid", resp.RequestID)
	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
}

func TestDispatchSchemaValidationFailureOnUnknownField(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:catalog.get","args":{"itemId":"item-001","bogus":1}}`), token)
	assert.Equal(t, envelope.CodeSchemaValidation, resp.Error.Code)
}

func TestDispatchDeprecatedButNotSunsetStillExecutes(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:catalog.legacySearch","args":{"query":"go"}}`), token)
	assert.Equal(t, envelope.StateComplete, resp.State)
}

func TestDispatchIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:write"})
	resp := h.dispatcher.Dispatch(context.Background(),
		[]byte(`{"op":"v1:items.checkout","args":{"itemId":"item-001","patronId":"patron-001"}}`), token)
	assert.Equal(t, envelope.CodeIdempotencyRequired, resp.Error.Code)
}

func TestDispatchIdempotencyReplaysCachedTerminalResponse(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:write"})
	body := []byte(`{"op":"v1:items.checkout","args":{"itemId":"item-001","patronId":"patron-001"},"ctx":{"idempotencyKey":"abc-123"}}`)

	first := h.dispatcher.Dispatch(context.Background(), body, token)
	require.Equal(t, envelope.StateComplete, first.State)

	second := h.dispatcher.Dispatch(context.Background(), body, token)
	assert.Equal(t, first.Result, second.Result)
}

func TestDispatchAsyncSeedReturnsAccepted(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:read"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:report.generate","args":{}}`), token)
	require.Equal(t, envelope.StateAccepted, resp.State)
	assert.NotEmpty(t, resp.Location.URI)
}

func TestDispatchStreamSeedReturnsStreaming(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:browse"})
	resp := h.dispatcher.Dispatch(context.Background(), []byte(`{"op":"v1:events.subscribe","args":{}}`), token)
	require.Equal(t, envelope.StateStreaming, resp.State)
	assert.Equal(t, "websocket", resp.Stream.Transport)
}

func TestDispatchKeyedCheckoutOfUnknownItemReturnsDomainError(t *testing.T) {
	h := newHarness(t)
	defer h.cancel()

	token := h.issueHuman(t, []string{"items:write"})
	resp := h.dispatcher.Dispatch(context.Background(),
		[]byte(`{"op":"v1:items.checkout","args":{"itemId":"does-not-exist","patronId":"patron-001"},"ctx":{"idempotencyKey":"k1"}}`), token)
	assert.Equal(t, envelope.StateError, resp.State)
	assert.Equal(t, "ITEM_NOT_FOUND", resp.Error.Code)
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/call/internal/envelope"
)

func TestPatronFinesKnownPatron(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.PatronFines(context.Background(), &FinesArgs{PatronID: "patron-002"}, nil)
	require.NoError(t, err)
	require.Equal(t, KindResult, outcome.Kind)
	assert.Equal(t, 250, outcome.Result.(map[string]any)["totalCents"])
}

func TestPatronFinesUnknownPatron(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.PatronFines(context.Background(), &FinesArgs{PatronID: "ghost"}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindDomainError, outcome.Kind)
	assert.Equal(t, envelope.CodePatronNotFound, outcome.Error.Code)
}

func TestPatronProfileKnownPatron(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.PatronProfile(context.Background(), &ProfileArgs{PatronID: "patron-001"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Result.(map[string]any)["avatarUri"])
}

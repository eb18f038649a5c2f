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

func TestGenerateReportIsAsyncAndContinuationProducesRows(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.GenerateReport(context.Background(), &ReportGenerateArgs{}, nil)
	require.NoError(t, err)
	require.Equal(t, KindAsyncSeed, outcome.Kind)
	require.NotNil(t, outcome.Continuation)

	result, callErr := outcome.Continuation()
	require.Nil(t, callErr)

	body := result.(map[string]any)
	assert.Equal(t, "json", body["format"])
	rows := body["rows"].([]map[string]any)
	assert.Len(t, rows, 5)
}

func TestGenerateOverdueReportUnknownPatronFailsInContinuation(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.GenerateOverdueReport(context.Background(), &ReportOverdueArgs{PatronID: "ghost"}, nil)
	require.NoError(t, err)
	require.Equal(t, KindAsyncSeed, outcome.Kind)

	_, callErr := outcome.Continuation()
	require.NotNil(t, callErr)
	assert.Equal(t, envelope.CodePatronNotFound, callErr.Code)
}

func TestGenerateOverdueReportPatronWithNoOverdueItemsCompletes(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.GenerateOverdueReport(context.Background(), &ReportOverdueArgs{PatronID: "patron-001"}, nil)
	require.NoError(t, err)

	result, callErr := outcome.Continuation()
	require.Nil(t, callErr)

	body := result.(map[string]any)
	assert.Equal(t, []string{}, body["overdueItemIds"])
}

func TestGenerateOverdueReportPatronWithOverdueItemsFailsWithOverdueItemsExist(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.GenerateOverdueReport(context.Background(), &ReportOverdueArgs{PatronID: "patron-002"}, nil)
	require.NoError(t, err)

	_, callErr := outcome.Continuation()
	require.NotNil(t, callErr)
	assert.Equal(t, envelope.CodeOverdueItemsExist, callErr.Code)
	assert.Equal(t, []string{"item-004"}, callErr.Cause["itemIds"])
}

func TestSubscribeDefaultsTopics(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.Subscribe(context.Background(), &EventsSubscribeArgs{}, nil)
	require.NoError(t, err)
	require.Equal(t, KindStreamSeed, outcome.Kind)
	assert.ElementsMatch(t, []string{"checkout", "checkin", "overdue"}, outcome.StreamTopics)
}

func TestSubscribeHonorsRequestedTopics(t *testing.T) {
	c := NewDemoCatalog()

	outcome, err := c.Subscribe(context.Background(), &EventsSubscribeArgs{Topics: []string{"overdue"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue"}, outcome.StreamTopics)
}

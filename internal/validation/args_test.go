// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listArgs struct {
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
	Cursor string `json:"cursor" validate:"omitempty"`
}

func TestValidateArgsRejectsUnknownFields(t *testing.T) {
	var args listArgs
	callErr := ValidateArgs([]byte(`{"limit":10,"bogus":"x"}`), &args)
	require.NotNil(t, callErr)
	assert.Equal(t, "SCHEMA_VALIDATION_FAILED", callErr.Code)
}

func TestValidateArgsDoesNotCoerceStringsToNumbers(t *testing.T) {
	var args listArgs
	callErr := ValidateArgs([]byte(`{"limit":"10"}`), &args)
	require.NotNil(t, callErr)
	assert.Equal(t, "SCHEMA_VALIDATION_FAILED", callErr.Code)
}

func TestValidateArgsEnforcesRange(t *testing.T) {
	var args listArgs
	callErr := ValidateArgs([]byte(`{"limit":1000}`), &args)
	require.NotNil(t, callErr)
	assert.Equal(t, "SCHEMA_VALIDATION_FAILED", callErr.Code)
}

func TestValidateArgsAcceptsValidPayload(t *testing.T) {
	var args listArgs
	callErr := ValidateArgs([]byte(`{"limit":10,"offset":0}`), &args)
	assert.Nil(t, callErr)
	assert.Equal(t, 10, args.Limit)
}

func TestValidateArgsAcceptsEmptyBody(t *testing.T) {
	var args listArgs
	callErr := ValidateArgs(nil, &args)
	assert.Nil(t, callErr)
}

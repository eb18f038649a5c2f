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

type singleFieldArgs struct {
	ItemID string `validate:"required"`
}

type multiFieldArgs struct {
	ItemID   string `validate:"required"`
	PatronID string `validate:"required"`
}

func TestMessageOnSingleFieldFailureIsTheFieldMessage(t *testing.T) {
	err := ValidateStruct(&singleFieldArgs{})
	require.NotNil(t, err)
	assert.Equal(t, "ItemID is required", err.Message())
}

func TestMessageOnMultipleFieldFailuresListsEachField(t *testing.T) {
	err := ValidateStruct(&multiFieldArgs{})
	require.NotNil(t, err)
	assert.Contains(t, err.Message(), "ItemID")
	assert.Contains(t, err.Message(), "PatronID")
}

func TestMessageOnNoFailuresIsGenericFallback(t *testing.T) {
	ve := &RequestValidationError{}
	assert.Equal(t, "validation failed", ve.Message())
}

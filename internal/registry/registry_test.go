// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsStableDocument(t *testing.T) {
	reg, err := New(Seed())
	require.NoError(t, err)

	body1, etag1 := reg.Document()
	body2, etag2 := reg.Document()

	assert.Equal(t, etag1, etag2)
	assert.Equal(t, body1, body2)
	assert.Contains(t, string(body1), "callVersion")
}

func TestLookupIsCaseSensitiveAndExact(t *testing.T) {
	reg, err := New(Seed())
	require.NoError(t, err)

	d, ok := reg.Lookup("v1:catalog.list")
	require.True(t, ok)
	assert.Equal(t, Sync, d.ExecutionModel)

	_, ok = reg.Lookup("V1:CATALOG.LIST")
	assert.False(t, ok)

	_, ok = reg.Lookup("v1:fake.op")
	assert.False(t, ok)
}

func TestSunsetPassed(t *testing.T) {
	past := Descriptor{Deprecated: true, Sunset: "2000-01-01"}
	future := Descriptor{Deprecated: true, Sunset: "2999-01-01"}
	noSunset := Descriptor{Deprecated: true}
	notDeprecated := Descriptor{Sunset: "2000-01-01"}

	now := time.Now()
	assert.True(t, past.SunsetPassed(now))
	assert.False(t, future.SunsetPassed(now))
	assert.False(t, noSunset.SunsetPassed(now))
	assert.False(t, notDeprecated.SunsetPassed(now))
}

func TestSeedDescriptorsHaveDistinctOps(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Seed() {
		assert.False(t, seen[d.Op], "duplicate op %s", d.Op)
		seen[d.Op] = true
		assert.NotEmpty(t, d.AuthScopes)
	}
}

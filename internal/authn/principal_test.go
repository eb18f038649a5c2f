// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package authn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasScopesReturnsMissingSorted(t *testing.T) {
	p := &Principal{Scopes: scopeSet([]string{"items:read"})}

	ok, missing := p.HasScopes([]string{"patron:billing", "items:manage", "items:checkin"})

	assert.False(t, ok)
	assert.Equal(t, []string{"items:checkin", "items:manage", "patron:billing"}, missing)
}

func TestHasScopesAllPresentIsOKWithNoMissing(t *testing.T) {
	p := &Principal{Scopes: scopeSet([]string{"items:read", "items:write"})}

	ok, missing := p.HasScopes([]string{"items:write", "items:read"})

	assert.True(t, ok)
	assert.Empty(t, missing)
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package authn issues and resolves bearer-token principals for the CALL
// protocol: human tokens (scope-filtered, adjective-animal handles) and
// agent tokens (fixed scope set, bound to a patron subject).
package authn

import (
	"sort"
	"time"
)

// Kind distinguishes the two token issuance paths.
type Kind string

const (
	Human Kind = "human"
	Agent Kind = "agent"
)

// Principal is the authenticated party bound to a resolved token. It is
// immutable after issuance: scopes never grow over its lifetime.
type Principal struct {
	Token     string
	Kind      Kind
	Subject   string
	Scopes    map[string]struct{}
	ExpiresAt int64
}

// HasScopes reports whether required is a subset of the principal's
// scopes. Comparison is exact string match; there is no wildcard
// semantics. missing is sorted so cause.missing is stable on the wire
// regardless of the descriptor's declared scope order.
func (p *Principal) HasScopes(required []string) (ok bool, missing []string) {
	for _, s := range required {
		if _, present := p.Scopes[s]; !present {
			missing = append(missing, s)
		}
	}
	sort.Strings(missing)
	return len(missing) == 0, missing
}

// Expired reports whether the principal's token has passed its expiry as
// of now.
func (p *Principal) Expired(now time.Time) bool {
	return now.Unix() > p.ExpiresAt
}

func scopeSet(scopes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return set
}

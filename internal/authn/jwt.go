// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package authn

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Wire prefixes distinguishing token kinds, per spec.md §6. The prefix is
// a literal string concatenated in front of a signed JWT; it is not part
// of the JWT itself.
const (
	humanPrefix = "demo_"
	agentPrefix = "agent_"
)

// claims is the custom claim set carried inside the signed JWT.
type claims struct {
	Kind    Kind     `json:"kind"`
	Subject string   `json:"subject"`
	Scopes  []string `json:"scopes"`
	jwt.RegisteredClaims
}

// tokenManager signs and verifies the JWTs wrapped by the wire prefix.
// Modeled on the teacher's auth.JWTManager (internal/auth/jwt.go),
// adapted to carry scopes instead of a single role string.
type tokenManager struct {
	secret []byte
}

func newTokenManager(secret string) (*tokenManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("authn: JWT secret must be at least 32 characters")
	}
	return &tokenManager{secret: []byte(secret)}, nil
}

func (m *tokenManager) issue(kind Kind, subject string, scopes []string, ttl time.Duration) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	c := claims{
		Kind:    kind,
		Subject: subject,
		Scopes:  scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("authn: sign token: %w", err)
	}

	prefix := humanPrefix
	if kind == Agent {
		prefix = agentPrefix
	}
	return prefix + signed, expiresAt.Unix(), nil
}

// resolve strips the wire prefix and validates the embedded JWT,
// returning a Principal. Unknown prefixes, bad signatures, and expired
// tokens all resolve as an error (the caller treats any error as
// "absent", per spec.md §4.2).
func (m *tokenManager) resolve(wireToken string) (*Principal, error) {
	var kind Kind
	var raw string

	switch {
	case strings.HasPrefix(wireToken, humanPrefix):
		kind = Human
		raw = strings.TrimPrefix(wireToken, humanPrefix)
	case strings.HasPrefix(wireToken, agentPrefix):
		kind = Agent
		raw = strings.TrimPrefix(wireToken, agentPrefix)
	default:
		return nil, errors.New("authn: unrecognized token prefix")
	}

	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("authn: unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("authn: invalid token: %w", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Kind != kind {
		return nil, errors.New("authn: token claims mismatch")
	}

	expiresAt := int64(0)
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Unix()
	}

	return &Principal{
		Token:     wireToken,
		Kind:      c.Kind,
		Subject:   c.Subject,
		Scopes:    scopeSet(c.Scopes),
		ExpiresAt: expiresAt,
	}, nil
}

// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package authn

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/logging"
)

// AgentScopes is the fixed scope set issued to every agent token: no
// items:checkin, no billing. It is never filtered or extended.
var AgentScopes = []string{"items:browse", "items:read", "items:write", "patron:read"}

// stripFromHuman lists scopes a human-requested scope set is never
// allowed to carry, per spec.md §4.2.
var stripFromHuman = map[string]struct{}{
	"items:manage":   {},
	"patron:billing": {},
}

// IssuedHuman is the response shape for POST /auth.
type IssuedHuman struct {
	Token      string   `json:"token"`
	Username   string   `json:"username"`
	CardNumber string   `json:"cardNumber"`
	Scopes     []string `json:"scopes"`
	ExpiresAt  int64    `json:"expiresAt"`
}

// IssuedAgent is the response shape for POST /auth/agent.
type IssuedAgent struct {
	Token      string   `json:"token"`
	Username   string   `json:"username"`
	PatronID   string   `json:"patronId"`
	CardNumber string   `json:"cardNumber"`
	Scopes     []string `json:"scopes"`
	ExpiresAt  int64    `json:"expiresAt"`
}

// Store issues and resolves bearer tokens. It is process-wide and
// in-memory: principals never replicate across nodes, matching the
// non-goal in spec.md §1.
type Store struct {
	tokens   *tokenManager
	ttl      time.Duration
	security *logging.SecurityLogger

	mu             sync.RWMutex
	patronsByName  map[string]*patron
	patronsByCard  map[string]*patron
}

// NewStore builds a Store with the given signing secret and token TTL.
func NewStore(jwtSecret string, ttl time.Duration) (*Store, error) {
	tm, err := newTokenManager(jwtSecret)
	if err != nil {
		return nil, err
	}
	return &Store{
		tokens:        tm,
		ttl:           ttl,
		security:      logging.NewSecurityLogger(),
		patronsByName: make(map[string]*patron),
		patronsByCard: make(map[string]*patron),
	}, nil
}

// IssueHuman issues a human token, filtering the requested scope set
// against policy and materializing a fresh patron record if username is
// new.
func (s *Store) IssueHuman(username string, requestedScopes []string) (*IssuedHuman, *envelope.CallError) {
	if username == "" {
		username = generateHandle()
	}

	filtered := make([]string, 0, len(requestedScopes))
	for _, sc := range requestedScopes {
		if _, stripped := stripFromHuman[sc]; stripped {
			continue
		}
		filtered = append(filtered, sc)
	}

	p := s.getOrCreatePatron(username)

	token, expiresAt, err := s.tokens.issue(Human, p.id, filtered, s.ttl)
	if err != nil {
		s.security.LogEvent(&logging.SecurityEvent{
			Event: "human_token_issue", Username: username, Success: false, Error: err.Error(),
		})
		return nil, envelope.New(envelope.CodeInternalError, "failed to issue token")
	}
	s.security.LogEvent(&logging.SecurityEvent{Event: "human_token_issue", Username: username, Success: true})

	return &IssuedHuman{
		Token:      token,
		Username:   username,
		CardNumber: p.cardNumber,
		Scopes:     filtered,
		ExpiresAt:  expiresAt,
	}, nil
}

// IssueAgent issues an agent token bound to the patron identified by
// cardNumber, rejecting malformed cards and unknown patrons.
func (s *Store) IssueAgent(cardNumber string) (*IssuedAgent, *envelope.CallError) {
	if !ValidCardNumber(cardNumber) {
		s.security.LogEvent(&logging.SecurityEvent{
			Event: "agent_token_issue", Provider: "card", Success: false, Error: "malformed card number",
		})
		return nil, envelope.New(envelope.CodeInvalidCard, "card number does not match the canonical format")
	}

	s.mu.RLock()
	p, ok := s.patronsByCard[strings.ToUpper(cardNumber)]
	s.mu.RUnlock()
	if !ok {
		s.security.LogEvent(&logging.SecurityEvent{
			Event: "agent_token_issue", Provider: "card", Success: false, Error: "unknown card number",
		})
		return nil, envelope.New(envelope.CodePatronNotFound, "no patron found for card number")
	}

	token, expiresAt, err := s.tokens.issue(Agent, p.id, AgentScopes, s.ttl)
	if err != nil {
		s.security.LogEvent(&logging.SecurityEvent{
			Event: "agent_token_issue", Provider: "card", Username: p.username, Success: false, Error: err.Error(),
		})
		return nil, envelope.New(envelope.CodeInternalError, "failed to issue token")
	}
	s.security.LogEvent(&logging.SecurityEvent{
		Event: "agent_token_issue", Provider: "card", Username: p.username, Success: true,
	})

	return &IssuedAgent{
		Token:      token,
		Username:   p.username,
		PatronID:   p.id,
		CardNumber: p.cardNumber,
		Scopes:     AgentScopes,
		ExpiresAt:  expiresAt,
	}, nil
}

// Resolve parses an Authorization header value of the form "Bearer
// <token>" into a Principal. Any malformed header, unknown token, or
// expired token resolves as an error.
func (s *Store) Resolve(authHeader string) (*Principal, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return nil, errPrincipalAbsent
	}
	wireToken := strings.TrimPrefix(authHeader, prefix)

	p, err := s.tokens.resolve(wireToken)
	if err != nil {
		return nil, err
	}
	if p.Expired(time.Now()) {
		return nil, errPrincipalAbsent
	}
	return p, nil
}

// SeedPatron registers a patron record directly, used at startup to
// pre-populate demo patrons that agent tokens can bind to without first
// calling POST /auth.
func (s *Store) SeedPatron(username, cardNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &patron{id: uuid.NewString(), username: username, cardNumber: strings.ToUpper(cardNumber)}
	s.patronsByName[username] = p
	s.patronsByCard[p.cardNumber] = p
}

func (s *Store) getOrCreatePatron(username string) *patron {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.patronsByName[username]; ok {
		return existing
	}

	p := &patron{id: uuid.NewString(), username: username, cardNumber: generateCardNumber()}
	s.patronsByName[username] = p
	s.patronsByCard[p.cardNumber] = p
	return p
}

var errPrincipalAbsent = principalAbsentError{}

type principalAbsentError struct{}

func (principalAbsentError) Error() string { return "authn: principal absent" }

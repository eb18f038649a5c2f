// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package worker runs the background pool that drives async CALL
// operations to completion: it executes each handler's continuation
// behind a per-operation circuit breaker and a bounded retry, then
// records the terminal outcome back onto the instance in asyncstore.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/call/internal/asyncstore"
	"github.com/tomtom215/call/internal/envelope"
	"github.com/tomtom215/call/internal/metrics"
	"github.com/tomtom215/call/internal/ops"
)

// BreakerConfig tunes the per-operation circuit breaker. Mirrors the
// shape of a conventional gobreaker Settings wrapper: a name, trip
// threshold, open-state timeout, and half-open probe budget.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig returns conservative defaults: trip after 3
// consecutive failures, stay open 10s, allow 1 half-open probe.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 3,
	}
}

// job is one unit of background work: run continuation and record its
// outcome onto instance.
type job struct {
	op           string
	instance     *asyncstore.Instance
	continuation ops.Continuation
}

// Pool is a suture.Service: its Serve method is the worker loop. Submit
// is safe to call from any goroutine, including from within another
// job's execution.
type Pool struct {
	store         *asyncstore.Store
	breakerConfig BreakerConfig
	retries       uint64

	jobs chan job

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

// New builds a Pool backed by store, with room for queueDepth pending
// jobs before Submit blocks.
func New(store *asyncstore.Store, queueDepth int) *Pool {
	return &Pool{
		store:         store,
		breakerConfig: DefaultBreakerConfig(),
		retries:       2,
		jobs:          make(chan job, queueDepth),
		breakers:      make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Submit enqueues continuation for background execution against
// instance. It blocks if the queue is full, applying backpressure to
// the dispatcher rather than silently dropping work.
func (p *Pool) Submit(op string, instance *asyncstore.Instance, continuation ops.Continuation) {
	p.jobs <- job{op: op, instance: instance, continuation: continuation}
}

// Serve runs the worker loop until ctx is canceled, satisfying
// suture.Service.
func (p *Pool) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-p.jobs:
			p.run(j)
		}
	}
}

// run executes one job's continuation behind the op's breaker and
// retry policy. Only INTERNAL_ERROR - the taxonomy's catch-all for a
// genuine execution failure - counts toward the breaker's
// ConsecutiveFailures and the bounded retry; every other domain error
// (PATRON_NOT_FOUND, OVERDUE_ITEMS_EXIST, and so on) is a legitimate
// business outcome, so it short-circuits the retry loop as a breaker
// success and is recorded as its own metric, never coerced into
// INTERNAL_ERROR on the wire.
func (p *Pool) run(j job) {
	if err := p.store.TransitionToPending(j.instance); err != nil {
		return
	}

	breaker := p.breakerFor(j.op)
	retryPolicy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.retries)

	var domainErr *envelope.CallError

	result, err := breaker.Execute(func() (any, error) {
		return backoff.RetryWithData(func() (any, error) {
			value, callErr := j.continuation()
			if callErr == nil {
				return value, nil
			}
			if callErr.Code != envelope.CodeInternalError {
				domainErr = callErr
				return nil, backoff.Permanent(nil)
			}
			return nil, callErr
		}, retryPolicy)
	})

	metrics.SetCircuitBreakerState(j.op, float64(breaker.State()))

	if domainErr != nil {
		metrics.RecordCircuitBreakerRequest(j.op, "domain_error")
		_ = p.store.Fail(j.instance, domainErr)
		return
	}

	if err != nil {
		var callErr *envelope.CallError
		if !errors.As(err, &callErr) {
			callErr = envelope.New(envelope.CodeInternalError, err.Error())
		}
		metrics.RecordCircuitBreakerRequest(j.op, "failure")
		_ = p.store.Fail(j.instance, callErr)
		return
	}

	metrics.RecordCircuitBreakerRequest(j.op, "success")
	_ = p.store.Complete(j.instance, result)
}

func (p *Pool) breakerFor(op string) *gobreaker.CircuitBreaker[any] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cb, ok := p.breakers[op]; ok {
		return cb
	}

	cfg := p.breakerConfig
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        op,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
	})
	p.breakers[op] = cb
	return cb
}

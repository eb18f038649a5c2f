// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package supervisor

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	starts chan struct{}
}

func (c *countingService) Serve(ctx context.Context) error {
	c.starts <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func TestDefaultTreeConfigFillsExpectedValues(t *testing.T) {
	cfg := DefaultTreeConfig()
	assert.Equal(t, 5.0, cfg.FailureThreshold)
	assert.Equal(t, 30.0, cfg.FailureDecay)
	assert.Equal(t, 15*time.Second, cfg.FailureBackoff)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestNewSupervisorTreeAppliesZeroValueDefaults(t *testing.T) {
	tree, err := NewSupervisorTree(slog.Default(), TreeConfig{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, tree.config.FailureThreshold)
	assert.NotNil(t, tree.Root())
}

func TestWorkerAndHTTPServicesRunIndependently(t *testing.T) {
	tree, err := NewSupervisorTree(slog.Default(), DefaultTreeConfig())
	require.NoError(t, err)

	worker := &countingService{starts: make(chan struct{}, 1)}
	httpSvc := &countingService{starts: make(chan struct{}, 1)}

	tree.AddWorkerService(worker)
	tree.AddHTTPService(httpSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	select {
	case <-worker.starts:
	case <-time.After(time.Second):
		t.Fatal("worker service did not start")
	}
	select {
	case <-httpSvc.starts:
	case <-time.After(time.Second):
		t.Fatal("http service did not start")
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("supervisor tree did not shut down")
	}
}

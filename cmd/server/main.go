// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/call/docs"
	"github.com/tomtom215/call/internal/api"
	"github.com/tomtom215/call/internal/asyncstore"
	"github.com/tomtom215/call/internal/authn"
	"github.com/tomtom215/call/internal/config"
	"github.com/tomtom215/call/internal/dispatcher"
	"github.com/tomtom215/call/internal/logging"
	"github.com/tomtom215/call/internal/ops"
	"github.com/tomtom215/call/internal/registry"
	"github.com/tomtom215/call/internal/streamhub"
	"github.com/tomtom215/call/internal/supervisor"
	"github.com/tomtom215/call/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("starting CALL server with supervisor tree")

	reg, err := registry.New(registry.Seed())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build operation registry")
	}

	authStore, err := authn.NewStore(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build auth store")
	}
	authStore.SeedPatron("demo", "ABCD-1234-56")

	asyncStore := asyncstore.New(cfg.Async.PollMinInterval)
	idem, err := asyncstore.NewIdempotencyCache(cfg.Async.IdempotencyCacheSize)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build idempotency cache")
	}

	pool := worker.New(asyncStore, cfg.Async.QueueDepth)

	streamHub := streamhub.NewHub()

	catalog := ops.NewDemoCatalog()
	catalog.SetEventPublisher(streamHub)
	entries := ops.Catalogue(catalog)

	d := dispatcher.New(reg, entries, authStore, idem, asyncStore, pool, streamHub)

	handler := api.NewHandler(d, authStore, asyncStore, reg, streamHub, cfg.Registry.DiscoveryCacheMaxAge)
	router := api.NewRouter(handler, api.DefaultRateLimitConfig(), cfg.Logging.Level == "debug")
	httpService := api.NewService(
		fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		router.SetupChi(),
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		cfg.Server.ShutdownTimeout,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	tree.AddWorkerService(pool)
	tree.AddWorkerService(streamHub)
	tree.AddHTTPService(httpService)
	logging.Info().Str("addr", httpService.Addr()).Msg("worker pool and HTTP server added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop")
		}
	}

	logging.Info().Msg("CALL server stopped gracefully")
}

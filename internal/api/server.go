// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/call/internal/logging"
)

// Service wraps an *http.Server as a suture.Service: Serve blocks
// serving connections until ctx is canceled, then drains in-flight
// requests within shutdownTimeout before returning. A listener crash
// (ListenAndServe returning a non-ErrServerClosed error) propagates so
// the supervisor tree can restart it.
type Service struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewService builds a Service bound to addr, serving handler, with the
// given read/write timeouts and graceful-shutdown budget.
func NewService(addr string, handler http.Handler, readTimeout, writeTimeout, shutdownTimeout time.Duration) *Service {
	return &Service{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve implements suture.Service.
func (s *Service) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("http server did not shut down cleanly")
			return err
		}
		<-errCh
		return ctx.Err()
	}
}

// Addr returns the server's configured listen address.
func (s *Service) Addr() string {
	return s.server.Addr
}

// Copyright (c) 2025, The monitor-server Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/blastrider/monitor-server/pkg/auth"
	"github.com/blastrider/monitor-server/pkg/collector"
	"github.com/blastrider/monitor-server/pkg/logging"
	"github.com/blastrider/monitor-server/pkg/render"
	"github.com/blastrider/monitor-server/pkg/snapshot"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ServiceChecker reports the activation state of a single service.
// *systemd.Checker implements it.
type ServiceChecker interface {
	IsActive(ctx context.Context, name string) bool
}

// Renderer encodes a snapshot in the negotiated format.
// *render.Renderer implements it.
type Renderer interface {
	Render(f render.Format, snap *snapshot.Snapshot) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	gate        *auth.Gate
	verifier    auth.Verifier
	aggregator  *snapshot.Aggregator
	services    ServiceChecker
	renderer    Renderer

	mu    sync.RWMutex
	ready bool
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the server configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithVerifier sets the credential verifier used by the gate. Without one
// every protected request is rejected.
func WithVerifier(v auth.Verifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

// WithAggregator sets the snapshot aggregator behind GET /status.
func WithAggregator(a *snapshot.Aggregator) Option {
	return func(s *Server) {
		s.aggregator = a
	}
}

// WithServiceChecker sets the checker behind GET /status/{service}.
func WithServiceChecker(c ServiceChecker) Option {
	return func(s *Server) {
		s.services = c
	}
}

// WithRenderer replaces the default status renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// New creates a new server instance
func New(opts ...Option) (*Server, error) {
	s := &Server{config: NewConfig()}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		renderer, err := render.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize renderer: %w", err)
		}
		s.renderer = renderer
	}

	if s.aggregator == nil || s.services == nil {
		factory := collector.NewDefaultFactory()
		if s.aggregator == nil {
			s.aggregator = snapshot.NewAggregator(factory)
		}
		if s.services == nil {
			s.services = factory.CreateServiceChecker()
		}
	}

	s.gate = auth.NewGate(s.verifier)
	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn),
	}

	return s, nil
}

// Handler returns the fully wired route handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start binds the listener and serves until ctx is canceled, then shuts
// down gracefully. A bind failure is returned immediately.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.setReady(true)
	slog.Info("server listening", "address", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.setReady(false)
		if !ok {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run starts the server and blocks until SIGINT, SIGTERM or ctx cancellation.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", s.httpServer.Addr,
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"readTimeout", s.config.ReadTimeout.String(),
		"writeTimeout", s.config.WriteTimeout.String(),
		"shutdownTimeout", s.config.ShutdownTimeout.String(),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

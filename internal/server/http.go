// Package server exposes the evaluation pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"relevancer/internal/config"
	"relevancer/internal/engine"
	"relevancer/internal/errors"
	"relevancer/internal/observability"
	"relevancer/internal/parser"
)

// Server hosts the evaluation API.
type Server struct {
	cfg     *config.Config
	logger  *errors.Logger
	eng     *engine.Engine
	resumes *parser.ResumeParser
	jobs    *parser.JobParser
	obs     *observability.Manager
	limiter *LimiterManager

	httpServer *http.Server
	startedAt  time.Time
}

// NewServer wires the API server from its dependencies. obs may be nil.
func NewServer(cfg *config.Config, logger *errors.Logger, eng *engine.Engine, obs *observability.Manager) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		eng:     eng,
		resumes: parser.NewResumeParser(logger),
		jobs:    parser.NewJobParser(logger),
		obs:     obs,
	}

	if cfg.Server.RateLimit.Enabled {
		s.limiter = NewLimiterManager(cfg.Server.RateLimit, logger)
	}

	var handler http.Handler = s.routes()
	if obs != nil {
		handler = otelhttp.NewHandler(handler, "relevancer-api")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.startedAt = time.Now()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting",
			"addr", s.httpServer.Addr,
			"rate_limiting", s.cfg.Server.RateLimit.Enabled,
			"auth", len(s.cfg.Server.APIKeys) > 0,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.NewNetworkError(errors.ErrCodeNetworkTimeout, "server failed", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if s.limiter != nil {
		s.limiter.Stop()
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.NewNetworkError(errors.ErrCodeNetworkTimeout, "graceful shutdown failed", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

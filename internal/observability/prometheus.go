package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

// PrometheusServer serves the metrics scrape endpoint on its own listener,
// kept separate from the API server.
type PrometheusServer struct {
	server *http.Server
	logger *errors.Logger
}

// NewPrometheusServer builds the scrape endpoint server.
func NewPrometheusServer(cfg config.PrometheusConfig, logger *errors.Logger) *PrometheusServer {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	return &PrometheusServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving scrapes until the server is shut down.
func (p *PrometheusServer) Start() error {
	if p.logger != nil {
		p.logger.Info("Prometheus metrics server starting", "addr", p.server.Addr)
	}
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.NewNetworkError(errors.ErrCodeNetworkTimeout, "prometheus server failed", err)
	}
	return nil
}

// Shutdown stops the scrape endpoint gracefully.
func (p *PrometheusServer) Shutdown(ctx context.Context) error {
	return p.server.Shutdown(ctx)
}

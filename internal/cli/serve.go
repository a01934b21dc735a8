package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"relevancer/internal/ai"
	"relevancer/internal/engine"
	"relevancer/internal/observability"
	"relevancer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluation HTTP API",
	Long: `Start the HTTP server exposing /evaluate, /parse/resume, /parse/job,
/health and /stats. The server runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := configFromContext(ctx)
		if err != nil {
			return err
		}
		logger, err := loggerFromContext(ctx)
		if err != nil {
			return err
		}

		var obs *observability.Manager
		if cfg.Observability.Enabled {
			obs, err = observability.NewManager(ctx, cfg.Observability, logger)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := obs.Shutdown(shutdownCtx); err != nil {
					logger.Warn("Telemetry shutdown failed", "error", err)
				}
			}()
		}

		var promServer *observability.PrometheusServer
		if cfg.Observability.Enabled && cfg.Observability.Prometheus.Enabled {
			promServer = observability.NewPrometheusServer(cfg.Observability.Prometheus, logger)
			go func() {
				if err := promServer.Start(); err != nil {
					logger.LogError(err, "prometheus server")
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := promServer.Shutdown(shutdownCtx); err != nil {
					logger.Warn("Prometheus server shutdown failed", "error", err)
				}
			}()
		}

		embedder, err := ai.NewEmbedder(ctx, cfg, logger)
		if err != nil {
			return err
		}
		eng := engine.New(cfg.EngineSettings(), engine.DefaultTables(), embedder, logger)

		srv := server.NewServer(cfg, logger, eng, obs)
		return srv.Start(ctx)
	},
}

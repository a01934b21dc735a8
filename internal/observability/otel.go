// Package observability wires OpenTelemetry tracing and metrics for the
// evaluation pipeline and its HTTP shell.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

// Manager owns the telemetry providers and the instruments used across the
// application.
type Manager struct {
	cfg            config.ObservabilityConfig
	logger         *errors.Logger
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	evaluations        metric.Int64Counter
	evaluationDuration metric.Float64Histogram
	verdicts           metric.Int64Counter
	parses             metric.Int64Counter
	embeddingFallbacks metric.Int64Counter
	rateLimitHits      metric.Int64Counter
}

// NewManager sets up tracing and metrics according to configuration. With
// observability disabled it returns a manager whose methods are no-ops
// against the global (noop) providers.
func NewManager(ctx context.Context, cfg config.ObservabilityConfig, logger *errors.Logger) (*Manager, error) {
	m := &Manager{cfg: cfg, logger: logger}

	if !cfg.Enabled {
		if err := m.createInstruments(otel.Meter("relevancer")); err != nil {
			return nil, err
		}
		return m, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "failed to build telemetry resource", err)
	}

	if cfg.Tracing.Enabled {
		opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
		if cfg.Tracing.ConsoleExport {
			exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
			if err != nil {
				return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "failed to create trace exporter", err)
			}
			opts = append(opts, sdktrace.WithBatcher(exporter))
		}
		if cfg.OTLP.Enabled {
			exporter, err := newOTLPTraceExporter(ctx, cfg.OTLP)
			if err != nil {
				return nil, err
			}
			opts = append(opts, sdktrace.WithBatcher(exporter))
		}
		m.tracerProvider = sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(m.tracerProvider)
	}

	var readers []sdkmetric.Option
	readers = append(readers, sdkmetric.WithResource(res))
	if cfg.Prometheus.Enabled {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "failed to create prometheus exporter", err)
		}
		readers = append(readers, sdkmetric.WithReader(exporter))
	}
	if cfg.OTLP.Enabled {
		reader, err := newOTLPMetricReader(ctx, cfg.OTLP)
		if err != nil {
			return nil, err
		}
		readers = append(readers, sdkmetric.WithReader(reader))
	}
	if !cfg.Prometheus.Enabled && !cfg.OTLP.Enabled {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "failed to create metric exporter", err)
		}
		readers = append(readers, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(time.Minute)),
		))
	}
	m.meterProvider = sdkmetric.NewMeterProvider(readers...)
	otel.SetMeterProvider(m.meterProvider)

	if err := m.createInstruments(m.meterProvider.Meter("relevancer")); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("Observability initialized",
			"service", cfg.ServiceName,
			"tracing", cfg.Tracing.Enabled,
			"prometheus", cfg.Prometheus.Enabled,
			"otlp", cfg.OTLP.Enabled,
		)
	}
	return m, nil
}

// newOTLPTraceExporter builds an OTLP/HTTP span exporter. Construction does
// not dial the collector; export failures surface at flush time.
func newOTLPTraceExporter(ctx context.Context, cfg config.OTLPConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "failed to create OTLP trace exporter", err)
	}
	return exporter, nil
}

func newOTLPMetricReader(ctx context.Context, cfg config.OTLPConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(cfg.Headers))
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "failed to create OTLP metric exporter", err)
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(time.Minute)), nil
}

func (m *Manager) createInstruments(meter metric.Meter) error {
	var err error

	if m.evaluations, err = meter.Int64Counter("relevancer_evaluations_total",
		metric.WithDescription("Completed evaluations by result kind")); err != nil {
		return err
	}
	if m.evaluationDuration, err = meter.Float64Histogram("relevancer_evaluation_duration_seconds",
		metric.WithDescription("Evaluation latency")); err != nil {
		return err
	}
	if m.verdicts, err = meter.Int64Counter("relevancer_verdicts_total",
		metric.WithDescription("Verdict distribution")); err != nil {
		return err
	}
	if m.parses, err = meter.Int64Counter("relevancer_parses_total",
		metric.WithDescription("Parse operations by document kind")); err != nil {
		return err
	}
	if m.embeddingFallbacks, err = meter.Int64Counter("relevancer_embedding_fallbacks_total",
		metric.WithDescription("Evaluations that fell back to lexical similarity")); err != nil {
		return err
	}
	if m.rateLimitHits, err = meter.Int64Counter("relevancer_rate_limit_hits_total",
		metric.WithDescription("Requests rejected by rate limiting")); err != nil {
		return err
	}
	return nil
}

// Tracer returns a tracer for the given component.
func (m *Manager) Tracer(name string) trace.Tracer {
	if m.tracerProvider != nil {
		return m.tracerProvider.Tracer(name)
	}
	return otel.Tracer(name)
}

// RecordEvaluation records one completed evaluation.
func (m *Manager) RecordEvaluation(ctx context.Context, kind, verdict string, degraded bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.evaluations.Add(ctx, 1, attrs)
	m.evaluationDuration.Record(ctx, duration.Seconds(), attrs)
	m.verdicts.Add(ctx, 1, metric.WithAttributes(attribute.String("verdict", verdict)))
	if degraded {
		m.embeddingFallbacks.Add(ctx, 1)
	}
}

// RecordParse records one parse operation.
func (m *Manager) RecordParse(ctx context.Context, document string) {
	m.parses.Add(ctx, 1, metric.WithAttributes(attribute.String("document", document)))
}

// RecordRateLimitHit records one rejected request.
func (m *Manager) RecordRateLimitHit(ctx context.Context, scope string) {
	m.rateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", scope)))
}

// Shutdown flushes and stops the telemetry providers.
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.tracerProvider != nil {
		if err := m.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if m.meterProvider != nil {
		return m.meterProvider.Shutdown(ctx)
	}
	return nil
}

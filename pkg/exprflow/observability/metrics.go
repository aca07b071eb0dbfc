package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records expression engine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records a compilation with its duration and whether it
	// was served from the cache.
	RecordCompile(ctx context.Context, cached bool, duration time.Duration, err error)

	// RecordEval records an evaluation with its duration and error status.
	RecordEval(ctx context.Context, duration time.Duration, err error)

	// RecordCacheEviction records entries evicted by a cache insert.
	RecordCacheEviction(ctx context.Context, evicted int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles       metric.Int64Counter
	compileLatency metric.Float64Histogram
	compileErrors  metric.Int64Counter
	evals          metric.Int64Counter
	evalLatency    metric.Float64Histogram
	evalErrors     metric.Int64Counter
	cacheEvictions metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("exprflow")

	compiles, err := meter.Int64Counter("exprflow.compile.count",
		metric.WithDescription("Number of compilations, cache hits included"),
	)
	if err != nil {
		return nil, err
	}

	compileLatency, err := meter.Float64Histogram("exprflow.compile.latency_ms",
		metric.WithDescription("Compilation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("exprflow.compile.errors",
		metric.WithDescription("Number of compile failures"),
	)
	if err != nil {
		return nil, err
	}

	evals, err := meter.Int64Counter("exprflow.eval.count",
		metric.WithDescription("Number of evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("exprflow.eval.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("exprflow.eval.errors",
		metric.WithDescription("Number of evaluation failures"),
	)
	if err != nil {
		return nil, err
	}

	cacheEvictions, err := meter.Int64Counter("exprflow.cache.evictions",
		metric.WithDescription("Number of cache entries evicted"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:       compiles,
		compileLatency: compileLatency,
		compileErrors:  compileErrors,
		evals:          evals,
		evalLatency:    evalLatency,
		evalErrors:     evalErrors,
		cacheEvictions: cacheEvictions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a compilation.
func (m *otelMetrics) RecordCompile(ctx context.Context, cached bool, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("cached", cached),
	}
	m.compiles.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.compileLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
	if err != nil {
		m.compileErrors.Add(ctx, 1)
	}
}

// RecordEval records an evaluation.
func (m *otelMetrics) RecordEval(ctx context.Context, duration time.Duration, err error) {
	m.evals.Add(ctx, 1)
	m.evalLatency.Record(ctx, float64(duration.Microseconds())/1000.0)
	if err != nil {
		m.evalErrors.Add(ctx, 1)
	}
}

// RecordCacheEviction records cache evictions.
func (m *otelMetrics) RecordCacheEviction(ctx context.Context, evicted int) {
	if evicted <= 0 {
		return
	}
	m.cacheEvictions.Add(ctx, int64(evicted))
}

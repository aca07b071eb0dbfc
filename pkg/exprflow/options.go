package exprflow

import (
	"log/slog"

	"github.com/randalmurphal/exprflow/pkg/exprflow/observability"
	"github.com/randalmurphal/exprflow/pkg/exprflow/registry"
)

// evalConfig holds per-call configuration for the façade entry points.
type evalConfig struct {
	registry *registry.Registry
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
}

// newEvalConfig applies options over the defaults: the default registry,
// no logging, and no-op observability.
func newEvalConfig(opts []Option) evalConfig {
	cfg := evalConfig{
		registry: registry.Default(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a façade call.
type Option func(*evalConfig)

// WithRegistry evaluates against a custom registry instead of the default.
//
// Example:
//
//	reg := registry.New(registry.WithPlugins(myFunc))
//	v, err := exprflow.Eval("my_func(2)", scope, exprflow.WithRegistry(reg))
func WithRegistry(reg *registry.Registry) Option {
	return func(c *evalConfig) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithLogger enables structured logging for compilation and evaluation.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *evalConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics. Default: disabled.
//
// The recorder uses the global OTel meter provider; configure it before
// enabling metrics.
func WithMetrics(enabled bool) Option {
	return func(c *evalConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans around compilation and
// evaluation. Default: disabled.
func WithTracing(enabled bool) Option {
	return func(c *evalConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

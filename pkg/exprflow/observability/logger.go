// Package observability provides opt-in observability for the expression
// engine: structured logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// previewLen bounds expression text in log records and span attributes.
const previewLen = 80

// Preview truncates expression source for log records.
func Preview(source string) string {
	if len(source) <= previewLen {
		return source
	}
	return source[:previewLen] + "..."
}

// LogCompile logs a completed compilation. cached marks cache hits.
func LogCompile(logger *slog.Logger, source string, durationMs float64, cached bool) {
	if logger == nil {
		return
	}
	logger.Debug("expression compiled",
		slog.String("expr", Preview(source)),
		slog.Float64("duration_ms", durationMs),
		slog.Bool("cached", cached),
	)
}

// LogCompileError logs a failed compilation.
func LogCompileError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("expression compilation failed",
		slog.String("expr", Preview(source)),
		slog.String("error", err.Error()),
	)
}

// LogEval logs a completed evaluation.
func LogEval(logger *slog.Logger, source string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression evaluated",
		slog.String("expr", Preview(source)),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvalError logs a failed evaluation.
func LogEvalError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("expression evaluation failed",
		slog.String("expr", Preview(source)),
		slog.String("error", err.Error()),
	)
}

// LogCacheEviction logs cache evictions triggered by an insert.
func LogCacheEviction(logger *slog.Logger, registryID string, evicted int) {
	if logger == nil {
		return
	}
	logger.Debug("expression cache evicted entries",
		slog.String("registry_id", registryID),
		slog.Int("evicted", evicted),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}

package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the exprflow tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("exprflow")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCompileSpan starts a span for a compilation.
	StartCompileSpan(ctx context.Context, source string) (context.Context, trace.Span)

	// StartEvalSpan starts a span for an evaluation.
	StartEvalSpan(ctx context.Context, source string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCompileSpan starts a span for a compilation.
func (m *otelSpanManager) StartCompileSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "exprflow.compile",
		trace.WithAttributes(
			attribute.String("expr.source", Preview(source)),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartEvalSpan starts a span for an evaluation.
func (m *otelSpanManager) StartEvalSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "exprflow.eval",
		trace.WithAttributes(
			attribute.String("expr.source", Preview(source)),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

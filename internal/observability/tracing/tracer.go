// Package tracing provides OpenTelemetry tracing for the summarization
// pipeline and its HTTP surface.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the application.
var tracer = otel.Tracer("textsum")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// InitProvider installs a tracer provider on the global OpenTelemetry
// state and returns a shutdown function. Exporters are attached by the
// deployment environment; without one the provider records spans locally
// so span context propagation (trace IDs in logs and headers) still works.
func InitProvider() func() {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return func() {
		_ = tp.Shutdown(context.Background())
	}
}

// Package telemetry installs an optional OpenTelemetry tracer provider
// so compile phases show up as spans. With the default "none" exporter
// the pipeline's spans stay no-ops.
package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/kmarsden/langgen/internal/config"
	"github.com/kmarsden/langgen/internal/log"
)

const serviceName = "langgen"

// Shutdown flushes buffered spans and stops the provider.
type Shutdown func(context.Context) error

// Setup installs the tracer provider selected by cfg and returns its
// shutdown hook. The "none" exporter installs nothing and returns a
// no-op hook. Callers treat a Setup error as a diagnostic, never as a
// build failure.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (Shutdown, error) {
	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if exporter == nil {
		return func(context.Context) error { return nil }, nil
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceInstanceID(uuid.NewString()),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.Debug(log.CatTelemetry, "tracer provider installed", "exporter", cfg.Exporter)

	return provider.Shutdown, nil
}

func newExporter(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "", "none":
		return nil, nil
	case "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "otlp":
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unknown telemetry exporter %q", cfg.Exporter)
	}
}

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/kmarsden/langgen/internal/config"
)

func TestSetup_NoneInstallsNothing(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "none"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Same(t, before, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_StdoutInstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "stdout"})
	require.NoError(t, err)
	assert.NotSame(t, before, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "jaeger"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jaeger")
}

package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/config"
)

func testTelemetryConfig(metricsFile string) config.TelemetryConfig {
	return config.TelemetryConfig{
		ServiceName:   "catalogstats-test",
		Environment:   "test",
		TraceExporter: "none",
		MetricsFile:   metricsFile,
	}
}

func TestInitializeTelemetry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tel, err := InitializeTelemetry(context.Background(), testTelemetryConfig(""), nil, logger)
	require.NoError(t, err)
	require.NotNil(t, tel)

	assert.Nil(t, tel.TracerProvider, "no SDK tracer provider for the none exporter")
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.MeterProvider)
	assert.NotNil(t, tel.Meter)
	assert.NotNil(t, tel.Registry)
	require.NotNil(t, tel.Metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, tel.Shutdown(ctx))
}

func TestInitializeTelemetry_UnsupportedExporter(t *testing.T) {
	cfg := testTelemetryConfig("")
	cfg.TraceExporter = "jaeger"

	_, err := InitializeTelemetry(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}

func TestStdoutTracing(t *testing.T) {
	var traces bytes.Buffer
	cfg := testTelemetryConfig("")
	cfg.TraceExporter = "stdout"

	tel, err := InitializeTelemetry(context.Background(), cfg, &traces, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)

	_, end := tel.StartStage(context.Background(), "clean")
	end(nil)
	_, end = tel.StartStage(context.Background(), "load")
	end(errors.New("file missing"))

	require.NoError(t, tel.Shutdown(context.Background()))

	out := traces.String()
	assert.Contains(t, out, `"Name": "clean"`)
	assert.Contains(t, out, `"Name": "load"`)
	assert.Contains(t, out, "file missing")
}

func TestWriteMetrics(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "textfile", "catalogstats.prom")

	ctx := WithRunID(context.Background(), "run-metrics")
	tel, err := InitializeTelemetry(ctx, testTelemetryConfig(metricsFile), nil, nil)
	require.NoError(t, err)

	tel.Metrics.RowsLoaded.Add(ctx, 8)
	tel.Metrics.RowsDropped.Add(ctx, 3)
	_, end := tel.StartStage(ctx, "summarize")
	end(nil)

	require.NoError(t, tel.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "catalog_rows_loaded")
	assert.Contains(t, string(content), "catalog_rows_dropped")
	assert.Contains(t, string(content), "catalog_stage_duration_seconds")
	assert.Contains(t, string(content), `stage="summarize"`)
}

func TestWriteMetrics_Disabled(t *testing.T) {
	tel, err := InitializeTelemetry(context.Background(), testTelemetryConfig(""), nil, nil)
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	assert.NoError(t, tel.WriteMetrics())
}

package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"catalogstats/internal/config"
	"catalogstats/pkg/contracts"
)

const (
	ServiceVersion = contracts.Version
	MeterName      = "catalogstats"
)

// Telemetry holds the tracing and metrics providers for one run
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *PipelineMetrics

	metricsFile string
	logger      *slog.Logger
}

// PipelineMetrics are the counters and histograms recorded by the pipeline
type PipelineMetrics struct {
	RowsLoaded         metric.Int64Counter
	RowsDropped        metric.Int64Counter
	ExtractionFailures metric.Int64Counter
	ChartsRendered     metric.Int64Counter
	StageDuration      metric.Float64Histogram
}

// InitializeTelemetry sets up tracing (stdout or none) and OTel metrics
// exported through a private Prometheus registry. Spans are written to
// traceOut when the stdout exporter is selected.
func InitializeTelemetry(ctx context.Context, cfg config.TelemetryConfig, traceOut io.Writer, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := createResource(cfg, GetRunID(ctx))

	t := &Telemetry{
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg, res, traceOut); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig, runID string) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	}
	if runID != "" {
		attrs = append(attrs, attribute.String("service.instance.id", runID))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, traceOut io.Writer) error {
	switch cfg.TraceExporter {
	case "stdout":
		if traceOut == nil {
			traceOut = os.Stderr
		}
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOut),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		t.TracerProvider = tp
		t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(ServiceVersion))
		otel.SetTracerProvider(tp)
	case "none", "":
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.Registry = registry
	t.MeterProvider = mp
	t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))

	metrics, err := CreatePipelineMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.Metrics = metrics
	return nil
}

// CreatePipelineMetrics creates the pipeline instruments on the given meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"catalog_rows_loaded",
		metric.WithDescription("Rows read from the input dataset"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"catalog_rows_dropped",
		metric.WithDescription("Rows removed by the completeness filter"),
	)
	if err != nil {
		return nil, err
	}

	extractionFailures, err := meter.Int64Counter(
		"catalog_duration_extraction_failures",
		metric.WithDescription("Duration values without a digit run, retained as missing"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"catalog_charts_rendered",
		metric.WithDescription("Chart images written"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"catalog_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:         rowsLoaded,
		RowsDropped:        rowsDropped,
		ExtractionFailures: extractionFailures,
		ChartsRendered:     chartsRendered,
		StageDuration:      stageDuration,
	}, nil
}

// StartStage opens a span for a pipeline stage. The returned function ends
// the span, marks it failed when err is non-nil and records the duration.
func (t *Telemetry) StartStage(ctx context.Context, stage string) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := t.Tracer.Start(ctx, stage)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		if t.Metrics != nil {
			t.Metrics.StageDuration.Record(ctx, time.Since(start).Seconds(),
				metric.WithAttributes(attribute.String("stage", stage)))
		}
	}
}

// WriteMetrics writes the registry in the node-exporter textfile format.
// It is a no-op when no metrics file is configured.
func (t *Telemetry) WriteMetrics() error {
	if t.metricsFile == "" || t.Registry == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	t.logger.Info("Metrics written", slog.String("path", t.metricsFile))
	return nil
}

// Shutdown writes the metrics file, then flushes and stops both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if err := t.WriteMetrics(); err != nil {
		errs = append(errs, err)
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"

	"catalogstats/internal/charts"
	"catalogstats/internal/config"
	"catalogstats/internal/dataprocessing"
	"catalogstats/internal/exporter"
	"catalogstats/internal/infrastructure"
	"catalogstats/internal/validation"
	"catalogstats/pkg/contracts/domain"
)

// Pipeline stage names, used as span names and metric attributes
const (
	StageValidate = "validate"
	StageLoad     = "load"
	StageClean    = "clean"
	StageDerive   = "derive_year_added"
	StageCharts   = "charts"
	StageMoments  = "moments"
	StageReport   = "report"
	StageExport   = "export"
)

// App runs the catalog analysis pipeline once
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
	stdout    io.Writer
}

// Option customizes an App
type Option func(*App)

// WithOutput sends the console report and diagnostics to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// Result is what one run produced
type Result struct {
	RunID          string
	Column         string
	Stats          domain.CleanStats
	Moments        domain.Moments
	Classification domain.Classification
	Correlation    domain.CorrelationMatrix
	// Charts maps a chart name to the file it was written to. Skipped
	// charts are absent.
	Charts  map[string]string
	Exports []string
}

// New creates an application for cfg. A nil telemetry disables spans and metrics.
func New(cfg *config.Config, logger *slog.Logger, telemetry *infrastructure.Telemetry, opts ...Option) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		cfg:       cfg,
		logger:    infrastructure.WithComponent(logger, "app"),
		telemetry: telemetry,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run loads, cleans and summarizes the configured dataset, renders the
// charts and writes the report. The first failing stage aborts the run.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	result := &Result{
		RunID:  infrastructure.GetRunID(ctx),
		Column: a.cfg.Analysis.Column,
		Charts: make(map[string]string),
	}

	a.logger.InfoContext(ctx, "Analysis started",
		slog.String("input", a.cfg.Input.Path),
		slog.String("column", a.cfg.Analysis.Column))

	if err := a.preflight(ctx); err != nil {
		return nil, err
	}

	raw, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	cleaned, err := a.clean(ctx, raw, result)
	if err != nil {
		return nil, err
	}

	cleaned = a.deriveYearAdded(ctx, cleaned)
	result.Correlation = dataprocessing.CorrelationMatrix(cleaned)

	if a.cfg.Charts.Enabled {
		if err := a.renderCharts(ctx, cleaned, result); err != nil {
			return nil, err
		}
	}

	if err := a.summarize(ctx, cleaned, result); err != nil {
		return nil, err
	}

	if err := a.report(ctx, result); err != nil {
		return nil, err
	}

	if err := a.export(ctx, cleaned, result); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "Analysis completed",
		slog.Int("rows_out", result.Stats.RowsOut),
		slog.Int("charts", len(result.Charts)),
		slog.Int("exports", len(result.Exports)))

	return result, nil
}

// preflight checks the input file and every output location before any
// work is done.
func (a *App) preflight(ctx context.Context) (err error) {
	ctx, end := a.startStage(ctx, StageValidate)
	defer func() { end(err) }()

	v := validation.NewFileValidator(a.logger)
	if err := v.ValidateInputFile(a.cfg.Input.Path, a.cfg.Input.Format); err != nil {
		return err
	}
	if a.cfg.Charts.Enabled {
		if err := v.ValidateOutputDirectory(a.cfg.Charts.OutputDir); err != nil {
			return err
		}
	}
	for _, path := range []string{a.cfg.Export.CleanedCSV, a.cfg.Export.SummaryWorkbook} {
		if path == "" {
			continue
		}
		if err := v.ValidateOutputFile(path); err != nil {
			return err
		}
	}

	a.logger.DebugContext(ctx, "Preflight passed")
	return nil
}

func (a *App) load(ctx context.Context) (df dataframe.DataFrame, err error) {
	ctx, end := a.startStage(ctx, StageLoad)
	defer func() { end(err) }()

	loader := dataprocessing.NewLoader(a.logger, dataprocessing.LoadOptions{
		Format:    a.cfg.Input.Format,
		Delimiter: delimiterRune(a.cfg.Input.Delimiter),
		Sheet:     a.cfg.Input.Sheet,
	})

	df, err = loader.LoadFile(ctx, a.cfg.Input.Path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	if m := a.metrics(); m != nil {
		m.RowsLoaded.Add(ctx, int64(df.Nrow()))
	}
	return df, nil
}

func (a *App) clean(ctx context.Context, raw dataframe.DataFrame, result *Result) (df dataframe.DataFrame, err error) {
	ctx, end := a.startStage(ctx, StageClean)
	defer func() { end(err) }()

	cleaner := dataprocessing.NewCleaner(a.logger, dataprocessing.CleanOptions{
		RequiredColumns: a.cfg.Analysis.RequiredColumns,
		Diagnostics:     a.cfg.Analysis.Diagnostics,
		PreviewRows:     a.cfg.Analysis.PreviewRows,
		SchemaDump:      a.cfg.Analysis.SchemaDump,
		Output:          a.stdout,
	})

	df, stats, err := cleaner.Clean(ctx, raw)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	result.Stats = stats

	if m := a.metrics(); m != nil {
		m.RowsDropped.Add(ctx, int64(stats.RowsDropped))
		m.ExtractionFailures.Add(ctx, int64(stats.ExtractionFailures))
	}
	return df, nil
}

func (a *App) deriveYearAdded(ctx context.Context, df dataframe.DataFrame) dataframe.DataFrame {
	ctx, end := a.startStage(ctx, StageDerive)
	defer end(nil)

	return dataprocessing.DeriveYearAdded(ctx, a.logger, df)
}

// renderCharts draws the relational, statistical and categorical charts in
// that order.
func (a *App) renderCharts(ctx context.Context, df dataframe.DataFrame, result *Result) (err error) {
	ctx, end := a.startStage(ctx, StageCharts)
	defer func() { end(err) }()

	renderer := charts.NewRenderer(a.logger, a.cfg.Charts.OutputDir, charts.StyleFromConfig(a.cfg.Charts))

	record := func(name, path string) {
		if path == "" {
			return
		}
		result.Charts[name] = path
		if m := a.metrics(); m != nil {
			m.ChartsRendered.Add(ctx, 1)
		}
	}

	path, err := renderer.RenderRelational(ctx, dataprocessing.YearCounts(df), a.cfg.Charts.RelationalFile)
	if err != nil {
		return err
	}
	record(charts.ChartRelational, path)

	path, err = renderer.RenderStatistical(ctx, result.Correlation, a.cfg.Charts.StatisticalFile)
	if err != nil {
		return err
	}
	record(charts.ChartStatistical, path)

	top := dataprocessing.TopCountries(df, renderer.Style().TopCategories)
	path, err = renderer.RenderCategorical(ctx, top, a.cfg.Charts.CategoricalFile)
	if err != nil {
		return err
	}
	record(charts.ChartCategorical, path)

	return nil
}

func (a *App) summarize(ctx context.Context, df dataframe.DataFrame, result *Result) (err error) {
	ctx, end := a.startStage(ctx, StageMoments)
	defer func() { end(err) }()

	m, err := dataprocessing.NewSummarizer(a.logger).ComputeMoments(ctx, df, a.cfg.Analysis.Column)
	if err != nil {
		return err
	}
	result.Moments = m
	result.Classification = dataprocessing.Classify(m)
	return nil
}

func (a *App) report(ctx context.Context, result *Result) (err error) {
	_, end := a.startStage(ctx, StageReport)
	defer func() { end(err) }()

	if err := exporter.WriteMomentsReport(a.stdout, result.Column, result.Moments); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (a *App) export(ctx context.Context, df dataframe.DataFrame, result *Result) (err error) {
	exp := a.cfg.Export
	if exp.CleanedCSV == "" && exp.SummaryWorkbook == "" {
		return nil
	}

	ctx, end := a.startStage(ctx, StageExport)
	defer func() { end(err) }()

	if exp.CleanedCSV != "" {
		if err := exporter.NewCSVWriter("").WriteFrame(ctx, exp.CleanedCSV, df); err != nil {
			return err
		}
		result.Exports = append(result.Exports, exp.CleanedCSV)
	}

	if exp.SummaryWorkbook != "" {
		summary := exporter.Summary{
			Column:      result.Column,
			Moments:     result.Moments,
			Stats:       result.Stats,
			Correlation: result.Correlation,
		}
		if err := exporter.NewWorkbookWriter("").WriteSummary(ctx, exp.SummaryWorkbook, summary); err != nil {
			return err
		}
		result.Exports = append(result.Exports, exp.SummaryWorkbook)
	}

	return nil
}

func (a *App) startStage(ctx context.Context, stage string) (context.Context, func(error)) {
	a.logger.DebugContext(ctx, "Stage started", slog.String("stage", stage))
	if a.telemetry == nil {
		return ctx, func(error) {}
	}
	return a.telemetry.StartStage(ctx, stage)
}

func (a *App) metrics() *infrastructure.PipelineMetrics {
	if a.telemetry == nil {
		return nil
	}
	return a.telemetry.Metrics
}

// delimiterRune returns the first rune of d, or a comma when d is empty.
func delimiterRune(d string) rune {
	r, _ := utf8.DecodeRuneInString(d)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogstats/internal/app"
	"catalogstats/internal/config"
	"catalogstats/internal/infrastructure"
	"catalogstats/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one analysis and returns the process exit code. The report
// goes to stdout; logs, traces and usage go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (defaults to catalogstats.yaml or configs/catalogstats.yaml)")
	input := fs.String("in", "", "input dataset (.csv or .xlsx), overrides input.path")
	column := fs.String("column", "", "numeric column to summarize, overrides analysis.column")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewJSONHandler(stderr, nil)).Error("Failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *column != "" {
		cfg.Analysis.Column = *column
	}
	if err := cfg.Validate(); err != nil {
		slog.New(slog.NewJSONHandler(stderr, nil)).Error("Invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		slog.New(slog.NewJSONHandler(stderr, nil)).Error("Failed to initialize logger", slog.String("error", err.Error()))
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureRunID(ctx)

	telemetry, err := infrastructure.InitializeTelemetry(ctx, cfg.Telemetry, stderr, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.InfoContext(ctx, "Starting catalog report",
		slog.String("version", contracts.Version),
		slog.String("input", cfg.Input.Path),
		slog.String("column", cfg.Analysis.Column))

	if _, err := app.New(cfg, logger, telemetry, app.WithOutput(stdout)).Run(ctx); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Catalog report failed")
		return 1
	}
	return 0
}

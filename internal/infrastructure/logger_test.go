package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	_, err = os.Stat(logFile)
	require.NoError(t, err, "log file should be created with its directory")

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
}

func TestNewLogger_ConsoleAndBoth(t *testing.T) {
	defer CloseLogFile()

	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, err := NewLogger(config.LoggingConfig{Level: "info", Output: "both", FilePath: logFile}, &console)
	require.NoError(t, err)

	logger.Info("dual output")
	require.NoError(t, CloseLogFile())

	assert.Contains(t, console.String(), "dual output")
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dual output")

	console.Reset()
	logger, err = NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &console)
	require.NoError(t, err)
	logger.Info("console only")
	assert.Contains(t, console.String(), "console only")
}

func TestRunIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Output: "console"}, &buf)
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "test with run")

	var logEntry map[string]interface{}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &logEntry))
	assert.Equal(t, "run-123", logEntry["run_id"])
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
		warnShown  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warning", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(config.LoggingConfig{Level: tt.level, Output: "console"}, &buf)
			require.NoError(t, err)

			logger.Debug("debug line")
			logger.Warn("warn line")

			assert.Equal(t, tt.debugShown, strings.Contains(buf.String(), "debug line"))
			assert.Equal(t, tt.warnShown, strings.Contains(buf.String(), "warn line"))
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := EnsureRunID(context.Background())
	runID := GetRunID(ctx)
	assert.NotEmpty(t, runID)

	assert.Equal(t, runID, GetRunID(EnsureRunID(ctx)), "EnsureRunID must keep an existing ID")
	assert.Empty(t, GetRunID(context.Background()))
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithComponent(logger, "cleaner").Info("test message")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "cleaner", logEntry["component"])

	buf.Reset()
	WithError(logger, os.ErrNotExist).Info("error test")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Contains(t, logEntry["error"], "file does not exist")

	assert.Same(t, logger, WithError(logger, nil))
}

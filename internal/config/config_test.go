package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "catalogstats/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults reproduce the reference run",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "netflix_titles.csv", cfg.Input.Path)
				assert.Equal(t, "auto", cfg.Input.Format)
				assert.Equal(t, ",", cfg.Input.Delimiter)
				assert.Equal(t, "duration", cfg.Analysis.Column)
				assert.Equal(t, []string{"release_year", "duration", "country"}, cfg.Analysis.RequiredColumns)
				assert.True(t, cfg.Analysis.Diagnostics)
				assert.Equal(t, 5, cfg.Analysis.PreviewRows)
				assert.False(t, cfg.Analysis.SchemaDump)

				assert.True(t, cfg.Charts.Enabled)
				assert.Equal(t, "relational_plot.png", cfg.Charts.RelationalFile)
				assert.Equal(t, "categorical_plot.png", cfg.Charts.CategoricalFile)
				assert.Equal(t, "statistical_plot.png", cfg.Charts.StatisticalFile)
				assert.Equal(t, 10, cfg.Charts.TopCategories)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"CATALOG_INPUT_PATH":                "data.csv",
				"CATALOG_ANALYSIS_COLUMN":           "release_year",
				"CATALOG_ANALYSIS_REQUIRED_COLUMNS": "release_year,country",
				"CATALOG_ANALYSIS_SCHEMA_DUMP":      "true",
				"CATALOG_CHARTS_TOP_CATEGORIES":     "5",
				"CATALOG_LOGGING_LEVEL":             "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data.csv", cfg.Input.Path)
				assert.Equal(t, "release_year", cfg.Analysis.Column)
				assert.Equal(t, []string{"release_year", "country"}, cfg.Analysis.RequiredColumns)
				assert.True(t, cfg.Analysis.SchemaDump)
				assert.Equal(t, 5, cfg.Charts.TopCategories)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "file overlays defaults and keeps unspecified keys",
			file: `
input:
  path: titles.xlsx
  sheet: Catalog
charts:
  enabled: false
  output_dir: charts
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "titles.xlsx", cfg.Input.Path)
				assert.Equal(t, "Catalog", cfg.Input.Sheet)
				assert.Equal(t, "auto", cfg.Input.Format)
				assert.False(t, cfg.Charts.Enabled)
				assert.Equal(t, "charts", cfg.Charts.OutputDir)
				assert.Equal(t, "duration", cfg.Analysis.Column)
			},
		},
		{
			name: "environment wins over file",
			env:  map[string]string{"CATALOG_INPUT_PATH": "from-env.csv"},
			file: "input:\n  path: from-file.csv\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env.csv", cfg.Input.Path)
			},
		},
		{
			name:    "invalid format rejected",
			env:     map[string]string{"CATALOG_INPUT_FORMAT": "parquet"},
			wantErr: true,
		},
		{
			name:    "invalid log level rejected",
			file:    "logging:\n  level: verbose\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml rejected",
			file:    "input: [unterminated\n",
			wantErr: true,
		},
		{
			name:    "non-numeric env value rejected",
			env:     map[string]string{"CATALOG_CHARTS_TOP_CATEGORIES": "ten"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			} else {
				// Keep the search away from stray files in the package dir.
				t.Chdir(t.TempDir())
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(*Config) {}, false},
		{"empty input path", func(c *Config) { c.Input.Path = "" }, true},
		{"multi-char delimiter", func(c *Config) { c.Input.Delimiter = ";;" }, true},
		{"tab delimiter", func(c *Config) { c.Input.Delimiter = "\t" }, false},
		{"empty analysis column", func(c *Config) { c.Analysis.Column = "" }, true},
		{"no required columns", func(c *Config) { c.Analysis.RequiredColumns = nil }, true},
		{"blank required column", func(c *Config) { c.Analysis.RequiredColumns = []string{"country", ""} }, true},
		{"negative preview", func(c *Config) { c.Analysis.PreviewRows = -1 }, true},
		{"zero top categories", func(c *Config) { c.Charts.TopCategories = 0 }, true},
		{"zero width", func(c *Config) { c.Charts.Width = 0 }, true},
		{"workbook must be xlsx", func(c *Config) { c.Export.SummaryWorkbook = "summary.csv" }, true},
		{"workbook xlsx", func(c *Config) { c.Export.SummaryWorkbook = "summary.xlsx" }, false},
		{"file output needs path", func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }, true},
		{"console output without path", func(c *Config) { c.Logging.FilePath = "" }, false},
		{"unknown trace exporter", func(c *Config) { c.Telemetry.TraceExporter = "otlp" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ForcesJSONFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

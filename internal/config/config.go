package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "catalogstats/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "CATALOG"

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes the dataset file to load
type InputConfig struct {
	Path      string `yaml:"path" split_words:"true" validate:"required"`
	Format    string `yaml:"format" split_words:"true" validate:"oneof=auto csv xlsx"`
	Delimiter string `yaml:"delimiter" split_words:"true" validate:"len=1"`
	Sheet     string `yaml:"sheet" split_words:"true"`
}

// AnalysisConfig selects what the cleaner and the summarizer work on
type AnalysisConfig struct {
	Column          string   `yaml:"column" split_words:"true" validate:"required"`
	RequiredColumns []string `yaml:"required_columns" split_words:"true" validate:"min=1,dive,required"`
	Diagnostics     bool     `yaml:"diagnostics" split_words:"true"`
	PreviewRows     int      `yaml:"preview_rows" split_words:"true" validate:"gte=0"`
	SchemaDump      bool     `yaml:"schema_dump" split_words:"true"`
}

// ChartsConfig contains chart rendering configuration
type ChartsConfig struct {
	Enabled         bool    `yaml:"enabled" split_words:"true"`
	OutputDir       string  `yaml:"output_dir" split_words:"true" validate:"required"`
	RelationalFile  string  `yaml:"relational_file" split_words:"true" validate:"required"`
	CategoricalFile string  `yaml:"categorical_file" split_words:"true" validate:"required"`
	StatisticalFile string  `yaml:"statistical_file" split_words:"true" validate:"required"`
	TopCategories   int     `yaml:"top_categories" split_words:"true" validate:"gte=1"`
	Width           float64 `yaml:"width" split_words:"true" validate:"gt=0"`
	Height          float64 `yaml:"height" split_words:"true" validate:"gt=0"`
	HeatmapWidth    float64 `yaml:"heatmap_width" split_words:"true" validate:"gt=0"`
	TitleFontSize   float64 `yaml:"title_font_size" split_words:"true" validate:"gt=0"`
	LabelFontSize   float64 `yaml:"label_font_size" split_words:"true" validate:"gt=0"`
}

// ExportConfig lists optional artifacts beyond the console report.
// Empty paths disable the export.
type ExportConfig struct {
	CleanedCSV      string `yaml:"cleaned_csv" split_words:"true"`
	SummaryWorkbook string `yaml:"summary_workbook" split_words:"true" validate:"omitempty,endswith=.xlsx"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" split_words:"true" validate:"required"`
	Environment   string `yaml:"environment" split_words:"true"`
	TraceExporter string `yaml:"trace_exporter" split_words:"true" validate:"oneof=stdout none"`
	MetricsFile   string `yaml:"metrics_file" split_words:"true"`
}

// Load builds the configuration from defaults, an optional YAML file and
// CATALOG_* environment variables, in increasing order of precedence.
// An empty filePath searches the well-known locations.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath == "" {
		filePath = getConfigFilePath()
	}
	if filePath != "" {
		if err := loadFromFile(filePath, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", filePath)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file on cfg. Keys absent from the file
// keep their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and normalizes the logging format.
func (c *Config) Validate() error {
	// Always JSON
	c.Logging.Format = "json"

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.NewConfigError("config validation failed", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
		return apperrors.NewConfigError("config validation failed", errors.New(strings.Join(msgs, "; "))).
			WithContext("fields", len(fieldErrs))
	}
	return nil
}

var validate = validator.New()

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"catalogstats.yaml",
		"configs/catalogstats.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns the configuration of the reference run
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:      "netflix_titles.csv",
			Format:    "auto",
			Delimiter: ",",
		},
		Analysis: AnalysisConfig{
			Column:          "duration",
			RequiredColumns: []string{"release_year", "duration", "country"},
			Diagnostics:     true,
			PreviewRows:     5,
		},
		Charts: ChartsConfig{
			Enabled:         true,
			OutputDir:       ".",
			RelationalFile:  "relational_plot.png",
			CategoricalFile: "categorical_plot.png",
			StatisticalFile: "statistical_plot.png",
			TopCategories:   10,
			Width:           10,
			Height:          6,
			HeatmapWidth:    15,
			TitleFontSize:   20,
			LabelFontSize:   14,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/catalogstats.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "catalogstats",
			Environment:   "development",
			TraceExporter: "none",
		},
	}
}

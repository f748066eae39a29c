// Package config provides centralized configuration management for catalogstats.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command-line flags, applied by the caller after Load (highest priority)
//	2. Environment variables
//	3. A YAML configuration file
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CATALOG_<SECTION>_<FIELD>:
//
//	CATALOG_INPUT_PATH=data.csv
//	CATALOG_ANALYSIS_COLUMN=duration
//	CATALOG_ANALYSIS_REQUIRED_COLUMNS=release_year,duration,country
//	CATALOG_CHARTS_OUTPUT_DIR=out
//	CATALOG_LOGGING_LEVEL=debug
//	CATALOG_TELEMETRY_METRICS_FILE=catalogstats.prom
//
// # Configuration File
//
// When no path is given, Load looks for catalogstats.yaml and then
// configs/catalogstats.yaml in the working directory:
//
//	input:
//	  path: data.csv
//	analysis:
//	  column: duration
//	  schema_dump: true
//	charts:
//	  output_dir: charts
//
// # Validation
//
// All configuration is validated at load time with struct tags. A failing
// field produces a CONFIG AppError naming every offending field.
//
// # Testing
//
// For testing, use Default() to get the reference configuration without
// touching the environment or the file system.
package config

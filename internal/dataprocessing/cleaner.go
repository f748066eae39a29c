package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"regexp"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
	"catalogstats/pkg/contracts/domain"
)

// digitRun matches the first run of decimal digits in a cell.
var digitRun = regexp.MustCompile(`[0-9]+`)

// CleanOptions configures the cleaner
type CleanOptions struct {
	// RequiredColumns must all be present for a row to be kept.
	RequiredColumns []string
	DurationColumn  string
	YearColumn      string

	// Diagnostics writes a preview, describe output and the correlation
	// matrix of the raw dataset to Output before cleaning.
	Diagnostics bool
	PreviewRows int
	SchemaDump  bool
	Output      io.Writer
}

// Cleaner drops incomplete rows and normalizes the duration and release year columns.
type Cleaner struct {
	logger *slog.Logger
	opts   CleanOptions
}

// NewCleaner creates a cleaner, filling unset options with defaults
func NewCleaner(logger *slog.Logger, opts CleanOptions) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.RequiredColumns) == 0 {
		opts.RequiredColumns = domain.DefaultRequiredColumns
	}
	if opts.DurationColumn == "" {
		opts.DurationColumn = domain.ColumnDuration
	}
	if opts.YearColumn == "" {
		opts.YearColumn = domain.ColumnReleaseYear
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	return &Cleaner{
		logger: infrastructure.WithComponent(logger, "cleaner"),
		opts:   opts,
	}
}

// Clean returns a new DataFrame in which every required column is present on
// every row, duration holds the first digit run of its text as a float, and
// release year is an integer column. The input is not modified.
//
// A duration cell with no digits becomes missing and the row is kept.
func (c *Cleaner) Clean(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, domain.CleanStats, error) {
	stats := domain.CleanStats{RowsIn: df.Nrow()}
	if df.Err != nil {
		return dataframe.DataFrame{}, stats, errors.NewParsingError("input dataset is invalid", df.Err)
	}

	if c.opts.Diagnostics {
		if err := WriteDiagnostics(c.opts.Output, df, c.opts.PreviewRows, c.opts.SchemaDump); err != nil {
			c.logger.WarnContext(ctx, "Failed to write diagnostics", slog.String("error", err.Error()))
		}
	}

	for _, name := range c.requiredColumns() {
		if !hasColumn(df, name) {
			return dataframe.DataFrame{}, stats, errors.NewMissingColumnError(name)
		}
	}

	out := c.dropIncomplete(df)
	if out.Err != nil {
		return dataframe.DataFrame{}, stats, errors.NewParsingError("failed to filter incomplete rows", out.Err)
	}
	stats.RowsOut = out.Nrow()
	stats.RowsDropped = stats.RowsIn - stats.RowsOut

	c.logger.InfoContext(ctx, "Dropped incomplete rows",
		slog.Int("rows_in", stats.RowsIn),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Any("required_columns", c.opts.RequiredColumns))

	duration, failures := extractDigits(out.Col(c.opts.DurationColumn))
	stats.ExtractionFailures = failures
	if failures > 0 {
		c.logger.WarnContext(ctx, "Duration values without digits set to missing",
			slog.String("column", c.opts.DurationColumn),
			slog.Int("count", failures))
	}
	out = out.Mutate(duration)
	if out.Err != nil {
		return dataframe.DataFrame{}, stats, errors.NewParsingError("failed to replace duration column", out.Err)
	}

	year, err := toIntSeries(out.Col(c.opts.YearColumn))
	if err != nil {
		return dataframe.DataFrame{}, stats, err
	}
	out = out.Mutate(year)
	if out.Err != nil {
		return dataframe.DataFrame{}, stats, errors.NewParsingError("failed to replace year column", out.Err)
	}

	c.logger.InfoContext(ctx, "Dataset cleaned",
		slog.Int("rows_out", stats.RowsOut),
		slog.Int("extraction_failures", stats.ExtractionFailures))

	return out, stats, nil
}

// requiredColumns returns the configured columns plus the duration and
// year columns the later steps depend on.
func (c *Cleaner) requiredColumns() []string {
	names := append([]string{}, c.opts.RequiredColumns...)
	for _, extra := range []string{c.opts.DurationColumn, c.opts.YearColumn} {
		found := false
		for _, n := range names {
			if n == extra {
				found = true
				break
			}
		}
		if !found {
			names = append(names, extra)
		}
	}
	return names
}

// dropIncomplete keeps rows where every configured required column is present.
func (c *Cleaner) dropIncomplete(df dataframe.DataFrame) dataframe.DataFrame {
	cols := make([]series.Series, 0, len(c.opts.RequiredColumns))
	for _, name := range c.opts.RequiredColumns {
		cols = append(cols, df.Col(name))
	}

	keep := make([]int, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		complete := true
		for _, col := range cols {
			if col.Elem(i).IsNA() {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	if len(keep) == df.Nrow() {
		return df.Copy()
	}
	return df.Subset(keep)
}

// extractDigits converts a text column to floats holding its first digit
// run. Numeric columns are returned unchanged. The second result counts
// present cells that had no digits.
func extractDigits(s series.Series) (series.Series, int) {
	if isNumeric(s) {
		return s.Copy(), 0
	}

	failures := 0
	values := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			values[i] = missingMarker
			continue
		}
		digits := digitRun.FindString(e.String())
		if digits == "" {
			failures++
			values[i] = missingMarker
			continue
		}
		values[i] = digits
	}
	return series.New(values, series.Float, s.Name), failures
}

// toIntSeries converts every value of s to an integer or fails on the first
// one it cannot convert.
func toIntSeries(s series.Series) (series.Series, error) {
	values := make([]int, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			return series.Series{}, errors.NewTypeConversionError(s.Name, i, "", nil)
		}
		v, err := e.Int()
		if err != nil {
			return series.Series{}, errors.NewTypeConversionError(s.Name, i, e.String(), err)
		}
		values[i] = v
	}
	return series.New(values, series.Int, s.Name), nil
}

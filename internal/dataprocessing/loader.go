package dataprocessing

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
)

// Supported input formats
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// missingMarker is the cell value gota reads as a missing element for every type
const missingMarker = "NaN"

// DefaultMissingTokens are the cell values read as missing
var DefaultMissingTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "<nil>"}

// LoadOptions configures how a dataset file is read
type LoadOptions struct {
	Format        string
	Delimiter     rune
	Sheet         string
	MissingTokens []string
}

// Loader reads a dataset file into a typed in-memory table
type Loader struct {
	logger *slog.Logger
	opts   LoadOptions
}

// NewLoader creates a loader, filling unset options with defaults
func NewLoader(logger *slog.Logger, opts LoadOptions) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Format == "" {
		opts.Format = FormatAuto
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.MissingTokens == nil {
		opts.MissingTokens = DefaultMissingTokens
	}
	return &Loader{
		logger: infrastructure.WithComponent(logger, "loader"),
		opts:   opts,
	}
}

// LoadFile reads the dataset at path. Missing cells become missing elements
// and each column gets the narrowest of int, float or string that holds all
// of its present values.
func (l *Loader) LoadFile(ctx context.Context, path string) (dataframe.DataFrame, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, errors.NewNotFoundError("input file", err).WithContext("path", path)
		}
		return dataframe.DataFrame{}, errors.NewParsingError("input file is not readable", err).WithContext("path", path)
	}

	format := ResolveFormat(l.opts.Format, path)
	l.logger.InfoContext(ctx, "Loading dataset",
		slog.String("path", path),
		slog.String("format", format))

	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = l.readWorkbook(path)
	case FormatCSV:
		records, err = l.readDelimited(path)
	default:
		return dataframe.DataFrame{}, errors.NewParsingError(fmt.Sprintf("unsupported input format %q", format), nil)
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err := l.buildFrame(records)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	return df, nil
}

// LoadReader reads delimited data from r. Used for piped input and tests.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader) (dataframe.DataFrame, error) {
	records, err := l.parseDelimited(r)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return l.buildFrame(records)
}

// ResolveFormat maps the configured format to a concrete one, using the
// file extension when the format is auto.
func ResolveFormat(format, path string) string {
	format = strings.ToLower(format)
	if format != "" && format != FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

func (l *Loader) readDelimited(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open delimited file", err).WithContext("path", path)
	}
	defer file.Close()

	return l.parseDelimited(file)
}

func (l *Loader) parseDelimited(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read delimited file", err)
	}
	return records, nil
}

func (l *Loader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheetName := l.opts.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheetName)
	}

	l.logger.Debug("Read workbook sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return rows, nil
}

// buildFrame turns raw records (header first) into a typed DataFrame.
func (l *Loader) buildFrame(records [][]string) (dataframe.DataFrame, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return dataframe.DataFrame{}, errors.NewParsingError("dataset has no header row", nil)
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = name
	}

	missing := make(map[string]struct{}, len(l.opts.MissingTokens))
	for _, token := range l.opts.MissingTokens {
		missing[token] = struct{}{}
	}

	// Ragged rows are padded with missing cells or truncated to the header.
	normalized := make([][]string, 0, len(records))
	normalized = append(normalized, header)
	for _, record := range records[1:] {
		row := make([]string, len(header))
		for i := range header {
			cell := missingMarker
			if i < len(record) {
				if _, isMissing := missing[strings.TrimSpace(record[i])]; !isMissing {
					cell = record[i]
				}
			}
			row[i] = cell
		}
		normalized = append(normalized, row)
	}

	types := make(map[string]series.Type, len(header))
	for i, name := range header {
		column := make([]string, 0, len(normalized)-1)
		for _, row := range normalized[1:] {
			column = append(column, row[i])
		}
		types[name] = detectColumnType(column)

		// Numbers padded with spaces still parse, so their cells are trimmed.
		if types[name] != series.String {
			for _, row := range normalized[1:] {
				row[i] = strings.TrimSpace(row[i])
			}
		}
	}

	// gota refuses header-only records, so an empty dataset is built by column.
	if len(normalized) == 1 {
		cols := make([]series.Series, len(header))
		for i, name := range header {
			cols[i] = series.New([]string{}, series.String, name)
		}
		df := dataframe.New(cols...)
		if df.Err != nil {
			return dataframe.DataFrame{}, errors.NewParsingError("failed to build dataset", df.Err)
		}
		return df, nil
	}

	df := dataframe.LoadRecords(normalized,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(types),
		dataframe.NaNValues([]string{missingMarker}),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.NewParsingError("failed to build dataset", df.Err)
	}
	return df, nil
}

// detectColumnType picks int, float or string from the present values.
// A column with no present values is a string column.
func detectColumnType(values []string) series.Type {
	var hasInts, hasFloats, hasStrings bool
	for _, v := range values {
		if v == missingMarker {
			continue
		}
		v = strings.TrimSpace(v)
		if _, err := strconv.Atoi(v); err == nil {
			hasInts = true
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			hasFloats = true
			continue
		}
		hasStrings = true
	}

	switch {
	case hasStrings:
		return series.String
	case hasFloats:
		return series.Float
	case hasInts:
		return series.Int
	default:
		return series.String
	}
}

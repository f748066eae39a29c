package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a new CSV writer that resolves relative paths against baseDir
func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{
		baseDir: baseDir,
		logger:  infrastructure.WithComponent(slog.Default(), "csv_writer"),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(ctx context.Context, filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return errors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}
	defer file.Close()

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err).WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write headers", err).WithContext("path", fullPath)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err).WithContext("path", fullPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV", err).WithContext("path", fullPath)
	}
	return nil
}

// WriteFrame writes every row of df with a header row. Floats use their
// shortest form and missing values are written as empty cells.
func (w *CSVWriter) WriteFrame(ctx context.Context, filePath string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return errors.NewStorageError("cannot export invalid dataset", df.Err)
	}

	names := df.Names()
	records := make([][]string, df.Nrow())
	for i := range records {
		records[i] = make([]string, len(names))
	}
	for j, name := range names {
		col := df.Col(name)
		for i := 0; i < col.Len(); i++ {
			records[i][j] = formatCell(col.Elem(i))
		}
	}

	return w.WriteCSV(ctx, filePath, WriteOptions{
		Headers: names,
		Records: records,
	})
}

// resolvePath resolves a relative path against the base directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}

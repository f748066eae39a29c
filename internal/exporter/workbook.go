package exporter

import (
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"catalogstats/internal/dataprocessing"
	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
	"catalogstats/pkg/contracts"
	"catalogstats/pkg/contracts/domain"
)

// Sheet names of the summary workbook
const (
	SheetMoments     = "Moments"
	SheetCleaning    = "Cleaning"
	SheetCorrelation = "Correlation"
)

// Summary is everything the summary workbook records about one run
type Summary struct {
	Column      string
	Moments     domain.Moments
	Stats       domain.CleanStats
	Correlation domain.CorrelationMatrix
}

// WorkbookWriter writes the Excel summary of an analysis
type WorkbookWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewWorkbookWriter creates a writer that resolves relative paths against baseDir
func NewWorkbookWriter(baseDir string) *WorkbookWriter {
	return &WorkbookWriter{
		baseDir: baseDir,
		logger:  infrastructure.WithComponent(slog.Default(), "workbook_writer"),
	}
}

// WriteSummary saves a workbook with one sheet each for the moments, the
// cleaning counts and the correlation matrix.
func (w *WorkbookWriter) WriteSummary(ctx context.Context, filePath string, s Summary) error {
	fullPath := filePath
	if !filepath.IsAbs(filePath) && w.baseDir != "" {
		fullPath = filepath.Join(w.baseDir, filePath)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMoments); err != nil {
		return errors.NewStorageError("failed to name moments sheet", err)
	}
	if err := writeMomentsSheet(f, s); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCleaning); err != nil {
		return errors.NewStorageError("failed to add cleaning sheet", err)
	}
	if err := writeCleaningSheet(f, s.Stats); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCorrelation); err != nil {
		return errors.NewStorageError("failed to add correlation sheet", err)
	}
	if err := writeCorrelationSheet(f, s.Correlation); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return errors.NewStorageError("failed to save workbook", err).WithContext("path", fullPath)
	}

	w.logger.InfoContext(ctx, "Summary workbook written",
		slog.String("path", fullPath),
		slog.String("column", s.Column))
	return nil
}

func writeMomentsSheet(f *excelize.File, s Summary) error {
	c := dataprocessing.Classify(s.Moments)
	rows := [][]interface{}{
		{"Attribute", s.Column},
		{"Count", s.Moments.Count},
		{"Mean", cellNumber(s.Moments.Mean)},
		{"Standard Deviation", cellNumber(s.Moments.StdDev)},
		{"Skewness", cellNumber(s.Moments.Skewness)},
		{"Excess Kurtosis", cellNumber(s.Moments.ExcessKurtosis)},
		{"Skew", string(c.Skew)},
		{"Tail", string(c.Tail)},
		{"Format Version", contracts.DataFormatVersion},
	}
	return setRows(f, SheetMoments, rows)
}

func writeCleaningSheet(f *excelize.File, stats domain.CleanStats) error {
	rows := [][]interface{}{
		{"Rows In", stats.RowsIn},
		{"Rows Dropped", stats.RowsDropped},
		{"Rows Out", stats.RowsOut},
		{"Duration Extraction Failures", stats.ExtractionFailures},
	}
	return setRows(f, SheetCleaning, rows)
}

func writeCorrelationSheet(f *excelize.File, m domain.CorrelationMatrix) error {
	header := make([]interface{}, 0, m.Len()+1)
	header = append(header, "")
	for _, name := range m.Columns {
		header = append(header, name)
	}

	rows := [][]interface{}{header}
	for i, name := range m.Columns {
		row := make([]interface{}, 0, m.Len()+1)
		row = append(row, name)
		for j := range m.Columns {
			row = append(row, cellNumber(m.At(i, j)))
		}
		rows = append(rows, row)
	}
	return setRows(f, SheetCorrelation, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.NewStorageError("invalid cell coordinates", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write row", err).
				WithContext("sheet", sheet).
				WithContext("row", i+1)
		}
	}
	return nil
}

// cellNumber keeps NaN out of numeric cells, which spreadsheets cannot hold.
func cellNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return v
}

// Package exporter writes the results of a catalog analysis.
//
// This package contains three main components:
//
// WriteMomentsReport: the console paragraph with the four moments of the
// analyzed column and the reading of its shape.
//
// CSVWriter: CSV writing with optional UTF-8 BOM for Excel compatibility,
// used to export the cleaned dataset.
//
// WorkbookWriter: an Excel summary with the moments, the cleaning counts and
// the correlation matrix on separate sheets.
//
// Example usage:
//
//	if err := exporter.WriteMomentsReport(os.Stdout, "duration", moments); err != nil {
//	    return err
//	}
//
//	csvWriter := exporter.NewCSVWriter("output")
//	err := csvWriter.WriteFrame(ctx, "netflix_titles_clean.csv", cleaned)
//
//	workbook := exporter.NewWorkbookWriter("output")
//	err = workbook.WriteSummary(ctx, "summary.xlsx", summary)
package exporter

package exporter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gota/gota/series"
)

// formatMoment formats a moment with exactly 2 decimal places. NaN prints as nan.
func formatMoment(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", f)
}

// formatFloat formats a float64 value for CSV output with the shortest
// representation that round-trips, so 90 is written as 90 and not 90.000000.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatCell formats one dataset element for CSV output. Missing values are empty.
func formatCell(e series.Element) string {
	if e.IsNA() {
		return ""
	}
	if e.Type() == series.Float {
		return formatFloat(e.Float())
	}
	return e.String()
}

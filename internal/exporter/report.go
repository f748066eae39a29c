package exporter

import (
	"fmt"
	"io"

	"catalogstats/internal/dataprocessing"
	"catalogstats/pkg/contracts/domain"
)

// WriteMomentsReport prints the moments of column and the shape they imply:
//
//	For the attribute " duration " :
//	Mean = 77.98, Standard Deviation = 50.81, Skewness = 0.29, and Excess Kurtosis = -1.30.
//	The data was right-skewed and platykurtic.
func WriteMomentsReport(w io.Writer, column string, m domain.Moments) error {
	c := dataprocessing.Classify(m)

	_, err := fmt.Fprintf(w,
		"\nFor the attribute \" %s \" :\n"+
			"Mean = %s, Standard Deviation = %s, Skewness = %s, and Excess Kurtosis = %s.\n"+
			"The data was %s and %s.\n",
		column,
		formatMoment(m.Mean),
		formatMoment(m.StdDev),
		formatMoment(m.Skewness),
		formatMoment(m.ExcessKurtosis),
		c.Skew, c.Tail)
	if err != nil {
		return fmt.Errorf("failed to write moments report: %w", err)
	}
	return nil
}

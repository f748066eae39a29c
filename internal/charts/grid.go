package charts

import (
	"math"
	"strconv"

	"gonum.org/v1/plot/plotter"

	"catalogstats/pkg/contracts/domain"
)

// correlationGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 of
// the matrix is drawn at the top.
type correlationGrid struct {
	m domain.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int) { return g.m.Len(), g.m.Len() }

func (g correlationGrid) Z(c, r int) float64 { return g.m.At(g.m.Len()-1-r, c) }

func (g correlationGrid) X(c int) float64 { return float64(c) }

func (g correlationGrid) Y(r int) float64 { return float64(r) }

// Min and Max pin the color scale to the full correlation range.
func (g correlationGrid) Min() float64 { return -1 }

func (g correlationGrid) Max() float64 { return 1 }

// rowNames returns the column names bottom to top, matching Y.
func (g correlationGrid) rowNames() []string {
	n := g.m.Len()
	names := make([]string, n)
	for r := range names {
		names[r] = g.m.Columns[n-1-r]
	}
	return names
}

// annotations places each cell value, to two decimals, at the cell center.
func (g correlationGrid) annotations() plotter.XYLabels {
	c, r := g.Dims()
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, c*r),
		Labels: make([]string, 0, c*r),
	}
	for col := 0; col < c; col++ {
		for row := 0; row < r; row++ {
			labels.XYs = append(labels.XYs, plotter.XY{X: g.X(col), Y: g.Y(row)})
			labels.Labels = append(labels.Labels, formatCorrelation(g.Z(col, row)))
		}
	}
	return labels
}

func formatCorrelation(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

package domain

import "math"

// Moments holds the descriptive statistics of one numeric column.
// Undefined values are NaN.
type Moments struct {
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis"`
	// Count is the number of non-missing values the moments were computed on.
	Count int `json:"count"`
}

// Tuple returns the moments in the fixed report order.
func (m Moments) Tuple() [4]float64 {
	return [4]float64{m.Mean, m.StdDev, m.Skewness, m.ExcessKurtosis}
}

// Degenerate reports whether any moment is undefined.
func (m Moments) Degenerate() bool {
	for _, v := range m.Tuple() {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// SkewShape classifies the sign of the skewness
type SkewShape string

const (
	SkewRight SkewShape = "right-skewed"
	SkewLeft  SkewShape = "left-skewed"
	SkewNone  SkewShape = "not skewed"
)

// TailShape classifies the sign of the excess kurtosis
type TailShape string

const (
	TailLeptokurtic TailShape = "leptokurtic"
	TailPlatykurtic TailShape = "platykurtic"
	TailMesokurtic  TailShape = "mesokurtic"
)

// Classification is the human-readable reading of a Moments value
type Classification struct {
	Skew SkewShape `json:"skew"`
	Tail TailShape `json:"tail"`
}

// CorrelationMatrix holds pairwise Pearson correlations between numeric
// columns. Values[i][j] is the correlation of Columns[i] with Columns[j];
// undefined entries are NaN.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Len returns the number of columns in the matrix.
func (m CorrelationMatrix) Len() int {
	return len(m.Columns)
}

// At returns the correlation between columns i and j.
func (m CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

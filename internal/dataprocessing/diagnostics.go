package dataprocessing

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"catalogstats/pkg/contracts/domain"
)

// describeRows are the statistics listed by Describe, in order.
var describeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// ColumnInfo describes one column of a dataset
type ColumnInfo struct {
	Name    string
	Type    series.Type
	Missing int
}

// NumericColumns returns the names of int and float columns in frame order.
func NumericColumns(df dataframe.DataFrame) []string {
	var names []string
	for _, name := range df.Names() {
		if isNumeric(df.Col(name)) {
			names = append(names, name)
		}
	}
	return names
}

// CorrelationMatrix computes Pearson correlations between every pair of
// numeric columns, using only rows where both values are present.
func CorrelationMatrix(df dataframe.DataFrame) domain.CorrelationMatrix {
	names := NumericColumns(df)
	columns := make([][]float64, len(names))
	for i, name := range names {
		columns[i] = df.Col(name).Float()
	}

	values := make([][]float64, len(names))
	for i := range values {
		values[i] = make([]float64, len(names))
	}

	for i := range names {
		for j := i; j < len(names); j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return domain.CorrelationMatrix{Columns: names, Values: values}
}

func pairwiseCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// CorrelationFrame lays a correlation matrix out as a table for printing.
func CorrelationFrame(m domain.CorrelationMatrix) dataframe.DataFrame {
	cols := make([]series.Series, 0, m.Len()+1)
	cols = append(cols, series.New(m.Columns, series.String, "column"))
	for j, name := range m.Columns {
		values := make([]float64, m.Len())
		for i := range m.Columns {
			values[i] = m.At(i, j)
		}
		cols = append(cols, series.New(values, series.Float, name))
	}
	return dataframe.New(cols...)
}

// Describe summarizes each numeric column over its present values.
func Describe(df dataframe.DataFrame) dataframe.DataFrame {
	cols := []series.Series{series.New(describeRows, series.String, "statistic")}
	for _, name := range NumericColumns(df) {
		cols = append(cols, series.New(describeColumn(presentValues(df.Col(name))), series.Float, name))
	}
	return dataframe.New(cols...)
}

func describeColumn(values []float64) []float64 {
	out := make([]float64, len(describeRows))
	for i := range out {
		out[i] = math.NaN()
	}
	out[0] = float64(len(values))
	if len(values) == 0 {
		return out
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	out[1] = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		out[2] = stat.StdDev(sorted, nil)
	}
	out[3] = sorted[0]
	out[4] = quantile(0.25, sorted)
	out[5] = quantile(0.5, sorted)
	out[6] = quantile(0.75, sorted)
	out[7] = sorted[len(sorted)-1]
	return out
}

// quantile interpolates linearly between the order statistics around
// position (n-1)p of sorted. sorted must not be empty.
func quantile(p float64, sorted []float64) float64 {
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

// Head returns the first n rows of df.
func Head(df dataframe.DataFrame, n int) dataframe.DataFrame {
	if n > df.Nrow() {
		n = df.Nrow()
	}
	if n <= 0 {
		return df.Subset([]int{})
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return df.Subset(rows)
}

// Schema lists every column with its detected type and missing count.
func Schema(df dataframe.DataFrame) []ColumnInfo {
	infos := make([]ColumnInfo, 0, df.Ncol())
	for _, name := range df.Names() {
		col := df.Col(name)
		missing := 0
		for i := 0; i < col.Len(); i++ {
			if col.Elem(i).IsNA() {
				missing++
			}
		}
		infos = append(infos, ColumnInfo{Name: name, Type: col.Type(), Missing: missing})
	}
	return infos
}

// WriteDiagnostics prints the optional schema, a preview of previewRows rows,
// the describe table and the correlation matrix of df to w.
func WriteDiagnostics(w io.Writer, df dataframe.DataFrame, previewRows int, schema bool) error {
	if schema {
		if _, err := fmt.Fprintln(w, "Schema:"); err != nil {
			return err
		}
		for _, info := range Schema(df) {
			if _, err := fmt.Fprintf(w, "  %-24s %-8s missing=%d\n", info.Name, info.Type, info.Missing); err != nil {
				return err
			}
		}
	}

	if previewRows > 0 {
		if _, err := fmt.Fprintf(w, "Preview of the first rows of the dataset:\n%s\n", Head(df, previewRows)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Descriptive statistics for numerical variables:\n%s\n", Describe(df)); err != nil {
		return err
	}

	if len(NumericColumns(df)) == 0 {
		_, err := fmt.Fprintln(w, "No numeric columns for correlation")
		return err
	}
	_, err := fmt.Fprintf(w, "Correlation matrix:\n%s\n", CorrelationFrame(CorrelationMatrix(df)))
	return err
}

package dataprocessing

import (
	"context"
	"log/slog"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
	"catalogstats/pkg/contracts/domain"
)

// Minimum sample sizes for each moment to be defined
const (
	minStdDevSamples   = 2
	minSkewSamples     = 3
	minKurtosisSamples = 4
)

// Summarizer computes descriptive statistics for numeric columns.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: infrastructure.WithComponent(logger, "summarizer")}
}

// ComputeMoments returns the sample moments of column, skipping missing values.
func (s *Summarizer) ComputeMoments(ctx context.Context, df dataframe.DataFrame, column string) (domain.Moments, error) {
	if !hasColumn(df, column) {
		return domain.Moments{}, errors.NewMissingColumnError(column)
	}

	col := df.Col(column)
	if !isNumeric(col) {
		return domain.Moments{}, errors.NewAppError(errors.ErrTypeTypeConversion, "column is not numeric", nil).
			WithContext("column", column).
			WithContext("type", string(col.Type()))
	}

	values := presentValues(col)
	m := Moments(values)

	s.logger.InfoContext(ctx, "Computed moments",
		slog.String("column", column),
		slog.Int("count", m.Count),
		slog.Int("missing", col.Len()-m.Count),
		slog.Float64("mean", m.Mean),
		slog.Float64("std_dev", m.StdDev))

	if m.Degenerate() {
		s.logger.WarnContext(ctx, "Some moments are undefined for this column",
			slog.String("column", column),
			slog.Int("count", m.Count))
	}

	return m, nil
}

// Moments computes bias-corrected sample moments of values. A moment is NaN
// when there are too few values for it or when all values are equal.
func Moments(values []float64) domain.Moments {
	m := domain.Moments{
		Mean:           math.NaN(),
		StdDev:         math.NaN(),
		Skewness:       math.NaN(),
		ExcessKurtosis: math.NaN(),
		Count:          len(values),
	}
	if len(values) == 0 {
		return m
	}

	m.Mean = stat.Mean(values, nil)
	if len(values) < minStdDevSamples {
		return m
	}

	if constant(values) {
		m.StdDev = 0
		return m
	}
	m.StdDev = stat.StdDev(values, nil)

	if len(values) >= minSkewSamples {
		m.Skewness = stat.Skew(values, nil)
	}
	if len(values) >= minKurtosisSamples {
		m.ExcessKurtosis = stat.ExKurtosis(values, nil)
	}
	return m
}

// Classify reads the shape of a distribution from its moments.
// NaN values compare false both ways and classify as symmetric.
func Classify(m domain.Moments) domain.Classification {
	var c domain.Classification

	switch {
	case m.Skewness > 0:
		c.Skew = domain.SkewRight
	case m.Skewness < 0:
		c.Skew = domain.SkewLeft
	default:
		c.Skew = domain.SkewNone
	}

	switch {
	case m.ExcessKurtosis > 0:
		c.Tail = domain.TailLeptokurtic
	case m.ExcessKurtosis < 0:
		c.Tail = domain.TailPlatykurtic
	default:
		c.Tail = domain.TailMesokurtic
	}

	return c
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func isNumeric(s series.Series) bool {
	return s.Type() == series.Int || s.Type() == series.Float
}

// presentValues returns the non-missing values of a numeric series.
func presentValues(s series.Series) []float64 {
	values := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.Float()
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

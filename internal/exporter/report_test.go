package exporter

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/dataprocessing"
	"catalogstats/pkg/contracts/domain"
)

func TestWriteMomentsReport(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		moments domain.Moments
		want    string
	}{
		{
			name:    "right skewed outlier",
			column:  "duration",
			moments: dataprocessing.Moments([]float64{1, 1, 1, 1, 100}),
			want: "\nFor the attribute \" duration \" :\n" +
				"Mean = 20.80, Standard Deviation = 44.27, Skewness = 2.24, and Excess Kurtosis = 5.00.\n" +
				"The data was right-skewed and leptokurtic.\n",
		},
		{
			name:    "constant column",
			column:  "duration",
			moments: dataprocessing.Moments([]float64{1, 1, 1, 1}),
			want: "\nFor the attribute \" duration \" :\n" +
				"Mean = 1.00, Standard Deviation = 0.00, Skewness = nan, and Excess Kurtosis = nan.\n" +
				"The data was not skewed and mesokurtic.\n",
		},
		{
			name:   "left skewed light tails",
			column: "release_year",
			moments: domain.Moments{
				Mean: 2014.456, StdDev: 8.8, Skewness: -3.4449, ExcessKurtosis: -0.005,
			},
			want: "\nFor the attribute \" release_year \" :\n" +
				"Mean = 2014.46, Standard Deviation = 8.80, Skewness = -3.44, and Excess Kurtosis = -0.01.\n" +
				"The data was left-skewed and platykurtic.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, WriteMomentsReport(&buf, tt.column, tt.moments))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatMoment(t *testing.T) {
	assert.Equal(t, "13.40", formatMoment(13.4))
	assert.Equal(t, "-0.00", formatMoment(-0.001))
	assert.Equal(t, "nan", formatMoment(math.NaN()))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "90", formatFloat(90))
	assert.Equal(t, "1.5", formatFloat(1.5))
	assert.Equal(t, "", formatFloat(math.NaN()))
}

package dataprocessing

import (
	"context"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/pkg/contracts/domain"
)

func TestDeriveYearAdded(t *testing.T) {
	df := loadCSV(t, `title,date_added
A,"September 25, 2021"
B," August 4, 2017"
C,2019-11-01
D,not a date
E,
F,3/
G,1:
`)

	out := DeriveYearAdded(context.Background(), nil, df)
	require.NoError(t, out.Err)

	years := out.Col(domain.ColumnYearAdded)
	assert.Equal(t, series.Int, years.Type())
	assert.Equal(t, 2021, mustInt(t, years.Elem(0)))
	assert.Equal(t, 2017, mustInt(t, years.Elem(1)))
	assert.Equal(t, 2019, mustInt(t, years.Elem(2)))
	assert.True(t, years.Elem(3).IsNA())
	assert.True(t, years.Elem(4).IsNA())
	assert.True(t, years.Elem(5).IsNA(), "date fragment is missing, not year 0")
	assert.True(t, years.Elem(6).IsNA(), "time fragment is missing, not year 0")
	assert.Equal(t, []domain.YearCount{
		{Year: 2017, Count: 1},
		{Year: 2019, Count: 1},
		{Year: 2021, Count: 1},
	}, YearCounts(out))

	assert.NotContains(t, df.Names(), domain.ColumnYearAdded, "input frame is not modified")
}

func TestDeriveYearAdded_NoDateColumn(t *testing.T) {
	df := loadCSV(t, "title\nA\n")

	out := DeriveYearAdded(context.Background(), nil, df)

	assert.Equal(t, []string{"title"}, out.Names())
}

func TestYearCounts(t *testing.T) {
	df := loadCSV(t, "title,year_added\nA,2021\nB,2019\nC,2021\nD,\nE,2020\n")

	assert.Equal(t, []domain.YearCount{
		{Year: 2019, Count: 1},
		{Year: 2020, Count: 1},
		{Year: 2021, Count: 2},
	}, YearCounts(df))

	assert.Nil(t, YearCounts(loadCSV(t, "title\nA\n")))
}

func TestTopCountries(t *testing.T) {
	df := loadCSV(t, `country
India
United States
Japan
United States
India
United States
Brazil
`)

	tests := []struct {
		name  string
		limit int
		want  []domain.CountryCount
	}{
		{
			name:  "all",
			limit: 10,
			want: []domain.CountryCount{
				{Country: "United States", Count: 3},
				{Country: "India", Count: 2},
				{Country: "Japan", Count: 1},
				{Country: "Brazil", Count: 1},
			},
		},
		{
			name:  "limited keeps first seen ties",
			limit: 3,
			want: []domain.CountryCount{
				{Country: "United States", Count: 3},
				{Country: "India", Count: 2},
				{Country: "Japan", Count: 1},
			},
		},
		{
			name:  "zero limit",
			limit: 0,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopCountries(df, tt.limit))
		})
	}
}

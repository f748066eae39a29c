package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"catalogstats/pkg/contracts/domain"
)

// DeriveYearAdded returns a copy of df with a year_added column holding the
// calendar year of date_added. Unparseable or missing dates become missing.
// A frame without date_added is returned unchanged.
func DeriveYearAdded(ctx context.Context, logger *slog.Logger, df dataframe.DataFrame) dataframe.DataFrame {
	if logger == nil {
		logger = slog.Default()
	}
	if !hasColumn(df, domain.ColumnDateAdded) {
		logger.InfoContext(ctx, "No date column, skipping year derivation",
			slog.String("column", domain.ColumnDateAdded))
		return df
	}

	dates := df.Col(domain.ColumnDateAdded)
	years := make([]string, dates.Len())
	unparsed := 0
	for i := 0; i < dates.Len(); i++ {
		e := dates.Elem(i)
		if e.IsNA() {
			years[i] = missingMarker
			continue
		}
		// dateparse accepts some fragments such as "3/" and returns a year-0 time.
		t, err := dateparse.ParseAny(strings.TrimSpace(e.String()))
		if err != nil || t.IsZero() || t.Year() < 1 {
			unparsed++
			years[i] = missingMarker
			continue
		}
		years[i] = strconv.Itoa(t.Year())
	}

	if unparsed > 0 {
		logger.WarnContext(ctx, "Some dates could not be parsed",
			slog.String("column", domain.ColumnDateAdded),
			slog.Int("count", unparsed))
	}

	return df.Mutate(series.New(years, series.Int, domain.ColumnYearAdded))
}

// YearCounts counts rows per year_added value in ascending year order.
func YearCounts(df dataframe.DataFrame) []domain.YearCount {
	if !hasColumn(df, domain.ColumnYearAdded) {
		return nil
	}

	col := df.Col(domain.ColumnYearAdded)
	counts := make(map[int]int)
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		year, err := e.Int()
		if err != nil {
			continue
		}
		counts[year]++
	}

	result := make([]domain.YearCount, 0, len(counts))
	for year, n := range counts {
		result = append(result, domain.YearCount{Year: year, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result
}

// TopCountries returns the limit most frequent country values, most frequent
// first. Ties keep the order in which values first appear.
func TopCountries(df dataframe.DataFrame, limit int) []domain.CountryCount {
	if !hasColumn(df, domain.ColumnCountry) || limit <= 0 {
		return nil
	}

	col := df.Col(domain.ColumnCountry)
	index := make(map[string]int)
	var result []domain.CountryCount
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		country := e.String()
		pos, ok := index[country]
		if !ok {
			pos = len(result)
			index[country] = pos
			result = append(result, domain.CountryCount{Country: country})
		}
		result[pos].Count++
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

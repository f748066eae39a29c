package domain

// Well-known catalog columns
const (
	ColumnReleaseYear = "release_year"
	ColumnDuration    = "duration"
	ColumnCountry     = "country"
	ColumnDateAdded   = "date_added"
	ColumnYearAdded   = "year_added"
)

// DefaultRequiredColumns are the fields every cleaned row must carry.
var DefaultRequiredColumns = []string{ColumnReleaseYear, ColumnDuration, ColumnCountry}

// CleanStats summarizes what the cleaner did to a dataset
type CleanStats struct {
	RowsIn             int `json:"rows_in"`
	RowsDropped        int `json:"rows_dropped"`
	RowsOut            int `json:"rows_out"`
	ExtractionFailures int `json:"extraction_failures"`
}

// CountryCount is one bar of the categorical chart
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// YearCount is one point of the relational chart
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestNewCSVWriter(t *testing.T) {
	writer := NewCSVWriter("output")

	assert.NotNil(t, writer)
	assert.Equal(t, "output", writer.baseDir)
	assert.NotNil(t, writer.logger)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()
	writer := NewCSVWriter(tempDir)

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		wantBOM  bool
	}{
		{
			name:     "headers and records",
			filePath: "simple.csv",
			options: WriteOptions{
				Headers: []string{"country", "count"},
				Records: [][]string{{"India", "2"}, {"Japan", "1"}},
			},
		},
		{
			name:     "nested directory with BOM",
			filePath: filepath.Join("reports", "nested", "bom.csv"),
			options: WriteOptions{
				Headers:   []string{"country"},
				Records:   [][]string{{"Brazil"}},
				BOMPrefix: true,
			},
			wantBOM: true,
		},
		{
			name:     "records with commas and quotes",
			filePath: "quoted.csv",
			options: WriteOptions{
				Headers: []string{"title"},
				Records: [][]string{{`Blood & Water, "Season 1"`}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, writer.WriteCSV(ctx, tt.filePath, tt.options))

			fullPath := filepath.Join(tempDir, tt.filePath)
			content, err := os.ReadFile(fullPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBOM, strings.HasPrefix(string(content), "\xEF\xBB\xBF"))

			if tt.wantBOM {
				return
			}
			records := readCSV(t, fullPath)
			assert.Equal(t, tt.options.Headers, records[0])
			assert.Equal(t, tt.options.Records, records[1:])
		})
	}
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.csv")
	writer := NewCSVWriter("ignored")

	require.NoError(t, writer.WriteCSV(context.Background(), path, WriteOptions{Headers: []string{"a"}}))

	assert.FileExists(t, path)
}

func TestCSVWriter_WriteFrame(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"s1", "s2"}, series.String, "show_id"),
		series.New([]int{2020, 2021}, series.Int, "release_year"),
		series.New([]string{"90", "NaN"}, series.Float, "duration"),
		series.New([]string{"United States", "NaN"}, series.String, "country"),
	)
	require.NoError(t, df.Err)

	dir := t.TempDir()
	writer := NewCSVWriter(dir)
	require.NoError(t, writer.WriteFrame(context.Background(), "clean.csv", df))

	assert.Equal(t, [][]string{
		{"show_id", "release_year", "duration", "country"},
		{"s1", "2020", "90", "United States"},
		{"s2", "2021", "", ""},
	}, readCSV(t, filepath.Join(dir, "clean.csv")))
}

func TestCSVWriter_WriteFrameInvalid(t *testing.T) {
	writer := NewCSVWriter(t.TempDir())
	df := dataframe.New()

	assert.Error(t, writer.WriteFrame(context.Background(), "bad.csv", df))
}

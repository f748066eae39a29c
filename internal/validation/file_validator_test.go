package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		format  string
		errType errors.ErrorType
	}{
		{
			name: "csv by extension",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles.csv", "a,b\n1,2\n")
			},
			format: "auto",
		},
		{
			name: "explicit csv without extension",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles", "a;b\n1;2\n")
			},
			format: "csv",
		},
		{
			name: "xlsx by extension",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles.xlsx", "PK")
			},
			format: "auto",
		},
		{
			name: "missing file",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "absent.csv")
			},
			format:  "auto",
			errType: errors.ErrTypeNotFound,
		},
		{
			name: "directory",
			setup: func(t *testing.T, dir string) string {
				return dir
			},
			format:  "auto",
			errType: errors.ErrTypeValidation,
		},
		{
			name: "empty file",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles.csv", "")
			},
			format:  "auto",
			errType: errors.ErrTypeValidation,
		},
		{
			name: "xlsx format on a csv file",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles.csv", "a\n1\n")
			},
			format:  "xlsx",
			errType: errors.ErrTypeValidation,
		},
		{
			name: "csv format on a workbook",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles.xlsx", "PK")
			},
			format:  "csv",
			errType: errors.ErrTypeValidation,
		},
		{
			name: "excel lock file",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "~$titles.xlsx", "lock")
			},
			format:  "auto",
			errType: errors.ErrTypeValidation,
		},
		{
			name: "unknown format",
			setup: func(t *testing.T, dir string) string {
				return writeFile(t, dir, "titles.json", "{}")
			},
			format:  "json",
			errType: errors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			path := tt.setup(t, t.TempDir())

			err := v.ValidateInputFile(path, tt.format)

			if tt.errType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates nested directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "charts", "run")

		require.NoError(t, v.ValidateOutputDirectory(dir))

		assert.DirExists(t, dir)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "write probe must be removed")
	})

	t.Run("path blocked by a file", func(t *testing.T) {
		blocker := writeFile(t, t.TempDir(), "charts", "x")

		err := v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
	})

	t.Run("output file parent", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "exports", "summary.xlsx")

		require.NoError(t, v.ValidateOutputFile(target))

		assert.DirExists(t, filepath.Dir(target))
		assert.NoFileExists(t, target)
	})
}

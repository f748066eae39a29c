package validation

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"catalogstats/internal/dataprocessing"
	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
)

// workbookExtensions are the spreadsheet extensions the loader can read
var workbookExtensions = map[string]bool{".xlsx": true, ".xlsm": true}

// FileValidator checks input and output locations before a run starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: infrastructure.WithComponent(logger, "validation"),
	}
}

// ValidateFile checks that path is an existing, readable, non-empty regular file
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return errors.NewNotFoundError("input file", err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError("failed to stat input file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return errors.NewAppValidationError("input path is a directory").WithContext("path", path)
	}
	if info.Size() == 0 {
		v.logger.Error("File is empty",
			slog.String("file", path))
		return errors.NewAppValidationError("input file is empty").WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError("input file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputFile checks the dataset file and that its extension agrees
// with the configured format.
func (v *FileValidator) ValidateInputFile(path, format string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch dataprocessing.ResolveFormat(format, path) {
	case dataprocessing.FormatXLSX:
		if !workbookExtensions[ext] {
			v.logger.Error("File is not an Excel workbook",
				slog.String("file", path),
				slog.String("extension", ext))
			return errors.NewAppValidationError("input is not an xlsx workbook").
				WithContext("path", path).
				WithContext("extension", ext)
		}
		if strings.HasPrefix(filepath.Base(path), "~$") {
			v.logger.Error("Refusing temporary Excel file",
				slog.String("file", path))
			return errors.NewAppValidationError("input is a temporary Excel lock file").
				WithContext("path", path)
		}
	case dataprocessing.FormatCSV:
		if workbookExtensions[ext] || ext == ".xls" {
			v.logger.Error("Workbook read as delimited text",
				slog.String("file", path),
				slog.String("format", format))
			return errors.NewAppValidationError("csv format selected for a workbook file").
				WithContext("path", path).
				WithContext("extension", ext)
		}
	default:
		return errors.NewAppValidationError("unsupported input format").WithContext("format", format)
	}
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it when needed, and
// that files can be written into it.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("failed to create output directory", err).WithContext("path", dir)
	}

	file, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("output directory is not writable", err).WithContext("path", dir)
	}
	name := file.Name()
	file.Close()
	os.Remove(name)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputFile checks that the directory of path can receive the file
func (v *FileValidator) ValidateOutputFile(path string) error {
	return v.ValidateOutputDirectory(filepath.Dir(path))
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
	ErrTypeParsing        ErrorType = "PARSING"
	ErrTypeMissingColumn  ErrorType = "MISSING_COLUMN"
	ErrTypeTypeConversion ErrorType = "TYPE_CONVERSION"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeRender         ErrorType = "RENDER"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Helper functions for common error types

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), cause).
		WithContext("resource", resource)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewMissingColumnError reports a column the table does not carry.
func NewMissingColumnError(column string) *AppError {
	return NewAppError(ErrTypeMissingColumn, fmt.Sprintf("column %q not present in dataset", column), nil).
		WithContext("column", column)
}

// NewTypeConversionError reports a cell that cannot take the requested type.
func NewTypeConversionError(column string, row int, value string, cause error) *AppError {
	return NewAppError(ErrTypeTypeConversion,
		fmt.Sprintf("cannot convert %q in column %q at row %d", value, column, row), cause).
		WithContext("column", column).
		WithContext("row", row)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewRenderError creates a chart rendering error
func NewRenderError(chart string, cause error) *AppError {
	return NewAppError(ErrTypeRender, fmt.Sprintf("failed to render %s chart", chart), cause).
		WithContext("chart", chart)
}

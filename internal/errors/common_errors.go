package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors by pipeline stage.
type ErrorType string

const (
	// ErrTypeUnsupportedFile marks uploads that are neither a spreadsheet
	// nor a delimited text file. The pipeline does not run.
	ErrTypeUnsupportedFile ErrorType = "UNSUPPORTED_FILE_TYPE"
	// ErrTypeLoad marks failures turning file bytes into a raw table.
	ErrTypeLoad ErrorType = "LOAD_FAILURE"
	// ErrTypePreparation marks structural failures during feature
	// derivation, such as the resolved date column being absent.
	ErrTypePreparation ErrorType = "PREPARATION"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeStorage     ErrorType = "STORAGE"
	ErrTypeConfig      ErrorType = "CONFIG"
)

// AppError is the in-process error carried through the pipeline. File-level
// and structural errors halt the current upload; per-value parse failures are
// never represented as errors (they degrade to nulls and defaults locally).
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

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper constructors for the pipeline error taxonomy

// NewUnsupportedFileError creates an unsupported upload type error
func NewUnsupportedFileError(filename string) *AppError {
	return NewAppError(ErrTypeUnsupportedFile,
		fmt.Sprintf("unsupported file type: %s (expected .xlsx or .csv)", filename), nil)
}

// NewLoadError creates a table load error
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause)
}

// NewPreparationError creates a feature-derivation error
func NewPreparationError(message string, cause error) *AppError {
	return NewAppError(ErrTypePreparation, message, cause)
}

// NewMissingDateColumnError reports that the role-resolved date column is not
// present in the table at enrichment time.
func NewMissingDateColumnError(column string) *AppError {
	return NewPreparationError(fmt.Sprintf("date column %q not found in table", column), nil).
		WithContext("column", column)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

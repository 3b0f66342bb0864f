package tracelet

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of error for metrics and logging.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeValidation ErrorCode = "VALIDATION" // Schema validation errors
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration errors
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"  // Unknown trace or span
	ErrCodeState      ErrorCode = "STATE"      // Lifecycle violations
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal library errors
)

// TraceletError is the common interface for structured errors in this
// library. Use it to handle errors generically while still accessing the
// error category.
//
// Example:
//
//	var terr tracelet.TraceletError
//	if errors.As(err, &terr) {
//	    log.Printf("error code: %s", terr.Code())
//	}
type TraceletError interface {
	error

	// Code returns a machine-readable error code for categorization.
	Code() ErrorCode
}

// Sentinel errors for recorder lifecycle violations.
var (
	ErrTraceNotFound  = errors.New("tracelet: trace not found")
	ErrSpanNotFound   = errors.New("tracelet: span not found")
	ErrTraceFinalized = errors.New("tracelet: trace already finalized")
	ErrSpanEnded      = errors.New("tracelet: span already ended")
	ErrSpanLimit      = errors.New("tracelet: span limit reached for trace")
	ErrInvalidConfig  = errors.New("tracelet: invalid configuration")
)

// SchemaValidationError reports a structured attribute element that violates
// the expected chat-message or chat-tool shape. It identifies the offending
// element by index and the field that failed.
//
// This is the only error class that escapes to the instrumented call site as
// a hard failure: silently dropping invalid chat data would corrupt
// observability output with no signal. Everything else in this library
// degrades gracefully instead of failing.
type SchemaValidationError struct {
	// Schema names the schema that was violated ("ChatMessage" or "ChatTool").
	Schema string

	// Index is the position of the offending element in the input slice.
	Index int

	// Field is the element field that failed validation.
	Field string

	// Message describes the violation.
	Message string

	// Err is the underlying error, if any, for wrapping.
	Err error
}

// Error implements the error interface.
func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("tracelet: validation error for %s at index %d, field %q: %s",
		e.Schema, e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *SchemaValidationError) Unwrap() error {
	return e.Err
}

// Code returns the error code for the validation error.
// Implements the TraceletError interface.
func (e *SchemaValidationError) Code() ErrorCode {
	return ErrCodeValidation
}

// Ensure SchemaValidationError implements TraceletError.
var _ TraceletError = (*SchemaValidationError)(nil)

// NewSchemaValidationError creates a new schema validation error.
func NewSchemaValidationError(schema string, index int, field, message string) *SchemaValidationError {
	return &SchemaValidationError{
		Schema:  schema,
		Index:   index,
		Field:   field,
		Message: message,
	}
}

// AsSchemaValidationError extracts a SchemaValidationError from the error
// chain. Returns the error and true if found, nil and false otherwise.
// This follows Go's errors.As() convention.
func AsSchemaValidationError(err error) (*SchemaValidationError, bool) {
	var verr *SchemaValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// ErrorCodeOf returns the error code for an error.
// It checks if the error implements TraceletError, then falls back to
// inferring the code from sentinel identity.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var coded TraceletError
	if errors.As(err, &coded) {
		return coded.Code()
	}

	switch {
	case errors.Is(err, ErrTraceNotFound), errors.Is(err, ErrSpanNotFound):
		return ErrCodeNotFound
	case errors.Is(err, ErrTraceFinalized), errors.Is(err, ErrSpanEnded),
		errors.Is(err, ErrSpanLimit):
		return ErrCodeState
	case errors.Is(err, ErrInvalidConfig):
		return ErrCodeConfig
	}

	return ErrCodeInternal
}

// WrapError wraps an error with additional context.
// It returns nil if err is nil.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("tracelet: %s: %w", message, err)
}

// WrapErrorf wraps an error with a formatted message.
// It returns nil if err is nil.
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("tracelet: %s: %w", fmt.Sprintf(format, args...), err)
}

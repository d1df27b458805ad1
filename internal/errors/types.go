package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError defines the base interface for all user registry errors
type AppError interface {
	error
	ErrorCode() ErrorCode
	Context() map[string]any
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	// InvalidInputErrorCode marks input rejected by validation
	InvalidInputErrorCode
	// NotFoundErrorCode marks a lookup of an unregistered ID. The registry
	// reports absence as a boolean; callers raise it with NotFound.
	NotFoundErrorCode
	ConfigurationErrorCode
	IDGenerationErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case InvalidInputErrorCode:
		return "InvalidInput"
	case NotFoundErrorCode:
		return "NotFound"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case IDGenerationErrorCode:
		return "IDGenerationError"
	default:
		return "UnknownError"
	}
}

// BaseError provides a common implementation of the AppError interface
type BaseError struct {
	Code        ErrorCode      // type of error
	Message     string         // error message
	Cause       error          // underlying error cause
	ContextData map[string]any // additional context information
	Hints       []string       // helpful suggestions for fixing the error
}

// Error returns Message, followed by the cause when there is one
func (e *BaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Context returns the error context data
func (e *BaseError) Context() map[string]any {
	if e.ContextData == nil {
		return make(map[string]any)
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value any) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]any)
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...any) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// CodeOf returns the code of the first AppError in err's chain, or
// UnknownErrorCode when there is none.
func CodeOf(err error) ErrorCode {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.ErrorCode()
	}
	return UnknownErrorCode
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsInvalidInput reports whether err was raised by input validation
func IsInvalidInput(err error) bool {
	return HasCode(err, InvalidInputErrorCode)
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool {
	return HasCode(err, NotFoundErrorCode)
}

// As is errors.As from the standard library
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

package web

import (
	"errors"
	"fmt"
	"net/http"
)

// HttpError is a handler error rendered with its own status code
type HttpError struct {
	StatusCode int
	Message    string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHttpError creates an error rendered as {"error": message} with statusCode
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{StatusCode: statusCode, Message: message}
}

func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

func ErrNotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message)
}

func ErrInternalServerError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message)
}

// StatusCode returns the status err is rendered with. Errors that are not
// an *HttpError are a 500.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}

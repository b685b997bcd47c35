package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the HTTP status an AppError maps to
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Fields  map[string]interface{} `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error
func (e *AppError) StatusCode() int {
	return int(e.Code)
}

// WithField attaches an extra top-level field to the error response body
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// Common error codes
const (
	ErrBadRequest   ErrorCode = http.StatusBadRequest
	ErrUnauthorized ErrorCode = http.StatusUnauthorized
	ErrForbidden    ErrorCode = http.StatusForbidden
	ErrNotFound     ErrorCode = http.StatusNotFound
	ErrConflict     ErrorCode = http.StatusConflict
	ErrTooLarge     ErrorCode = http.StatusRequestEntityTooLarge
	ErrInternal     ErrorCode = http.StatusInternalServerError
)

// NotFound builds "<resource> not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NotFoundMessage(message string) *AppError {
	return &AppError{Code: ErrNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: ErrConflict, Message: message}
}

func Validation(message string, err error) *AppError {
	return &AppError{Code: ErrBadRequest, Message: message, Err: err}
}

// TooLarge rejects a request body over the configured limit
func TooLarge(limit int64) *AppError {
	return &AppError{Code: ErrTooLarge, Message: fmt.Sprintf("Request body exceeds %d bytes", limit)}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: ErrForbidden, Message: message}
}

// Internal wraps an unexpected failure. message is the user-facing context
// ("Error fetching doctors"), err the raw cause.
func Internal(message string, err error) *AppError {
	return &AppError{Code: ErrInternal, Message: message, Err: err}
}

// As extracts an *AppError from err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an AppError with the given code
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

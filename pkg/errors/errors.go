// Package errors provides structured error types for the mockstudio application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes group into the failure classes a mockup operation can hit:
//   - INVALID_*, FILE_TOO_LARGE, UNSUPPORTED_MEDIA: input validation failures
//   - RENDER_SURFACE_NOT_READY: nothing to render onto
//   - DECODE_FAILURE: stored artwork could not be decoded
//   - EXTERNAL_SERVICE, TIMEOUT, RATE_LIMITED: the try-on backend failed
//   - TRYON_BUSY, CONFLICT: the operation is not allowed in the current state
//
// None of these are retried. Each is terminal for the operation that raised it.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidZone, "unknown zone: %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidZone) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode artwork for %s", zone)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidView      Code = "INVALID_VIEW"
	ErrCodeInvalidZone      Code = "INVALID_ZONE"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidProject   Code = "INVALID_PROJECT"
	ErrCodeFileTooLarge     Code = "FILE_TOO_LARGE"
	ErrCodeUnsupportedMedia Code = "UNSUPPORTED_MEDIA"

	// Rendering errors
	ErrCodeRenderSurface Code = "RENDER_SURFACE_NOT_READY"
	ErrCodeDecode        Code = "DECODE_FAILURE"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// State errors
	ErrCodeConflict Code = "CONFLICT"
	ErrCodeBusy     Code = "TRYON_BUSY"

	// External service errors
	ErrCodeExternalService Code = "EXTERNAL_SERVICE"
	ErrCodeTimeout         Code = "TIMEOUT"
	ErrCodeRateLimited     Code = "RATE_LIMITED"
	ErrCodeUnauthorized    Code = "UNAUTHORIZED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidView, ErrCodeInvalidZone,
		ErrCodeInvalidColor, ErrCodeInvalidFormat, ErrCodeInvalidProject,
		ErrCodeFileTooLarge, ErrCodeUnsupportedMedia:
		return true
	}
	return false
}

// HTTPStatus maps an error code to the status the API responds with.
// Unknown or empty codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidView, ErrCodeInvalidZone,
		ErrCodeInvalidColor, ErrCodeInvalidFormat, ErrCodeInvalidProject:
		return http.StatusBadRequest
	case ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case ErrCodeDecode:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeSessionNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeConflict, ErrCodeBusy:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeExternalService:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnauthorized:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}

// Package errors defines the application-level error taxonomy. Every failure
// that crosses a layer boundary is one of these values, carrying the HTTP
// status and business code the delivery layer should render.
package errors

import (
	"net/http"

	"emotionai/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication errors. ErrAccountNotFound deliberately shares the wire
	// shape of ErrUnauthenticated so responses never reveal whether an account
	// exists; only the internal sentinel differs.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Invalid authentication",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Invalid authentication",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Insufficient privileges for this operation",
		"",
	)

	// Registration / profile errors
	ErrEmailAlreadyRegistered = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_ALREADY_REGISTERED",
		"Email already registered",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing error",
		"",
	)

	// Resource errors
	ErrPatientNotFound = NewBaseError(
		http.StatusNotFound,
		"PATIENT_NOT_FOUND",
		"Patient not found",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"Therapy session not found",
		"",
	)

	// Crypto / configuration errors. A decrypt failure means key mismatch or
	// data corruption and must never be downgraded to a silent empty value.
	ErrDecryptFailed = NewBaseError(
		http.StatusInternalServerError,
		"DECRYPT_FAILED",
		"Stored data could not be decrypted",
		"",
	)

	ErrMissingSecret = NewBaseError(
		http.StatusInternalServerError,
		"MISSING_SECRET",
		"Required secret material is not configured",
		"",
	)

	// Upstream service errors (video-analysis model, agent service)
	ErrUpstreamTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"UPSTREAM_TIMEOUT",
		"The upstream service did not respond in time",
		"",
	)

	ErrUpstreamUnreachable = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_UNREACHABLE",
		"Could not connect to the upstream service",
		"",
	)

	ErrUpstreamBadResponse = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_BAD_RESPONSE",
		"The upstream service returned an unusable response",
		"",
	)
)

// NewDatabaseExecuteError wraps a raw database error into a generic 500-class
// AppError without leaking driver details to the client.
func NewDatabaseExecuteError(err error, message string) error {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		"",
	)

	return errors.Wrap(base, err.Error())
}

package errors

import (
	"net/http"

	"github.com/pkg/errors"
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

// Is matches any BaseError carrying the same business code, so copies made
// by WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
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
	// Registration errors
	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"Passwords do not match",
		"",
	)

	ErrDuplicateUserName = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_USER_NAME",
		"User Name already taken",
		"",
	)

	// User lookup
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect user name or password",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid token",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Token has expired",
		"",
	)

	ErrMissingToken = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"Authorization header must carry a Bearer token",
		"",
	)

	// Collection errors
	ErrCollectionFull = NewBaseError(
		http.StatusConflict,
		"COLLECTION_FULL",
		"Collection has reached its maximum size",
		"",
	)

	ErrUnknownCollection = NewBaseError(
		http.StatusNotFound,
		"UNKNOWN_COLLECTION",
		"Unknown collection",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// PersistenceError represents a failed store call, implementing the AppError interface.
// The cause is kept for logs; Message and Details never expose it.
type PersistenceError struct {
	err       error
	operation string
}

// NewPersistenceError creates a persistence-related error for the named store operation
func NewPersistenceError(err error, operation string) AppError {
	return &PersistenceError{
		err:       err,
		operation: operation,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return errors.Wrapf(e.err, "persistence failure in %s", e.operation).Error()
}

// Unwrap exposes the underlying store error
func (e *PersistenceError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *PersistenceError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *PersistenceError) ErrorCode() string {
	return "PERSISTENCE_ERROR"
}

// Message returns the user-friendly error message
func (e *PersistenceError) Message() string {
	return "Storage operation failed"
}

// Details returns the failing operation name
func (e *PersistenceError) Details() string {
	return e.operation
}

// Outcome labels values reported to metrics.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Outcome maps an operation result to a low-cardinality label: OutcomeOK, the
// business code of an AppError in the chain, or OutcomeError.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode()
	}

	return OutcomeError
}

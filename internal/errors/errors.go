// Package errors provides the structured error type returned by the service
// layer. Handlers render AppError code and message only; the wrapped internal
// error is logged and never sent to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches two AppErrors by code so wrapped sentinels compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Identity errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Bucket errors.
var (
	ErrBucketNotFound   = &AppError{Code: "BUCKET_NOT_FOUND", Message: "Bucket not found", StatusCode: http.StatusNotFound}
	ErrIncompleteBucket = &AppError{Code: "INCOMPLETE_BUCKET", Message: "A bucket needs a name and a percentage above zero", StatusCode: http.StatusBadRequest}
)

// Extra entry errors.
var (
	ErrExtraNotFound = &AppError{Code: "EXTRA_NOT_FOUND", Message: "Extra entry not found", StatusCode: http.StatusNotFound}
)

// Persistence errors.
var (
	ErrSnapshotNotFound       = &AppError{Code: "SNAPSHOT_NOT_FOUND", Message: "No snapshot saved for this period", StatusCode: http.StatusNotFound}
	ErrPersistenceUnavailable = &AppError{Code: "PERSISTENCE_UNAVAILABLE", Message: "Document store is unavailable", StatusCode: http.StatusServiceUnavailable}
)

package apperror

import "net/http"

// AppError is a domain error carrying the HTTP status code it maps to.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds the not-found error kind. It also covers the case where the
// caller lacks the relationship required to see the entity, so existence is
// not leaked to probing callers.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Validation builds the validation error kind: malformed input, an illegal
// state transition, or a violated business rule.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Conflict builds the conflict error kind, used for uniqueness violations.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

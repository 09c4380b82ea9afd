package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeInternal               = "INTERNAL_ERROR"
	ErrCodeBadRequest             = "BAD_REQUEST"
	ErrCodeEmptyInput             = "EMPTY_INPUT"
	ErrCodeInvalidPrecondition    = "INVALID_PRECONDITION"
	ErrCodePersistenceUnavailable = "PERSISTENCE_UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "EMPTY_INPUT")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewEmptyInputError is returned when the player submits a blank answer.
func NewEmptyInputError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyInput,
		Message: message,
		Status:  400,
	}
}

// NewInvalidPreconditionError is returned when an action is not allowed in the
// current session state (level up without a streak, power-up without a charge).
func NewInvalidPreconditionError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidPrecondition,
		Message: message,
		Status:  409,
	}
}

// NewPersistenceUnavailableError wraps a storage failure. Callers treat it as
// a warning and keep going with in-memory data.
func NewPersistenceUnavailableError(err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistenceUnavailable,
		Message: "leaderboard storage unavailable, keeping scores in memory",
		Status:  503,
		Err:     err,
	}
}

// HasCode reports whether err is an AppError (possibly wrapped) with code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library helpers so callers only import this package.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error extends the basic error interface with a stable code.
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError is the default Error implementation.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError creates a new application error with the given code.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Validation returns an INVALID_ARGUMENT error.
func Validation(message string) *AppError {
	return NewAppError(ErrInvalidArgument, message, nil)
}

// NotFound returns a NOT_FOUND error.
func NotFound(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

// Unauthenticated returns an UNAUTHENTICATED error.
func Unauthenticated(message string) *AppError {
	return NewAppError(ErrUnauthenticated, message, nil)
}

// Forbidden returns an UNAUTHORIZED error.
func Forbidden(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, nil)
}

// InvalidState returns an INVALID_STATE error.
func InvalidState(message string) *AppError {
	return NewAppError(ErrInvalidState, message, nil)
}

// PreconditionFailed returns a PRECONDITION_FAILED error.
func PreconditionFailed(message string) *AppError {
	return NewAppError(ErrPreconditionFailed, message, nil)
}

// Conflict returns a CONFLICT error.
func Conflict(message string) *AppError {
	return NewAppError(ErrConflict, message, nil)
}

// Storage wraps a database or collaborator I/O failure.
func Storage(message string, err error) *AppError {
	return NewAppError(ErrStorage, message, err)
}

// Wrap wraps an existing error, preserving its code when it already is an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf returns the code of err, or INTERNAL for plain errors.
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrNameTaken             = errors.New("name is registered and not expired")
	ErrNotRegistered         = errors.New("name is not registered")
	ErrNameTooShort          = errors.New("name is below the minimum length")
	ErrInvalidName           = errors.New("invalid name")
	ErrLengthMismatch        = errors.New("names and years length mismatch")
	ErrInvalidDuration       = errors.New("invalid registration duration")
	ErrRegistrationDisabled  = errors.New("registration is not enabled")
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
	ErrNoPass                = errors.New("no qualifying pass held")
	ErrBridgeRejected        = errors.New("bridge rejected migration")
	ErrNotApprovedRegistrar  = errors.New("caller is not an approved registrar")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// StatusFor maps a domain error to the HTTP status the API responds with.
// Every rejected precondition aborts the whole call, so the mapping is total:
// anything unrecognized is a 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotApprovedRegistrar):
		return http.StatusForbidden
	case errors.Is(err, ErrNameTaken):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNameTooShort),
		errors.Is(err, ErrInvalidName), errors.Is(err, ErrLengthMismatch),
		errors.Is(err, ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, ErrRegistrationDisabled), errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInsufficientAllowance), errors.Is(err, ErrNoPass),
		errors.Is(err, ErrBridgeRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package utils

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindService ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "service"
	}
}

// HTTPStatus maps an error kind to the status code surfaced to clients.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewServiceError(message string, cause error) error {
	return &AppError{Kind: KindService, Message: message, Err: cause}
}

// KindOf returns the kind of the first AppError in err's chain; unknown errors are service errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindService
}

// IsAppError reports whether err already carries a kind.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// PublicMessage is the message safe to show a client: the AppError message without its cause.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

package usecase

import (
	"errors"
	"fmt"

	"salon-booking/pkg/utils"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindPolicy       ErrorKind = "policy"
	KindNotFound     ErrorKind = "not_found"
	KindProtected    ErrorKind = "protected"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
)

// AppError is a failure the caller can act on. Anything that is not an
// AppError is an internal error.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
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

func newAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func ValidationError(fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func FieldError(field, message string) *AppError {
	return ValidationError(map[string]string{field: message})
}

func ConflictError(message string, err error) *AppError {
	return newAppError(KindConflict, message, err)
}

func PolicyError(message string, err error) *AppError {
	return newAppError(KindPolicy, message, err)
}

func NotFoundError(message string) *AppError {
	return newAppError(KindNotFound, message, nil)
}

func ProtectedError(message string, err error) *AppError {
	return newAppError(KindProtected, message, err)
}

func UnauthorizedError(message string) *AppError {
	return newAppError(KindUnauthorized, message, nil)
}

func ForbiddenError(message string) *AppError {
	return newAppError(KindForbidden, message, nil)
}

// AsAppError unwraps err into an AppError when it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the error kind, or "" for internal errors.
func KindOf(err error) ErrorKind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return ""
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return ValidationError(errs)
	}
	return nil
}

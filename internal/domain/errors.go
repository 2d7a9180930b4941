package domain

import (
	"errors"
	"fmt"

	"gifts_buyer/pkg/errcodes"
)

// AppError is a domain error carrying a stable code.
type AppError struct {
	Code    errcodes.ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewError(code errcodes.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError keeps err reachable through errors.Is/As.
func WrapError(err error, code errcodes.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain.
func GetCode(err error) (errcodes.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code errcodes.ErrorCode) bool {
	got, ok := GetCode(err)
	return ok && got == code
}

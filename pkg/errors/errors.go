package errors

import (
	"errors"
	"fmt"

	"shopping-api/domain/shared"
)

// ErrorCode is the machine-readable code returned in every error body.
type ErrorCode string

const (
	CodeInternal             ErrorCode = "INTERNAL_SERVER_ERROR"
	CodeValidation           ErrorCode = "VALIDATION_ERROR"
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	CodeTooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
	CodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"

	CodeShoppingNotFound ErrorCode = "SHOPPING_NOT_FOUND"
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "internal server error")
}

// Is reports whether err is an AppError with code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// notFoundCodes picks the specific code for the entity a not-found error
// was raised for.
var notFoundCodes = map[string]ErrorCode{
	"shopping": CodeShoppingNotFound,
	"user":     CodeUserNotFound,
	"product":  CodeProductNotFound,
}

// FromDomainError classifies err by the shared sentinels it wraps.
// Anything unrecognised becomes an internal error that keeps err for logging.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		code, ok := notFoundCodes[shared.EntityOf(err)]
		if !ok {
			code = CodeNotFound
		}
		return Wrap(err, code, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	default:
		return Internal(err)
	}
}

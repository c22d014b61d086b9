package common

import (
	"errors"
	"fmt"
)

// AppError is the application-level error carried up to the command.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError wraps err with a code and a message.
func WrapError(code, message string, err error) error {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewError creates an error without an underlying cause.
func NewError(code, message string) error {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// CodeOf returns the code of the outermost AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Error codes
const (
	ErrCodeConfig       = "CONFIG_ERROR"
	ErrCodeGitHubAPI    = "GITHUB_API_ERROR"
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

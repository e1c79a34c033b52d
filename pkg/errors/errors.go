package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Input errors
	ErrInputParse ErrorCode = "INPUT_PARSE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Discovery errors
	ErrNoMatch       ErrorCode = "NO_MATCH"
	ErrTargetMissing ErrorCode = "TARGET_MISSING"

	// Patch errors
	ErrIOFailure     ErrorCode = "IO_FAILURE"
	ErrBackupMissing ErrorCode = "BACKUP_MISSING"
	ErrRestoreFailed ErrorCode = "RESTORE_FAILED"
)

// EnvinjectError represents a structured error with code and details
type EnvinjectError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EnvinjectError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EnvinjectError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EnvinjectError) Is(target error) bool {
	var targetErr *EnvinjectError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EnvinjectError with the given code and message
func New(code ErrorCode, message string) *EnvinjectError {
	return &EnvinjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EnvinjectError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EnvinjectError {
	return &EnvinjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EnvinjectError
func Wrap(err error, code ErrorCode, message string) *EnvinjectError {
	if err == nil {
		return nil
	}
	return &EnvinjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EnvinjectError {
	if err == nil {
		return nil
	}
	return &EnvinjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EnvinjectError) WithDetail(key string, value interface{}) *EnvinjectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var envErr *EnvinjectError
	if errors.As(err, &envErr) {
		return envErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EnvinjectError
func GetErrorCode(err error) ErrorCode {
	var envErr *EnvinjectError
	if errors.As(err, &envErr) {
		return envErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an EnvinjectError
func GetErrorDetails(err error) map[string]interface{} {
	var envErr *EnvinjectError
	if errors.As(err, &envErr) {
		return envErr.Details
	}
	return nil
}

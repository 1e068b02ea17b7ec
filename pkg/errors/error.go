// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters and configuration
//   - Data/Resource errors (200-299): Empty results and missing files
//   - Market data errors (300-399): Remote fetching and persistence failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeFetchFailed, "failed to fetch %s", ticker)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeWriteFailed, "failed to persist series", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeNoData) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// NoDataError represents an empty remote result: the provider call succeeded
// but returned zero rows for the requested ticker and range. It is a soft
// failure and callers are expected to log it as a warning and continue.
type NoDataError struct {
	Ticker   string // Symbol the request was made for
	Period   string // Requested period (e.g. "1y", "max")
	Interval string // Requested interval (e.g. "1d")
}

// NewNoDataError creates a new NoDataError for the given request.
func NewNoDataError(ticker, period, interval string) *NoDataError {
	return &NoDataError{
		Ticker:   ticker,
		Period:   period,
		Interval: interval,
	}
}

// Error implements the error interface.
func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data found for %s (period=%s, interval=%s)", e.Ticker, e.Period, e.Interval)
}

// IsNoDataError checks if an error is a NoDataError.
// It uses errors.As to check the error chain.
func IsNoDataError(err error) bool {
	var noDataErr *NoDataError

	return errors.As(err, &noDataErr)
}

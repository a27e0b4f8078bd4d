// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the outcome of a solve request in responses and history.
type Code string

// Solve outcome codes.
const (
	CodeTooShort         Code = "TOO_SHORT"
	CodeMissingNumbers   Code = "MISSING_NUMBERS"
	CodeParseError       Code = "PARSE_ERROR"
	CodeUnknown          Code = "UNKNOWN"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodeNotFound         Code = "NOT_FOUND"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound        = errors.New("not found")
	ErrDatabaseLocked  = errors.New("database is locked")
	ErrStoreDisabled   = errors.New("history store disabled")
	ErrUnsupportedType = errors.New("unsupported database driver")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SolveError carries the outcome code of a failed solve together with the cause.
type SolveError struct {
	Err  error
	Code Code
}

func (e *SolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}

// NewSolveError wraps err with an outcome code.
func NewSolveError(code Code, err error) error {
	return &SolveError{
		Code: code,
		Err:  err,
	}
}

// CodeOf maps any error to its outcome code. Errors that carry no code are UNKNOWN.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var solveErr *SolveError
	if errors.As(err, &solveErr) {
		return solveErr.Code
	}
	return CodeUnknown
}

// IsClientError reports whether the code describes a problem with the input.
func (c Code) IsClientError() bool {
	switch c {
	case CodeTooShort, CodeMissingNumbers, CodeParseError, CodeMethodNotAllowed, CodeNotFound:
		return true
	default:
		return false
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	if errors.Is(err, ErrDatabaseLocked) {
		return true
	}

	// SQLite reports contention as SQLITE_BUSY with this text.
	return strings.Contains(err.Error(), "database is locked")
}

package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want Code
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: CodeUnknown},
		{name: "solve error", err: NewSolveError(CodeTooShort, nil), want: CodeTooShort},
		{
			name: "wrapped solve error",
			err:  fmt.Errorf("stage failed: %w", NewSolveError(CodeParseError, errors.New("no base"))),
			want: CodeParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestSolveError(t *testing.T) {
	cause := errors.New("only two numbers")
	err := NewSolveError(CodeMissingNumbers, cause)

	assert.Equal(t, "MISSING_NUMBERS: only two numbers", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "TOO_SHORT", NewSolveError(CodeTooShort, nil).Error())
}

func TestCode_IsClientError(t *testing.T) {
	assert.True(t, CodeTooShort.IsClientError())
	assert.True(t, CodeMissingNumbers.IsClientError())
	assert.True(t, CodeParseError.IsClientError())
	assert.False(t, CodeUnknown.IsClientError())
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("syntax error")))
	assert.True(t, IsRetryable(ErrDatabaseLocked))
	assert.True(t, IsRetryable(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: ErrDatabaseLocked, Retryable: false}))
}

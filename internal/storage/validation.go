package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid history record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a history record before it is written.
func validateRecord(record *model.HistoryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(record.Question) == "" {
		return fmt.Errorf("%w: question is empty", ErrInvalidRecord)
	}
	if record.Locale == "" {
		return fmt.Errorf("%w: locale is empty", ErrInvalidRecord)
	}
	if record.Succeeded() && !record.Type.Valid() {
		return fmt.Errorf("%w: successful record without problem type", ErrInvalidRecord)
	}
	if !record.Succeeded() && record.Solution != "" {
		return fmt.Errorf("%w: failed record with solution", ErrInvalidRecord)
	}
	if record.DurationMicros < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidRecord)
	}
	return nil
}

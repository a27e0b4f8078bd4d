// Package service defines the interfaces shared between the solver, its transports and storage.
package service

import (
	"context"
	"time"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Solver turns a word problem into a rendered solution.
type Solver interface {
	// Solve validates, parses, classifies and solves a question in the given locale.
	Solve(ctx context.Context, question string, locale model.Locale) (*model.Solution, error)
}

// HistoryStore persists solve attempts.
type HistoryStore interface {
	// RecordSolve stores a single attempt. The record ID and timestamp are
	// assigned by the store when empty.
	RecordSolve(ctx context.Context, record *model.HistoryRecord) error
	// GetRecord returns the attempt with the given ID.
	GetRecord(ctx context.Context, id string) (*model.HistoryRecord, error)
	// ListRecent returns the newest attempts first.
	ListRecent(ctx context.Context, limit int) ([]model.HistoryRecord, error)
	// FindSolution returns the newest successful attempt for a question hash.
	FindSolution(ctx context.Context, questionHash string) (*model.HistoryRecord, error)
	// Stats aggregates all stored attempts.
	Stats(ctx context.Context) (*model.HistoryStats, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// List limits.
const (
	DefaultListLimit = 20
	MaxListLimit     = 500
)

const historyColumns = `id, question_hash, question, locale, code, problem_type, result, solution, duration_us, created_at`

// RecordSolve stores one solve attempt. Missing IDs, hashes and timestamps are filled in.
func (s *SQLStorage) RecordSolve(ctx context.Context, record *model.HistoryRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.QuestionHash == "" {
		record.QuestionHash = model.QuestionHash(record.Locale, record.Question)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := s.dialect.rebind(`INSERT INTO solve_history (` + historyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	err := s.withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query,
			record.ID,
			record.QuestionHash,
			record.Question,
			string(record.Locale),
			record.Code,
			string(record.Type),
			record.Result,
			record.Solution,
			record.DurationMicros,
			record.CreatedAt.UTC(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record solve: %w", err)
	}
	return nil
}

// GetRecord returns the record with id.
func (s *SQLStorage) GetRecord(ctx context.Context, id string) (*model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT `+historyColumns+` FROM solve_history WHERE id = ?`), id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history record %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history record: %w", err)
	}
	return record, nil
}

// ListRecent returns the newest records first. limit is clamped to
// [1, MaxListLimit]; zero or less means DefaultListLimit.
func (s *SQLStorage) ListRecent(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		s.dialect.rebind(`SELECT `+historyColumns+` FROM solve_history ORDER BY created_at DESC, id LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]model.HistoryRecord, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return records, nil
}

// FindSolution returns the newest successful record for a question hash.
func (s *SQLStorage) FindSolution(ctx context.Context, questionHash string) (*model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(questionHash, "questionHash"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+historyColumns+`
		FROM solve_history
		WHERE question_hash = ? AND code = ''
		ORDER BY created_at DESC
		LIMIT 1`), questionHash)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("solution for %s: %w", questionHash, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find solution: %w", err)
	}
	return record, nil
}

// Stats counts the stored attempts per outcome and per locale.
func (s *SQLStorage) Stats(ctx context.Context) (*model.HistoryStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT code, locale, COUNT(*) FROM solve_history GROUP BY code, locale`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := &model.HistoryStats{
		ByCode:   make(map[string]int),
		ByLocale: make(map[model.Locale]int),
	}
	for rows.Next() {
		var code, locale string
		var count int
		if err := rows.Scan(&code, &locale, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats.ByCode[model.HistoryRecord{Code: code}.Outcome()] += count
		stats.ByLocale[model.Locale(locale)] += count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.HistoryRecord, error) {
	var r model.HistoryRecord
	var locale, problemType string
	err := row.Scan(
		&r.ID,
		&r.QuestionHash,
		&r.Question,
		&locale,
		&r.Code,
		&problemType,
		&r.Result,
		&r.Solution,
		&r.DurationMicros,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Locale = model.Locale(locale)
	r.Type = model.ProblemType(problemType)
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

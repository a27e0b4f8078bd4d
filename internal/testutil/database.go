// Package testutil provides shared helpers for tests that need a history store.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/storage"
)

// SetupTestStore creates a migrated SQLite history store in a temporary
// directory, seeded with records. The store is closed when the test ends.
//
// Example:
//
//	store := testutil.SetupTestStore(t,
//		testutil.SolvedRecord("3 Äpfel kosten 6 Euro. Was kosten 5 Äpfel?", model.LocaleDE, 10),
//	)
func SetupTestStore(t *testing.T, records ...model.HistoryRecord) *storage.SQLStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for i := range records {
		if err := store.RecordSolve(ctx, &records[i]); err != nil {
			t.Fatalf("failed to seed record %d: %v", i, err)
		}
	}

	return store
}

// SolvedRecord builds a successful attempt with the given result.
func SolvedRecord(question string, loc model.Locale, result float64) model.HistoryRecord {
	return model.HistoryRecord{
		Question: question,
		Locale:   loc,
		Type:     model.Proportional,
		Result:   result,
		Solution: `{"type":"proportional"}`,
	}
}

// FailedRecord builds a failed attempt with the given outcome code.
func FailedRecord(question string, loc model.Locale, code string) model.HistoryRecord {
	return model.HistoryRecord{
		Question: question,
		Locale:   loc,
		Code:     code,
	}
}

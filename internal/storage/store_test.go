package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/service"
)

func createTestStorage(t *testing.T) *SQLStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func successRecord(question string, createdAt time.Time) *model.HistoryRecord {
	return &model.HistoryRecord{
		Question:       question,
		Locale:         model.LocaleDE,
		Type:           model.Proportional,
		Result:         1.5,
		Solution:       `{"type":"proportional"}`,
		DurationMicros: 120,
		CreatedAt:      createdAt,
	}
}

func TestOpen(t *testing.T) {
	store, err := Open("sqlite3", filepath.Join(t.TempDir(), "nested", "dir", "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	assert.Equal(t, DriverSQLite, store.Driver())

	_, err = Open("mysql", "whatever")
	require.ErrorIs(t, err, common.ErrUnsupportedType)

	_, err = Open(DriverSQLite, "  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var indexCount int
	err = store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_solve_history_code'`).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 1, indexCount)
}

func TestRecordAndGet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := successRecord("5 Äpfel kosten 2,50 Euro. Wie viele Euro kosten 3 Äpfel?", created)
	require.NoError(t, store.RecordSolve(ctx, record))

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, model.QuestionHash(model.LocaleDE, record.Question), record.QuestionHash)

	got, err := store.GetRecord(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Question, got.Question)
	assert.Equal(t, model.LocaleDE, got.Locale)
	assert.Equal(t, model.Proportional, got.Type)
	assert.Equal(t, record.Solution, got.Solution)
	assert.InDelta(t, 1.5, got.Result, 1e-9)
	assert.Equal(t, int64(120), got.DurationMicros)
	assert.True(t, created.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)
	assert.True(t, got.Succeeded())
}

func TestGetRecordNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetRecord(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetRecord(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestRecordSolveValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		record  *model.HistoryRecord
		wantErr error
		name    string
	}{
		{name: "nil record", record: nil, wantErr: ErrNilParameter},
		{name: "empty question", record: &model.HistoryRecord{Locale: model.LocaleDE, Type: model.Proportional}, wantErr: ErrInvalidRecord},
		{name: "missing locale", record: &model.HistoryRecord{Question: "q", Type: model.Proportional}, wantErr: ErrInvalidRecord},
		{name: "success without type", record: &model.HistoryRecord{Question: "q", Locale: model.LocaleEN}, wantErr: ErrInvalidRecord},
		{
			name:    "failure with solution",
			record:  &model.HistoryRecord{Question: "q", Locale: model.LocaleEN, Code: "PARSE_ERROR", Solution: "{}"},
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.RecordSolve(ctx, tt.record)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListRecent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordSolve(ctx, successRecord("question number "+string(rune('A'+i)), base.Add(time.Duration(i)*time.Minute))))
	}

	records, err := store.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "question number E", records[0].Question)
	assert.Equal(t, "question number D", records[1].Question)
	assert.Equal(t, "question number C", records[2].Question)

	records, err = store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestFindSolution(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	question := "8 liters last 100 km. How many liters for 350 km?"
	hash := model.QuestionHash(model.LocaleDE, question)

	_, err := store.FindSolution(ctx, hash)
	require.ErrorIs(t, err, common.ErrNotFound)

	failed := &model.HistoryRecord{Question: question, Locale: model.LocaleDE, Code: string(common.CodeParseError)}
	require.NoError(t, store.RecordSolve(ctx, failed))

	_, err = store.FindSolution(ctx, hash)
	require.ErrorIs(t, err, common.ErrNotFound, "failed attempts are not solutions")

	ok := successRecord(question, time.Now().UTC())
	require.NoError(t, store.RecordSolve(ctx, ok))

	got, err := store.FindSolution(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, ok.ID, got.ID)
}

func TestStats(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSolve(ctx, successRecord("first question here", time.Time{})))
	require.NoError(t, store.RecordSolve(ctx, successRecord("second question here", time.Time{})))
	require.NoError(t, store.RecordSolve(ctx, &model.HistoryRecord{Question: "short", Locale: model.LocaleEN, Code: string(common.CodeTooShort)}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{model.OutcomeOK: 2, "TOO_SHORT": 1}, stats.ByCode)
	assert.Equal(t, map[model.Locale]int{model.LocaleDE: 2, model.LocaleEN: 1}, stats.ByLocale)
}

func TestConcurrentRecordSolve(t *testing.T) {
	store := createTestStorage(t)
	store.SetRetryOptions(service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.RecordSolve(ctx, successRecord("concurrent question", time.Time{})))
		}()
	}
	wg.Wait()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Total)
}

func TestClassifyError(t *testing.T) {
	assert.NoError(t, classifyError(nil))

	locked := classifyError(errors.New("database is locked (5) (SQLITE_BUSY)"))
	assert.True(t, common.IsRetryable(locked))
	assert.ErrorIs(t, locked, common.ErrDatabaseLocked)

	other := errors.New("constraint failed")
	assert.Equal(t, other, classifyError(other))
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT ? FROM t WHERE a = ?", sqliteDialect.rebind("SELECT ? FROM t WHERE a = ?"))
	assert.Equal(t, "SELECT $1 FROM t WHERE a = $2", postgresDialect.rebind("SELECT ? FROM t WHERE a = ?"))
}

func TestPostgresStorage(t *testing.T) {
	dsn := os.Getenv("DREISATZ_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DREISATZ_TEST_POSTGRES_DSN not set")
	}

	store, err := Open(DriverPostgres, dsn)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	record := successRecord("postgres round trip question", time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, store.RecordSolve(ctx, record))

	got, err := store.GetRecord(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Question, got.Question)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))

	_, err = store.db.ExecContext(ctx, store.dialect.rebind(`DELETE FROM solve_history WHERE id = ?`), record.ID)
	require.NoError(t, err)
}

// Package storage persists solve history in SQLite or PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// dialect captures the SQL differences between the supported databases.
type dialect struct {
	name       string
	realType   string
	bigintType string
	timeType   string
}

var (
	sqliteDialect = dialect{
		name:       DriverSQLite,
		realType:   "REAL",
		bigintType: "INTEGER",
		timeType:   "DATETIME",
	}
	postgresDialect = dialect{
		name:       DriverPostgres,
		realType:   "DOUBLE PRECISION",
		bigintType: "BIGINT",
		timeType:   "TIMESTAMPTZ",
	}
)

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
func (d dialect) rebind(query string) string {
	if d.name != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLStorage implements service.HistoryStore on top of database/sql.
type SQLStorage struct {
	db      *sql.DB
	dialect dialect
	retry   service.RetryOptions
}

var _ service.HistoryStore = (*SQLStorage)(nil)

// Open connects to the database of driver. target is a file path for
// SQLite and a connection string for PostgreSQL.
func Open(driver, target string) (*SQLStorage, error) {
	switch driver {
	case DriverSQLite, "sqlite", "":
		return NewSQLiteStorage(target)
	case DriverPostgres, "postgres", "postgresql":
		return NewPostgresStorage(target)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedType, driver)
	}
}

// NewSQLiteStorage opens (and creates) the SQLite database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverSQLite, dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStorage{db: db, dialect: sqliteDialect}, nil
}

// NewPostgresStorage connects to PostgreSQL through the pgx stdlib driver.
func NewPostgresStorage(dsn string) (*SQLStorage, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStorage{db: db, dialect: postgresDialect}, nil
}

// Driver returns the name of the database driver in use.
func (s *SQLStorage) Driver() string {
	return s.dialect.name
}

// SetRetryOptions configures the retry behavior of writes.
func (s *SQLStorage) SetRetryOptions(opts service.RetryOptions) {
	s.retry = opts
}

// Close closes the database connection.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// classifyError marks lock contention as retryable.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "database is locked") {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %w", common.ErrDatabaseLocked, err),
			Retryable: true,
		}
	}
	return err
}

func (s *SQLStorage) withRetry(ctx context.Context, op func() error) error {
	return common.WithRetry(ctx, func() error {
		return classifyError(op())
	}, s.retry)
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx, dialect) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx, d dialect) error {
			queries := []string{
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS solve_history (
					id TEXT PRIMARY KEY,
					question_hash TEXT NOT NULL,
					question TEXT NOT NULL,
					locale TEXT NOT NULL,
					code TEXT NOT NULL DEFAULT '',
					problem_type TEXT NOT NULL DEFAULT '',
					result %s NOT NULL DEFAULT 0,
					solution TEXT NOT NULL DEFAULT '',
					duration_us %s NOT NULL DEFAULT 0,
					created_at %s NOT NULL
				)`, d.realType, d.bigintType, d.timeType),
				`CREATE INDEX IF NOT EXISTS idx_solve_history_hash ON solve_history(question_hash)`,
				`CREATE INDEX IF NOT EXISTS idx_solve_history_created ON solve_history(created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index outcome codes for statistics",
		Up: func(tx *sql.Tx, _ dialect) error {
			if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_solve_history_code ON solve_history(code, locale)`); err != nil {
				return fmt.Errorf("failed to create code index: %w", err)
			}
			return nil
		},
	},
}

// schemaVersion reads the applied schema version. SQLite keeps it in
// PRAGMA user_version, PostgreSQL in a schema_version table.
func (s *SQLStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if s.dialect.name == DriverSQLite {
		err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
		return version, err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, err
	}
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	return version, err
}

func (s *SQLStorage) setSchemaVersion(tx *sql.Tx, version int) error {
	if s.dialect.name == DriverSQLite {
		_, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version))
		return err
	}
	_, err := tx.Exec(s.dialect.rebind(`INSERT INTO schema_version (version) VALUES (?)`), version)
	return err
}

// Migrate applies all pending database migrations.
func (s *SQLStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx, s.dialect); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if execErr := s.setSchemaVersion(tx, migration.Version); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"driver", s.dialect.name,
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the applied schema version.
func (s *SQLStorage) SchemaVersion(ctx context.Context) (int, error) {
	return s.schemaVersion(ctx)
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/classification"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/config"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/engine"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/storage"
)

// newDetector builds the hint detector from the defaults plus the configured
// hints file.
func newDetector(cfg *config.Config) (*classification.HintDetector, error) {
	hints := classification.DefaultHints()
	if cfg.Solver.HintsFile != "" {
		extra, err := classification.LoadHintsFile(cfg.Solver.HintsFile)
		if err != nil {
			return nil, err
		}
		hints = classification.MergeHints(hints, extra)
		slog.Info("Loaded classification hints", "path", cfg.Solver.HintsFile, "count", len(extra))
	}
	return classification.NewHintDetector(hints)
}

func newEngine(cfg *config.Config) (*engine.Engine, *classification.HintDetector, error) {
	detector, err := newDetector(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build classifier: %w", err)
	}
	return engine.New(detector), detector, nil
}

// openStore opens and migrates the history database.
func openStore(ctx context.Context, cfg *config.Config) (*storage.SQLStorage, error) {
	if !cfg.History.Enabled {
		return nil, common.ErrStoreDisabled
	}

	store, err := storage.Open(cfg.Database.Driver, cfg.Database.Target())
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openOptionalStore opens the history store for commands that work without
// one. A nil store means history is off or unavailable.
func openOptionalStore(ctx context.Context, cfg *config.Config) *storage.SQLStorage {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Warn("History disabled", "error", err)
		return nil
	}
	return store
}

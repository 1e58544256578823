package backend

import (
	"context"
	"fmt"
	"log/slog"

	"cardtrack/internal/config"
	"cardtrack/internal/sheets"
	"cardtrack/internal/sheets/google"
	"cardtrack/internal/sheets/memory"
	"cardtrack/internal/storage"
)

// Store is the full tabular backend: both tables behind one handle.
type Store interface {
	sheets.CardStore
	sheets.TransactionStore
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result bundles the store with its cleanup.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// New builds the configured backend. The handle is created once here and
// reused for the process lifetime; callers pass it down instead of caching
// anything globally.
func New(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch cfg.DataBackend {
	case "sheets":
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets backend: %w", err)
		}
		slog.InfoContext(ctx, "Initialized Google Sheets backend")
		return &Result{Store: cli, Cleanup: func() error { return nil }}, nil

	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite backend: %w", err)
		}
		slog.InfoContext(ctx, "Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case "memory":
		slog.InfoContext(ctx, "Initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

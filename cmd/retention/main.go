package main

import (
	"context"
	"os"
	"time"

	"cardtrack/internal/backend"
	"cardtrack/internal/cli"
	"cardtrack/internal/services"
)

// One-shot retention sweep: drop transactions outside the allowed month
// window and exit. The server runs the same cleanup on every load; this
// exists for cron-style runs against a backend the server is not touching.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := store.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	}()

	tracker := services.NewTrackerService(store.Store, store.Store)
	removed, err := tracker.CleanupNow(ctx)
	if err != nil {
		logger.Error("Retention sweep failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Retention sweep finished", "removed", removed, "window", tracker.Window().Months())
}

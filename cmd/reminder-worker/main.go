package main

import (
	"context"
	"log/slog"
	"time"

	"fintrack/internal/alert"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting reminder-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	amqpClient := cli.InitPublisher(logger, cfg)
	if amqpClient != nil {
		defer amqpClient.Close()
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to resolve display timezone", "error", err, "timezone", cfg.DisplayTimezone)
		return
	}

	// alertPublisher is an interface; a typed nil must stay nil
	var publisher alertPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}

	ctx, stop := cli.NotifyShutdown()
	defer stop()

	logger.Info("Reminder worker configured",
		"interval", cfg.ReminderInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	// Run an initial pass on startup
	runOnce(ctx, store, publisher, loc)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			runOnce(ctx, store, publisher, loc)
		}
	}
}

// runOnce reads the persisted dataset, derives the current alerts and
// publishes them. The worker never mutates the dataset; it is a read-only
// consumer of the snapshot slot.
func runOnce(ctx context.Context, store *storage.SQLiteStore, publisher alertPublisher, loc *time.Location) {
	blob, found, err := store.Get(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read snapshot", "error", err)
		return
	}
	if !found {
		slog.InfoContext(ctx, "No dataset stored yet, nothing to remind")
		return
	}

	ds, err := storage.DecodeDataset(blob)
	if err != nil {
		slog.ErrorContext(ctx, "Stored snapshot is corrupt", "error", err)
		return
	}

	today := core.DateOf(time.Now().In(loc))
	alerts := alert.Compute(ds, today)
	if len(alerts) == 0 {
		slog.InfoContext(ctx, "No alerts due", "date", today.String())
		return
	}

	for _, a := range alerts {
		slog.InfoContext(ctx, "Alert", "message", a)
	}

	if publisher != nil {
		if err := publisher.PublishAlerts(ctx, alerts); err != nil {
			slog.ErrorContext(ctx, "Failed to publish alerts", "error", err, "count", len(alerts))
		}
	}
}

type alertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []string) error
}

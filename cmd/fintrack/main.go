package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting fintrack")

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
		os.Exit(1)
	}

	// ChangePublisher is an interface; a typed nil must stay nil
	var publisher services.ChangePublisher
	if amqpClient != nil {
		publisher = amqpClient
	}

	tracker, err := services.NewTracker(context.Background(), store, publisher, loc)
	if err != nil {
		logger.Error("Failed to load tracker state", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, tracker)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, "timezone", cfg.DisplayTimezone)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

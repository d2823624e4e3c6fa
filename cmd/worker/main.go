package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ankleshchaudhari/store-rating-app/internal/api"
	"github.com/ankleshchaudhari/store-rating-app/internal/config"
	"github.com/ankleshchaudhari/store-rating-app/internal/events"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
)

const serviceName = "rating-audit-worker"

func main() {
	cfg, err := config.Load(".env.dev")
	if err != nil {
		slog.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api.SetupGlobalHandler(serviceName, cfg.LogLevel)

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	subscriber, err := events.NewRatingAuditSubscriber(cfg.NatsURL, repository.NewPostgresAuditRepository(db))
	if err != nil {
		slog.Error("Failed to start rating audit subscriber", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Rating audit worker started, waiting for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down rating audit worker...")
	if err := subscriber.Close(); err != nil {
		slog.Error("Failed to drain NATS connection", slog.String("error", err.Error()))
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ankleshchaudhari/store-rating-app/internal/api"
	"github.com/ankleshchaudhari/store-rating-app/internal/config"
	"github.com/ankleshchaudhari/store-rating-app/internal/events"
	"github.com/ankleshchaudhari/store-rating-app/internal/jwt"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
	"github.com/ankleshchaudhari/store-rating-app/internal/tracing"
	_ "github.com/ankleshchaudhari/store-rating-app/migrations"
)

const serviceName = "store-rating-api"

func main() {
	cfg, err := config.Load(".env.dev")
	if err != nil {
		slog.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api.SetupGlobalHandler(serviceName, cfg.LogLevel)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrations(cfg); err != nil {
			slog.Error("goose: failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("Migrations applied successfully")
		return
	}

	shutdownTracer, err := tracing.Start(context.Background(), serviceName, cfg.OtelEndpoint)
	if err != nil {
		slog.Error("Failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}()

	db, err := connectDB(cfg)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	// Rating events are best-effort; the API keeps serving without a broker.
	var publisher events.EventPublisher
	natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		slog.Warn("NATS unavailable, rating events disabled", slog.String("error", err.Error()))
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
		slog.Info("Successfully connected to NATS")
	}

	userRepo := repository.NewPostgresUserRepository(db)
	storeRepo := repository.NewPostgresStoreRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	services := api.Services{
		Auth: service.NewAuthService(userRepo, tokens, service.AuthConfig{
			BcryptCost:        cfg.BcryptCost,
			SelfRegisterRoles: cfg.SelfRegisterRoles,
		}),
		Admin:   service.NewAdminService(statsRepo, userRepo),
		Stores:  service.NewStoreService(storeRepo, userRepo),
		Ratings: service.NewRatingService(ratingRepo, storeRepo, publisher),
	}

	app := api.NewApp(api.AppConfig{
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, services)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			slog.Error("Server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Listening", slog.String("service", serviceName), slog.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		slog.Error("Server stopped", slog.String("error", err.Error()))
	}
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("Successfully connected to the database")
	return db, nil
}

func runMigrations(cfg config.Config) error {
	db, err := sqlx.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db.DB, "migrations")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/api"
	"github.com/cosiedzieje/markers-api/internal/auth"
	"github.com/cosiedzieje/markers-api/internal/config"
	"github.com/cosiedzieje/markers-api/internal/core/service"
	"github.com/cosiedzieje/markers-api/internal/infrastructure/db/postgres"
	"github.com/cosiedzieje/markers-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The singleton is not configured yet, so use a bootstrap logger.
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := postgres.NewUserRepository(db)
	markerRepo := postgres.NewMarkerRepository(db)

	userService := service.NewUserService(userRepo, log)
	markerService := service.NewMarkerService(markerRepo, log)

	session := auth.NewSessionIssuer(cfg.SessionSecret, cfg.SessionTTL)

	e := api.NewRouter(userService, markerService, session, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/config"
	"github.com/noah-isme/coursesync/internal/database"
	"github.com/noah-isme/coursesync/internal/devapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName+"-devapi").Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := database.OpenGorm(cfg.DevAPIDriver, cfg.DevAPIDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	app, err := devapi.New(context.Background(), cfg, db, devapi.Options{
		Seed:          cfg.DevAPISeed,
		AuthRateLimit: cfg.DevAPIRateLimit,
	}, logger)
	if err != nil {
		log.Fatalf("failed to build development api: %v", err)
	}

	go func() {
		logger.Info().Str("address", cfg.DevAPIAddress()).Msg("development api listening")
		if err := app.Listen(cfg.DevAPIAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

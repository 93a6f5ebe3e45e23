package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/myfiorentina/progetto-fitness/config"
	"github.com/myfiorentina/progetto-fitness/internal/api"
	"github.com/myfiorentina/progetto-fitness/internal/database"
	"github.com/myfiorentina/progetto-fitness/internal/logging"
	"github.com/myfiorentina/progetto-fitness/internal/middleware"
	"github.com/myfiorentina/progetto-fitness/internal/server"
	"github.com/myfiorentina/progetto-fitness/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg)
	logger.WithField("env", cfg.Env).Info("Configuration loaded")

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("Failed to create schema")
		}
		logger.Info("Schema is up to date")
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		// Continue without rate limiting if Redis is not available
		logger.WithError(err).Warn("Failed to connect to Redis, rate limiting disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	llm, err := service.NewLLMService(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create LLM service")
	}

	ledger := service.NewLedgerService(db, logger)
	nutrition := service.NewNutritionService(llm, cfg.MealLocale, logger)
	ingester := service.NewIngestService(nutrition, ledger, logger)

	srv := server.New(cfg, api.Dependencies{
		DB:       db,
		Ingester: ingester,
		History:  ledger,
		Limiter:  middleware.NewMealIngestionRateLimiter(redisClient, cfg.RateLimitPerHour, logger),
		Logger:   logger,
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Fatal("Server error")
		}
		return
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Received signal")
	}

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}

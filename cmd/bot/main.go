package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/app"
	"github.com/Freeeeeet/repair_bot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting repair bot",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
		zap.Int("token_length", len(cfg.TelegramToken)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("Failed to close application", zap.Error(err))
		}
	}()

	if err := application.Run(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
		return
	}
	logger.Info("Bot stopped")
}

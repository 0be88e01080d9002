package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"robocon-bot/internal/di"
	"robocon-bot/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	cfg, err := di.ConfigFromEnv(envService)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		container.Logger.Error("Bot stopped", "error", err)
		container.Close()
		os.Exit(1)
	}

	container.Logger.Info("Bot stopped")
}

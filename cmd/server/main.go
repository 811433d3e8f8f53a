package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/makrand12345/StoreDoc-Backend/internal/app"
	"github.com/makrand12345/StoreDoc-Backend/internal/config"
	pkgconfig "github.com/makrand12345/StoreDoc-Backend/pkg/config"
	"github.com/makrand12345/StoreDoc-Backend/pkg/logger"
)

func main() {
	// A missing .env file is fine; the environment alone is enough.
	if err := pkgconfig.LoadDotEnv(); err != nil {
		slog.Warn("failed to read .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.ServiceName(), cfg.LogLevel)
	log.Info("starting storedoc server",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.Bool("kafka_enabled", cfg.KafkaEnabled),
		slog.Bool("redis_enabled", cfg.RedisEnabled),
	)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storedoc server stopped")
}

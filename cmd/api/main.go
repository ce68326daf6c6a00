package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"insurance-service/internal/app"
	"insurance-service/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, config.Load(), logger)
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// run serves until ctx is cancelled and returns the process exit code.
// Exiting stays in main so the signal handler and logger are released first.
func run(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) int {
	srv := app.NewServer(cfg, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return 1
	}

	logger.Info("server stopped gracefully")
	return 0
}

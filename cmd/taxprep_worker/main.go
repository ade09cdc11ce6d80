package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mapleleaf/taxprep_backend/internal/core/services"
	"github.com/mapleleaf/taxprep_backend/internal/extractor"
	"github.com/mapleleaf/taxprep_backend/internal/platform/config"
	"github.com/mapleleaf/taxprep_backend/internal/platform/storage"
	"github.com/mapleleaf/taxprep_backend/internal/repositories/database/pgsql"
	"github.com/mapleleaf/taxprep_backend/internal/worker"
	"github.com/mapleleaf/taxprep_backend/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	store, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize upload storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	classifier := services.NewClassifierService(repos.VendorRuleRepo)
	ext := extractor.New(store)

	w := worker.New(
		repos.JobRepo,
		repos.DocumentRepo,
		repos.TransactionRepo,
		repos.EngagementRepo,
		classifier,
		ext,
		logger,
		cfg.PollInterval,
	)

	logger.Info("Worker starting", slog.Duration("poll_interval", cfg.PollInterval))
	w.Run(ctx)
	logger.Info("Worker stopped")
}

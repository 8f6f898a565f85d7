package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/docsync/backend/internal/config"
	"github.com/docsync/backend/internal/core/services"
	"github.com/docsync/backend/internal/infrastructure/cloudinary"
	"github.com/docsync/backend/internal/infrastructure/logger"
	"github.com/docsync/backend/internal/infrastructure/workfront"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	log.Info("starting workfront to cloudinary document sync")

	// Document downloads can be large; the timeout is deliberately generous.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	provider := workfront.NewCredentialProvider(cfg.Workfront.OAuth, httpClient, log)
	source := workfront.NewClient(cfg.Workfront, httpClient, log)

	store, err := cloudinary.NewUploader(cfg.Cloudinary, log)
	if err != nil {
		log.Errorw("failed to initialize cloudinary", "error", err)
		return 1
	}

	processor := services.NewProcessor(source, store, cfg.Cloudinary.AssetFolder, "", log)
	orchestrator := services.NewOrchestrator(provider, source, processor, cfg.Status.Codes(), cfg.MaxTasksPerRun, log)

	summary, err := orchestrator.Run(context.Background())
	if err != nil {
		log.Errorw("run aborted", "error", err)
		return 1
	}

	log.Infow("run summary",
		"tasks_processed", summary.TasksProcessed,
		"tasks_succeeded", summary.TasksSucceeded,
		"tasks_failed", summary.TasksFailed,
		"tasks_skipped", summary.TasksSkipped,
		"documents_transferred", summary.DocumentsTransferred)

	if summary.TasksFailed > 0 {
		log.Warn("run completed with task failures")
		return 1
	}

	log.Info("run completed successfully")
	return 0
}

package services

import (
	"context"
	"fmt"

	"github.com/docsync/backend/internal/core/ports"
	"github.com/docsync/backend/internal/domain"
	"github.com/docsync/backend/internal/infrastructure/logger"
)

// Orchestrator runs one full sync: authenticate, discover eligible tasks,
// process them strictly one at a time, set each task's terminal status and
// accumulate the run summary. Authentication and discovery failures are
// fatal; per-task failures are folded into the summary and the run goes on.
type Orchestrator struct {
	auth      ports.SessionProvider
	source    ports.SourceClient
	processor ports.TaskProcessor
	codes     domain.StatusCodes
	limit     int
	logger    *logger.Logger
}

func NewOrchestrator(
	auth ports.SessionProvider,
	source ports.SourceClient,
	processor ports.TaskProcessor,
	codes domain.StatusCodes,
	limit int,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		auth:      auth,
		source:    source,
		processor: processor,
		codes:     codes,
		limit:     limit,
		logger:    log,
	}
}

func (o *Orchestrator) Run(ctx context.Context) (*domain.RunSummary, error) {
	cred, err := o.auth.ObtainSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	o.source.SetSession(cred)

	tasks, err := o.source.SearchTasks(ctx, o.codes.Upload, o.limit)
	if err != nil {
		return nil, fmt.Errorf("task discovery failed: %w", err)
	}

	summary := &domain.RunSummary{}
	if len(tasks) == 0 {
		o.logger.Info("no tasks found for processing")
		return summary, nil
	}

	o.logger.Infow("tasks discovered", "count", len(tasks), "status", o.codes.Upload)

	for i := range tasks {
		task := &tasks[i]

		// Zero-document tasks are excluded up front and reported apart
		// from upload failures.
		if len(task.Documents) == 0 {
			o.logger.Warnw("skipping task without documents", "task_id", task.ID, "name", task.Name)
			summary.TasksSkipped++
			continue
		}

		o.logger.Infow("processing task",
			"task_id", task.ID,
			"name", task.Name,
			"documents", len(task.Documents),
			"position", fmt.Sprintf("%d/%d", i+1, len(tasks)))

		summary.TasksProcessed++
		result := o.processor.ProcessTask(ctx, task)
		summary.DocumentsTransferred += result.Transferred()

		var status domain.TaskStatus
		if result.Succeeded() {
			status = o.codes.Success
		} else {
			status = o.codes.Failure
		}

		if err := o.source.UpdateTaskStatus(ctx, task.ID, status); err != nil {
			o.logger.Errorw("failed to update task status", "task_id", task.ID, "status", status, "error", err)
			summary.TasksFailed++
			continue
		}
		task.Status = status

		if status == o.codes.Success {
			summary.TasksSucceeded++
		} else {
			summary.TasksFailed++
		}
	}

	o.logger.Infow("run completed",
		"tasks_processed", summary.TasksProcessed,
		"tasks_succeeded", summary.TasksSucceeded,
		"tasks_failed", summary.TasksFailed,
		"tasks_skipped", summary.TasksSkipped,
		"documents_transferred", summary.DocumentsTransferred)

	return summary, nil
}

package ports

import (
	"context"

	"github.com/docsync/backend/internal/domain"
)

// SessionProvider produces a fresh short-lived credential for the source
// system. One call per run.
type SessionProvider interface {
	ObtainSession(ctx context.Context) (*domain.SessionCredential, error)
}

// SourceClient is the surface of the work-management system the pipeline
// needs. The session credential is installed once per run before any call.
type SourceClient interface {
	SetSession(cred *domain.SessionCredential)
	SearchTasks(ctx context.Context, status domain.TaskStatus, limit int) ([]domain.Task, error)
	DownloadDocument(ctx context.Context, documentID string) ([]byte, error)
	UpdateDocument(ctx context.Context, documentID, description string) error
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error
}

// AssetUploader pushes a local file into the asset store and returns its
// durable reference.
type AssetUploader interface {
	Upload(ctx context.Context, localPath, folder, publicID, displayName string) (*domain.AssetReference, error)
}

// TaskProcessor runs the per-document transfer pipeline for one task.
type TaskProcessor interface {
	ProcessTask(ctx context.Context, task *domain.Task) domain.TaskResult
}

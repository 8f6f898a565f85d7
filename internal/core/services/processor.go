package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docsync/backend/internal/core/ports"
	"github.com/docsync/backend/internal/domain"
	"github.com/docsync/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// Processor drives one document at a time through download -> upload ->
// annotate -> cleanup. Failures are collected per document and never
// short-circuit the remaining documents of the same task; the task verdict
// is reduced from the full outcome set afterwards.
type Processor struct {
	source ports.SourceClient
	store  ports.AssetUploader
	folder string
	tmpDir string
	logger *logger.Logger
}

// NewProcessor builds a Processor. folder is the asset-store folder uploads
// land in; tmpDir is where in-flight document bytes are staged (empty means
// the system temp directory).
func NewProcessor(source ports.SourceClient, store ports.AssetUploader, folder, tmpDir string, log *logger.Logger) *Processor {
	return &Processor{
		source: source,
		store:  store,
		folder: folder,
		tmpDir: tmpDir,
		logger: log,
	}
}

// ProcessTask attempts every document of the task in attachment order and
// returns the collected outcomes. A task with zero documents yields an empty
// result, which the reducer treats as a failure.
func (p *Processor) ProcessTask(ctx context.Context, task *domain.Task) domain.TaskResult {
	result := domain.TaskResult{TaskID: task.ID}

	if len(task.Documents) == 0 {
		p.logger.Warnw("task has no documents to process", "task_id", task.ID, "error", ErrNoDocuments)
		return result
	}

	p.logger.Infow("processing task documents", "task_id", task.ID, "documents", len(task.Documents))

	for i := range task.Documents {
		outcome := p.processDocument(ctx, &task.Documents[i])
		result.Outcomes = append(result.Outcomes, outcome)
	}

	p.logger.Infow("task documents attempted",
		"task_id", task.ID,
		"transferred", result.Transferred(),
		"total", len(result.Outcomes))
	return result
}

// processDocument runs the per-document state machine. The temporary file is
// removed on every exit path, success or failure.
func (p *Processor) processDocument(ctx context.Context, doc *domain.Document) domain.DocumentOutcome {
	outcome := domain.DocumentOutcome{DocumentID: doc.ID, Name: doc.Name, State: domain.DocumentPending}

	fail := func(err error) domain.DocumentOutcome {
		outcome.State, _ = outcome.State.Advance(domain.DocumentFailed)
		outcome.Err = err
		p.logger.Errorw("document transfer failed",
			"document_id", doc.ID,
			"name", doc.Name,
			"error", err)
		return outcome
	}

	var err error
	if outcome.State, err = outcome.State.Advance(domain.DocumentDownloading); err != nil {
		return fail(err)
	}
	content, err := p.source.DownloadDocument(ctx, doc.ID)
	if err != nil {
		return fail(err)
	}

	path, err := p.stageTempFile(content)
	if err != nil {
		return fail(err)
	}
	defer p.removeTempFile(path)

	if outcome.State, err = outcome.State.Advance(domain.DocumentUploading); err != nil {
		return fail(err)
	}
	ref, err := p.store.Upload(ctx, path, p.folder, doc.ID, doc.Name)
	if err != nil {
		return fail(err)
	}

	if outcome.State, err = outcome.State.Advance(domain.DocumentAnnotating); err != nil {
		return fail(err)
	}
	newDescription := appendReference(doc.Description, ref.URL)
	if err := p.source.UpdateDocument(ctx, doc.ID, newDescription); err != nil {
		return fail(err)
	}
	doc.Description = newDescription

	if outcome.State, err = outcome.State.Advance(domain.DocumentDone); err != nil {
		return fail(err)
	}
	p.logger.Infow("document transferred",
		"document_id", doc.ID,
		"name", doc.Name,
		"url", ref.URL)
	return outcome
}

// stageTempFile writes the document bytes to a uniquely named temporary file.
// Names are unique per document so a future parallel variant cannot collide.
func (p *Processor) stageTempFile(content []byte) (string, error) {
	f, err := os.CreateTemp(p.tmpDir, fmt.Sprintf("docsync-%s-*", uuid.NewString()))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return f.Name(), nil
}

func (p *Processor) removeTempFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warnw("failed to remove temp file", "path", path, "error", err)
	}
}

// appendReference adds the asset URL to the existing description without
// discarding the original text.
func appendReference(description, url string) string {
	return strings.TrimSpace(description + " " + url)
}

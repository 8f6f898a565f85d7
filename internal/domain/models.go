package domain

import "time"

// Task is a Workfront task carrying the documents to be transferred.
// Only its status is ever written back; everything else is read-only.
type Task struct {
	ID         string     `json:"ID"`
	Name       string     `json:"name"`
	Status     TaskStatus `json:"status"`
	IsComplete bool       `json:"isComplete"`
	Documents  []Document `json:"documents"`
}

// Document is a file attachment on a task. Content is fetched on demand and
// never kept; the description is appended to with the asset URL after upload.
type Document struct {
	ID          string `json:"ID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SessionCredential is the short-lived token returned by the Workfront JWT
// exchange. Created once per run and shared read-only by every API call.
type SessionCredential struct {
	Token     string
	ExpiresAt time.Time
}

// AssetReference identifies an uploaded asset in Cloudinary.
type AssetReference struct {
	URL          string
	AssetID      string
	ResourceType string
}

// DocumentOutcome records the terminal state of one document transfer.
type DocumentOutcome struct {
	DocumentID string
	Name       string
	State      DocumentState
	Err        error
}

// TaskResult collects the outcome of every document in a task. The task
// verdict is reduced from the full set after all documents were attempted,
// never tracked incrementally.
type TaskResult struct {
	TaskID   string
	Outcomes []DocumentOutcome
}

// Succeeded reports whether the task as a whole passed: every document must
// have reached DONE, and a task with no documents never passes.
func (r TaskResult) Succeeded() bool {
	if len(r.Outcomes) == 0 {
		return false
	}
	for _, o := range r.Outcomes {
		if o.State != DocumentDone {
			return false
		}
	}
	return true
}

// Transferred counts the documents that made it into the asset store.
func (r TaskResult) Transferred() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == DocumentDone {
			n++
		}
	}
	return n
}

// RunSummary accumulates the totals for one run.
type RunSummary struct {
	TasksProcessed       int
	TasksSucceeded       int
	TasksFailed          int
	TasksSkipped         int
	DocumentsTransferred int
}

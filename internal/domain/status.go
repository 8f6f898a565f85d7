package domain

// TaskStatus is a Workfront task status code. The three codes the pipeline
// cares about are string-configurable, so they are resolved once from
// configuration into a StatusCodes value instead of being compared as
// loose strings everywhere.
type TaskStatus string

// StatusCodes is the closed set of status codes a run operates on.
type StatusCodes struct {
	// Upload marks tasks eligible for processing.
	Upload TaskStatus
	// Success is the terminal code for a task whose documents all transferred.
	Success TaskStatus
	// Failure is the terminal code for a task with at least one failed document.
	Failure TaskStatus
}

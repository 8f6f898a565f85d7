package services

import "errors"

// Pipeline errors
var (
	ErrNoDocuments = errors.New("pipeline: task has no documents to upload")
)

package domain

import "fmt"

// DocumentState tracks a document through its transfer lifecycle.
type DocumentState string

const (
	DocumentPending     DocumentState = "PENDING"
	DocumentDownloading DocumentState = "DOWNLOADING"
	DocumentUploading   DocumentState = "UPLOADING"
	DocumentAnnotating  DocumentState = "ANNOTATING"
	DocumentDone        DocumentState = "DONE"
	DocumentFailed      DocumentState = "FAILED"
)

// Terminal reports whether the state is final.
func (s DocumentState) Terminal() bool {
	switch s {
	case DocumentDone, DocumentFailed:
		return true
	default:
		return false
	}
}

// Advance validates and performs a single state transition. Any non-terminal
// state may move to FAILED; forward progress follows the fixed order
// PENDING -> DOWNLOADING -> UPLOADING -> ANNOTATING -> DONE.
func (s DocumentState) Advance(to DocumentState) (DocumentState, error) {
	if !s.canAdvance(to) {
		return s, fmt.Errorf("disallowed document transition: %s -> %s", s, to)
	}
	return to, nil
}

func (s DocumentState) canAdvance(to DocumentState) bool {
	if to == DocumentFailed {
		return !s.Terminal()
	}
	switch s {
	case DocumentPending:
		return to == DocumentDownloading
	case DocumentDownloading:
		return to == DocumentUploading
	case DocumentUploading:
		return to == DocumentAnnotating
	case DocumentAnnotating:
		return to == DocumentDone
	default:
		return false
	}
}

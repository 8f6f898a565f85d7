package domain

import "testing"

func TestDocumentState_ForwardPath(t *testing.T) {
	order := []DocumentState{
		DocumentDownloading,
		DocumentUploading,
		DocumentAnnotating,
		DocumentDone,
	}

	state := DocumentPending
	for _, next := range order {
		var err error
		state, err = state.Advance(next)
		if err != nil {
			t.Fatalf("expected valid transition to %s, got %v", next, err)
		}
	}
	if !state.Terminal() {
		t.Fatalf("expected DONE to be terminal")
	}
}

func TestDocumentState_AnyStageCanFail(t *testing.T) {
	for _, from := range []DocumentState{DocumentPending, DocumentDownloading, DocumentUploading, DocumentAnnotating} {
		got, err := from.Advance(DocumentFailed)
		if err != nil {
			t.Fatalf("expected %s -> FAILED to be valid, got %v", from, err)
		}
		if got != DocumentFailed {
			t.Fatalf("expected FAILED, got %s", got)
		}
	}
}

func TestDocumentState_TerminalStatesAreFinal(t *testing.T) {
	for _, from := range []DocumentState{DocumentDone, DocumentFailed} {
		if !from.Terminal() {
			t.Fatalf("expected %s to be terminal", from)
		}
		if _, err := from.Advance(DocumentDownloading); err == nil {
			t.Fatalf("expected error advancing out of %s", from)
		}
		if _, err := from.Advance(DocumentFailed); err == nil {
			t.Fatalf("expected error failing an already terminal %s", from)
		}
	}
}

func TestDocumentState_NoStageSkipping(t *testing.T) {
	if _, err := DocumentPending.Advance(DocumentUploading); err == nil {
		t.Fatalf("expected error skipping DOWNLOADING")
	}
	if _, err := DocumentDownloading.Advance(DocumentDone); err == nil {
		t.Fatalf("expected error skipping UPLOADING and ANNOTATING")
	}
}

func TestTaskResult_Reducer(t *testing.T) {
	allDone := TaskResult{TaskID: "T1", Outcomes: []DocumentOutcome{
		{DocumentID: "D1", State: DocumentDone},
		{DocumentID: "D2", State: DocumentDone},
	}}
	if !allDone.Succeeded() {
		t.Fatalf("expected all-done task to succeed")
	}
	if allDone.Transferred() != 2 {
		t.Fatalf("expected 2 transferred, got %d", allDone.Transferred())
	}

	oneFailed := TaskResult{TaskID: "T2", Outcomes: []DocumentOutcome{
		{DocumentID: "D1", State: DocumentDone},
		{DocumentID: "D2", State: DocumentFailed},
	}}
	if oneFailed.Succeeded() {
		t.Fatalf("expected task with a failed document to fail")
	}
	if oneFailed.Transferred() != 1 {
		t.Fatalf("expected 1 transferred, got %d", oneFailed.Transferred())
	}

	empty := TaskResult{TaskID: "T3"}
	if empty.Succeeded() {
		t.Fatalf("expected task with no documents to fail")
	}
	if empty.Transferred() != 0 {
		t.Fatalf("expected 0 transferred, got %d", empty.Transferred())
	}
}

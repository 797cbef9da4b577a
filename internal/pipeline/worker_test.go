package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/enhance"
	"github.com/deckforge/doc2slides/internal/parser"
	"github.com/deckforge/doc2slides/internal/progress"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(tracker *progress.Tracker) *Worker {
	enhancer := enhance.New(enhance.Unavailable{}, tracker, testLogger(), 4000, 5)
	return NewWorker(&parser.PDFExtractor{}, &parser.DOCXExtractor{}, enhancer, tracker, testLogger())
}

func TestWorker_ProcessTXT(t *testing.T) {
	tracker := progress.NewTracker()
	w := newTestWorker(tracker)

	doc := &document.Document{
		ID:           "doc1",
		OriginalName: "notes.txt",
		MIMEType:     "text/plain",
		Status:       document.StatusUploaded,
		UploadedAt:   time.Now(),
	}
	doc.SetData([]byte("Annual Report\n\nINTRO:\nThe year went well overall.\n\nOUTLOOK:\nNext year looks promising too."))

	w.Process(context.Background(), doc)

	snap := doc.Snapshot()
	if snap.Status != document.StatusProcessed {
		t.Fatalf("expected processed, got %q (error: %s)", snap.Status, snap.Error)
	}
	if snap.Content == nil {
		t.Fatal("expected content on processed document")
	}
	if snap.Content.Title != "Annual Report" {
		t.Errorf("expected title Annual Report, got %q", snap.Content.Title)
	}

	// Intro + two headed sections + appended conclusion.
	if len(snap.Content.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d: %+v", len(snap.Content.Sections), snap.Content.Sections)
	}
	last := snap.Content.Sections[len(snap.Content.Sections)-1]
	if last.Title != "Conclusion" {
		t.Errorf("expected trailing conclusion section, got %q", last.Title)
	}

	rec, ok := tracker.Get("doc1")
	if !ok {
		t.Fatal("expected progress record retained")
	}
	if rec.Stage != progress.StageComplete || rec.Progress != 100 {
		t.Errorf("expected complete/100, got %s/%d", rec.Stage, rec.Progress)
	}

	if doc.Data() != nil {
		t.Error("expected raw bytes released after processing")
	}
}

func TestWorker_ProcessUnsupportedMIME(t *testing.T) {
	tracker := progress.NewTracker()
	w := newTestWorker(tracker)

	doc := &document.Document{
		ID:       "doc2",
		MIMEType: "image/png",
		Status:   document.StatusUploaded,
	}
	doc.SetData([]byte("not really an image"))

	w.Process(context.Background(), doc)

	snap := doc.Snapshot()
	if snap.Status != document.StatusError {
		t.Fatalf("expected error status, got %q", snap.Status)
	}
	if snap.Error == "" {
		t.Error("expected error message recorded")
	}
	if _, ok := tracker.Get("doc2"); ok {
		t.Error("expected progress record dropped on failure")
	}
}

func TestWorker_ProcessInvalidTXT(t *testing.T) {
	tracker := progress.NewTracker()
	w := newTestWorker(tracker)

	doc := &document.Document{
		ID:       "doc3",
		MIMEType: "text/plain",
		Status:   document.StatusUploaded,
	}
	doc.SetData([]byte{0xff, 0xfe})

	w.Process(context.Background(), doc)

	if snap := doc.Snapshot(); snap.Status != document.StatusError {
		t.Fatalf("expected error status, got %q", snap.Status)
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char id, got %d: %q", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

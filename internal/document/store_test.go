package document

import (
	"testing"
	"time"
)

func TestMemStore_PutGetDelete(t *testing.T) {
	s := NewMemStore(time.Hour)

	doc := &Document{ID: "abc", Status: StatusUploaded, UploadedAt: time.Now()}
	doc.SetData([]byte("payload"))
	s.Put(doc)

	got := s.Get("abc")
	if got == nil {
		t.Fatal("expected document back from store")
	}
	if string(got.Data()) != "payload" {
		t.Errorf("unexpected data: %q", got.Data())
	}

	s.Delete("abc")
	if s.Get("abc") != nil {
		t.Error("expected document gone after Delete")
	}
}

func TestMemStore_GetMissing(t *testing.T) {
	s := NewMemStore(time.Hour)
	if s.Get("nope") != nil {
		t.Error("expected nil for unknown document")
	}
}

func TestMemStore_CleanupEvictsIdleDocuments(t *testing.T) {
	s := NewMemStore(10 * time.Millisecond)

	stale := &Document{ID: "stale"}
	stale.SetData([]byte("x"))
	s.Put(stale)

	fresh := &Document{ID: "fresh"}
	s.Put(fresh)

	time.Sleep(20 * time.Millisecond)
	fresh.SetStatus(StatusProcessing) // touch

	evicted := s.Cleanup()
	if len(evicted) != 1 || evicted[0] != "stale" {
		t.Fatalf("expected [stale] evicted, got %v", evicted)
	}
	if s.Get("stale") != nil {
		t.Error("expected stale document removed")
	}
	if s.Get("fresh") == nil {
		t.Error("expected fresh document retained")
	}
}

func TestDocument_Lifecycle(t *testing.T) {
	doc := &Document{ID: "abc", Status: StatusUploaded, UploadedAt: time.Now()}
	doc.SetData([]byte("raw"))

	doc.SetStatus(StatusProcessing)

	content := &Content{Type: TypeTXT, Title: "T", Sections: []Section{{Title: "S", Level: 1}}}
	doc.SetProcessed(content)

	snap := doc.Snapshot()
	if snap.Status != StatusProcessed {
		t.Errorf("expected processed, got %q", snap.Status)
	}
	if snap.ProcessedAt == nil {
		t.Error("expected ProcessedAt set")
	}
	if snap.Content == nil || snap.Content.Title != "T" {
		t.Errorf("expected content in snapshot, got %+v", snap.Content)
	}
	if doc.Data() != nil {
		t.Error("expected raw bytes released after processing")
	}

	doc.SetConverted("pres-123")
	snap = doc.Snapshot()
	if snap.Status != StatusConverted || snap.PresentationID != "pres-123" {
		t.Errorf("unexpected converted snapshot: %+v", snap)
	}
	if snap.ConvertedAt == nil {
		t.Error("expected ConvertedAt set")
	}
}

func TestDocument_SetFailed(t *testing.T) {
	doc := &Document{ID: "abc", Status: StatusProcessing}
	doc.SetData([]byte("raw"))
	doc.SetFailed("extraction blew up")

	snap := doc.Snapshot()
	if snap.Status != StatusError {
		t.Errorf("expected error status, got %q", snap.Status)
	}
	if snap.Error != "extraction blew up" {
		t.Errorf("unexpected error message: %q", snap.Error)
	}
	if doc.Data() != nil {
		t.Error("expected raw bytes released on failure")
	}
}

package slides

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckforge/doc2slides/internal/document"
)

func testContent() *document.Content {
	return &document.Content{
		Type:  document.TypeTXT,
		Title: "My Deck",
		Sections: []document.Section{
			{Title: "One", Level: 1, Content: "- a\n- b", Type: document.SectionBullets},
		},
	}
}

func TestCreatePresentation(t *testing.T) {
	var gotAuth string
	var batchBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/presentations":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["title"] != "My Deck - Generated Presentation" {
				t.Errorf("unexpected presentation name: %v", body["title"])
			}
			json.NewEncoder(w).Encode(map[string]string{"presentationId": "pres-1"})
		case "/presentations/pres-1:batchUpdate":
			json.NewDecoder(r.Body).Decode(&batchBody)
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClientWithBase(srv.URL, srv.URL)
	id, err := c.CreatePresentation(context.Background(), testContent(), "tok-123", "", "sub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "pres-1" {
		t.Errorf("expected pres-1, got %q", id)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}

	reqs, ok := batchBody["requests"].([]any)
	if !ok || len(reqs) == 0 {
		t.Fatalf("expected batchUpdate requests, got %v", batchBody)
	}
}

func TestCreatePresentation_TemplateCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/tmpl-9/copy":
			json.NewEncoder(w).Encode(map[string]string{"id": "copy-1"})
		case "/presentations/copy-1:batchUpdate":
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClientWithBase(srv.URL, srv.URL)
	id, err := c.CreatePresentation(context.Background(), testContent(), "tok", "tmpl-9", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "copy-1" {
		t.Errorf("expected copy-1, got %q", id)
	}
}

func TestCreatePresentation_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClientWithBase(srv.URL, srv.URL)
	_, err := c.CreatePresentation(context.Background(), testContent(), "bad", "", "")
	if err == nil {
		t.Fatal("expected error from API failure")
	}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected BuildError, got %T", err)
	}
}

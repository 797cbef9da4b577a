package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/parser"
	"github.com/deckforge/doc2slides/internal/pipeline"
	"github.com/deckforge/doc2slides/internal/progress"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	mimeType := uploadMIMEType(header.Header.Get("Content-Type"), filename)
	if !parser.IsSupportedMIME(mimeType) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", mimeType), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		jsonError(w, "file is empty", http.StatusBadRequest)
		return
	}

	doc := &document.Document{
		ID:           pipeline.NewID(),
		OriginalName: filename,
		MIMEType:     mimeType,
		Status:       document.StatusUploaded,
		UploadedAt:   time.Now(),
	}
	doc.SetData(data)
	s.docs.Put(doc)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":           doc.ID,
		"originalName": doc.OriginalName,
		"mimeType":     doc.MIMEType,
		"status":       doc.Status,
		"uploadedAt":   doc.UploadedAt,
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc := s.docs.Get(docID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	snap := doc.Snapshot()
	switch snap.Status {
	case document.StatusProcessing:
		jsonError(w, "document is already being processed", http.StatusConflict)
		return
	case document.StatusProcessed, document.StatusConverted:
		jsonError(w, "document has already been processed", http.StatusConflict)
		return
	case document.StatusError:
		jsonError(w, "document failed processing; upload it again", http.StatusConflict)
		return
	}

	if err := s.orchestrator.Submit(doc); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"id":           doc.ID,
		"status":       document.StatusProcessing,
		"progress_url": fmt.Sprintf("/api/documents/%s/progress", doc.ID),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc := s.docs.Get(docID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc.Snapshot())
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc := s.docs.Get(docID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	rec, ok := s.tracker.Get(docID)
	if !ok {
		// No tracker entry: the document never entered processing, or the
		// entry was already cleaned up after completion.
		snap := doc.Snapshot()
		switch snap.Status {
		case document.StatusProcessed, document.StatusConverted:
			rec = progress.Record{Stage: progress.StageComplete, Progress: 100}
		default:
			jsonError(w, "no progress available", http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

// uploadMIMEType resolves the effective MIME type of an upload. The declared
// part header wins; generic or missing declarations fall back to the file
// extension.
func uploadMIMEType(declared, filename string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			if parser.IsSupportedMIME(mt) {
				return mt
			}
			declared = mt
		}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	}
	return declared
}

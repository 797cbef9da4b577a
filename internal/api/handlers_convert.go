package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deckforge/doc2slides/internal/document"
)

type convertRequest struct {
	AccessToken string `json:"accessToken"`
	TemplateID  string `json:"templateId"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc := s.docs.Get(docID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	snap := doc.Snapshot()
	switch snap.Status {
	case document.StatusProcessed, document.StatusConverted:
	default:
		jsonError(w, "document has not been processed yet", http.StatusConflict)
		return
	}
	if snap.Content == nil {
		jsonError(w, "document has no content", http.StatusConflict)
		return
	}

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.AccessToken == "" {
		jsonError(w, "accessToken is required", http.StatusBadRequest)
		return
	}

	subtitle := s.enhancer.GenerateSubtitle(r.Context(), snap.Content.Title)

	presentationID, err := s.slides.CreatePresentation(r.Context(), snap.Content, req.AccessToken, req.TemplateID, subtitle)
	if err != nil {
		s.log.Error("slide conversion failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to create presentation: "+err.Error(), http.StatusBadGateway)
		return
	}

	doc.SetConverted(presentationID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":             docID,
		"status":         document.StatusConverted,
		"presentationId": presentationID,
		"url":            "https://docs.google.com/presentation/d/" + presentationID + "/edit",
	})
}

package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleTransformStats(w http.ResponseWriter, r *http.Request) {
	if s.transformer == nil || s.transformer.Stats == nil {
		jsonError(w, "transform stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":       s.transformer.Model(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.transformer.Stats.Snapshot(),
	})
}

package handlers

import (
	"net/http"

	"github.com/poselab/posecoach/internal/storage"
)

// HandleHistory serves GET /api/history: the most recent attempts,
// newest first, capped at the history limit.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		attempts, err := h.store.RecentAttempts(r.Context(), storage.HistoryLimit)
		if err != nil {
			h.writeError(w, "Failed to load history: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, attempts)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

package handlers

import "net/http"

// HandlePoses serves GET /api/poses: the pose names known to the
// reference catalog, in catalog order.
func (h *Handler) HandlePoses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.service.Catalog().Names())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

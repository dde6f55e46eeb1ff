package handlers

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"

	_ "golang.org/x/image/webp"

	"github.com/poselab/posecoach/internal/analysis"
	"github.com/poselab/posecoach/internal/estimator"
)

// maxUploadBytes caps the accepted image size.
const maxUploadBytes = 10 * 1024 * 1024

// HandleAnalyze serves POST /api/analyze: multipart form with an
// `image` file, a `mode` string ("auto" default, or "manual"), and an
// optional `pose_name`. The pose name is honored only when mode is
// "manual" and non-empty; otherwise the pose is auto-detected.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, "Failed to read image: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Failed to read image contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) >= maxUploadBytes {
		h.writeError(w, "Image too large (max 10MB)", http.StatusBadRequest)
		return
	}

	img, _, err := image.Decode(bytes.NewReader(fileData))
	if err != nil {
		h.writeError(w, "Invalid image", http.StatusBadRequest)
		return
	}

	mode := r.FormValue("mode")
	poseName := r.FormValue("pose_name")
	effectivePose := ""
	if mode == "manual" && poseName != "" {
		effectivePose = poseName
	}

	result, err := h.service.Analyze(r.Context(), img, effectivePose)
	if err != nil {
		switch {
		case errors.Is(err, estimator.ErrNoPose), errors.Is(err, analysis.ErrUnknownPose):
			h.writeError(w, err.Error(), http.StatusBadRequest)
		default:
			h.writeError(w, "Analysis failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	attempt, err := h.store.SaveAttempt(r.Context(), result.PoseName, result.Score, result.Hints)
	if err != nil {
		h.writeError(w, "Failed to save attempt: "+err.Error(), http.StatusInternalServerError)
		return
	}
	slog.Info("Attempt recorded", "id", attempt.ID, "pose", attempt.PoseName, "score", attempt.Score, "success", attempt.Success)

	h.writeJSON(w, result)
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"defensive-analytics/internal/service"
)

// ClipsHandler handles HTTP requests for the clip collection.
type ClipsHandler struct {
	clips  service.ClipService
	logger *slog.Logger
}

// NewClipsHandler creates a new ClipsHandler.
func NewClipsHandler(clips service.ClipService) *ClipsHandler {
	return &ClipsHandler{
		clips:  clips,
		logger: slog.Default(),
	}
}

// List returns every clip in the unified API shape.
func (h *ClipsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clips, err := h.clips.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list clips")
		return
	}

	writeJSON(w, http.StatusOK, clips)
}

// ListWrapped returns the clip collection under a "clips" key, the shape the
// tagging page has always consumed.
func (h *ClipsHandler) ListWrapped(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clips, err := h.clips.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list clips")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"clips": clips,
		"count": len(clips),
	})
}

// Create stores a new clip record from an arbitrary JSON object.
func (h *ClipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(payload) == 0 {
		writeError(w, http.StatusBadRequest, "Empty request body")
		return
	}

	clip, err := h.clips.Create(ctx, payload)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create clip")
		return
	}

	writeJSON(w, http.StatusCreated, clip)
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/service"
)

// ClipHandler handles HTTP requests for a single clip.
type ClipHandler struct {
	clips  service.ClipService
	logger *slog.Logger
}

// NewClipHandler creates a new ClipHandler.
func NewClipHandler(clips service.ClipService) *ClipHandler {
	return &ClipHandler{
		clips:  clips,
		logger: slog.Default(),
	}
}

// Get returns one clip by id.
func (h *ClipHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	clip, err := h.clips.Get(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to fetch clip")
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

// Update applies a partial update to a clip. Unknown fields are ignored.
func (h *ClipHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	clip, err := h.clips.Update(ctx, id, patch)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update clip")
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

// Delete removes a clip. Deleting an unknown id succeeds.
func (h *ClipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	if err := h.clips.Delete(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete clip")
		return
	}

	logger.InfoContext(ctx, "clip delete handled", "clip_id", id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"defensive-analytics/internal/service"
)

// ShotHandler handles shot annotation updates for a clip.
type ShotHandler struct {
	clips  service.ClipService
	logger *slog.Logger
}

// NewShotHandler creates a new ShotHandler.
func NewShotHandler(clips service.ClipService) *ShotHandler {
	return &ShotHandler{
		clips:  clips,
		logger: slog.Default(),
	}
}

// ShotRequest represents the HTTP request payload for a shot update. The
// legacy tagging page sends the shooter as shooter_designation.
type ShotRequest struct {
	HasShot            string `json:"has_shot"`
	ShotX              string `json:"shot_x"`
	ShotY              string `json:"shot_y"`
	ShotResult         string `json:"shot_result"`
	Shooter            string `json:"shooter"`
	ShooterDesignation string `json:"shooter_designation"`
}

func (r *ShotRequest) shooter() string {
	if r.Shooter != "" {
		return r.Shooter
	}
	return r.ShooterDesignation
}

// Set records shot data on a clip. has_shot defaults to "Yes" when omitted.
func (h *ShotHandler) Set(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	var req ShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	clip, err := h.clips.SetShot(ctx, id, service.ShotUpdate{
		HasShot:    req.HasShot,
		ShotX:      req.ShotX,
		ShotY:      req.ShotY,
		ShotResult: req.ShotResult,
		Shooter:    req.shooter(),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update shot")
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

// Clear resets the shot fields of a clip, leaving the shooter and all other
// fields untouched.
func (h *ShotHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	clip, err := h.clips.ClearShot(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to clear shot")
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

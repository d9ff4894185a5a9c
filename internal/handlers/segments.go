package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"defensive-analytics/internal/service"
	"defensive-analytics/internal/storage"
)

// SegmentsHandler handles the commentary-segment resource of a clip.
type SegmentsHandler struct {
	clips  service.ClipService
	logger *slog.Logger
}

// NewSegmentsHandler creates a new SegmentsHandler.
func NewSegmentsHandler(clips service.ClipService) *SegmentsHandler {
	return &SegmentsHandler{
		clips:  clips,
		logger: slog.Default(),
	}
}

// SegmentPayload represents one audio segment on the wire.
type SegmentPayload struct {
	Start    float64  `json:"start"`
	End      float64  `json:"end"`
	Duration float64  `json:"duration,omitempty"`
	PeakDBFS *float64 `json:"peak_dbfs,omitempty"`
	RMS      *float64 `json:"rms,omitempty"`
	RMSDBFS  *float64 `json:"rms_dbfs,omitempty"`
}

// SegmentsRequest represents the HTTP request payload for replacing segments.
type SegmentsRequest struct {
	Segments []SegmentPayload `json:"segments"`
}

// Get returns a clip's segments ordered by start time.
func (h *SegmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	segments, err := h.clips.Segments(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to fetch segments")
		return
	}

	out := make([]SegmentPayload, 0, len(segments))
	for _, segment := range segments {
		out = append(out, SegmentPayload{
			Start:    segment.Start,
			End:      segment.End,
			Duration: segment.Duration,
			PeakDBFS: segment.PeakDBFS,
			RMS:      segment.RMS,
			RMSDBFS:  segment.RMSDBFS,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"clip_id":  id,
		"segments": out,
		"count":    len(out),
	})
}

// Put replaces a clip's full segment set. An empty list clears all segments.
func (h *SegmentsHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Clip id is required")
		return
	}

	var req SegmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	segments := make([]storage.Segment, 0, len(req.Segments))
	for _, payload := range req.Segments {
		segments = append(segments, storage.Segment{
			ClipID:   id,
			Start:    payload.Start,
			End:      payload.End,
			Duration: payload.Duration,
			PeakDBFS: payload.PeakDBFS,
			RMS:      payload.RMS,
			RMSDBFS:  payload.RMSDBFS,
		})
	}

	if err := h.clips.ReplaceSegments(ctx, id, segments); err != nil {
		handleServiceError(w, ctx, err, "Failed to replace segments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"clip_id": id,
		"count":   len(segments),
	})
}

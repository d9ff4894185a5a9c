package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/extractor"
)

// ExtractHandler handles the video session and clip extraction endpoints.
type ExtractHandler struct {
	session   *extractor.Session
	extractor *extractor.Service
	logger    *slog.Logger
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(session *extractor.Session, svc *extractor.Service) *ExtractHandler {
	return &ExtractHandler{
		session:   session,
		extractor: svc,
		logger:    slog.Default(),
	}
}

// SetVideoRequest represents the HTTP request payload for loading a video.
type SetVideoRequest struct {
	VideoPath string `json:"video_path"`
	Filename  string `json:"filename"`
}

// SetVideo loads the source video for the session, probing local directories
// for the bare filename when the given path does not resolve.
func (h *ExtractHandler) SetVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SetVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	path, err := h.session.SetVideo(req.VideoPath, req.Filename)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to set video")
		return
	}

	logger.InfoContext(ctx, "session video set", "path", path)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "video_path": path})
}

// SetVideoManual loads the source video from an explicit path, expanding a
// leading "~".
func (h *ExtractHandler) SetVideoManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SetVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	path, err := h.session.SetManual(req.VideoPath)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to set video")
		return
	}

	logger.InfoContext(ctx, "session video set manually", "path", path)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "video_path": path})
}

// Extract cuts a clip from the session video and records its metadata. The
// payload carries the tagging form's human-readable keys.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.extractor.Extract(ctx, data)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to extract clip")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"clip_id":  result.ClipID,
		"filename": result.Filename,
		"path":     result.Path,
	})
}

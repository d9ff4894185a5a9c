package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"defensive-analytics/internal/contextutil"
)

// MediaHandler serves extracted clip files with range support so the browser
// video element can seek.
type MediaHandler struct {
	clipsDir string
	logger   *slog.Logger
}

// NewMediaHandler creates a new MediaHandler rooted at the clips directory.
func NewMediaHandler(clipsDir string) *MediaHandler {
	return &MediaHandler{
		clipsDir: clipsDir,
		logger:   slog.Default(),
	}
}

// ServeHTTP streams the requested clip file.
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	raw := chi.URLParam(r, "filename")
	filename, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filename encoding")
		return
	}

	// Strip any path component; only bare filenames inside the clips
	// directory are served.
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == ".." {
		writeError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	path := filepath.Join(h.clipsDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		logger.WarnContext(ctx, "clip file not found", "filename", filename)
		writeError(w, http.StatusNotFound, "Clip file not found")
		return
	}

	// The tagger re-requests clips right after extraction; stale caches show
	// the previous clip under a reused filename.
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Accept-Ranges", "bytes")
	http.ServeFile(w, r, path)
}

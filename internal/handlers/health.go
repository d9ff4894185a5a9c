package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/extractor"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 *sql.DB
	session            *extractor.Session
	clipsDir           string
	workbookPath       string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, session *extractor.Session, clipsDir, workbookPath string) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		session:            session,
		clipsDir:           clipsDir,
		workbookPath:       workbookPath,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Issues    []string          `json:"issues,omitempty"`
}

// Status is the lightweight liveness endpoint the tagging page polls.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "defensive-analytics",
	})
}

// ServeHTTP handles the full dependency health check. Returns 200 when
// healthy, 503 when any dependency is unavailable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
	} else {
		checks["database"] = "ok"
	}

	if info, err := os.Stat(h.clipsDir); err != nil || !info.IsDir() {
		checks["clips_dir"] = "error"
		issues = append(issues, "clips_dir_missing")
	} else {
		checks["clips_dir"] = "ok"
	}

	// Informational only: extraction needs a video, listing and tagging don't.
	if h.session != nil && h.session.Path() != "" {
		checks["video"] = "loaded"
	} else {
		checks["video"] = "none"
	}

	// The workbook is created on first append, so a missing file is only
	// reported, never unhealthy.
	if _, err := os.Stat(h.workbookPath); err != nil {
		checks["workbook"] = "missing"
	} else {
		checks["workbook"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	writeJSON(w, httpStatus, response)
}

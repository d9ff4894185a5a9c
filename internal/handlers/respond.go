// Package handlers contains the HTTP handlers for the analytics API: clip
// CRUD, shot updates, clip extraction, workbook appends and media serving.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/extractor"
	"defensive-analytics/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps service errors to appropriate HTTP status codes and
// responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var toolErr *extractor.ToolError
	if errors.As(err, &toolErr) {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Extraction failed: %s", toolErr.Output))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrClipNotFound) {
		writeError(w, http.StatusNotFound, "Clip not found")
		return
	}

	if errors.Is(err, service.ErrBridgeUnavailable) {
		writeError(w, http.StatusBadGateway, "Bridge controller unavailable")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}

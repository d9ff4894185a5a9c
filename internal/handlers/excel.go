package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"defensive-analytics/internal/bridge"
	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/excel"
)

// ExcelHandler handles the workbook append endpoints and proxies lifecycle
// calls to the external bridge controller.
type ExcelHandler struct {
	workbook   *excel.Service
	controller bridge.Controller
	logger     *slog.Logger
	now        func() time.Time
}

// NewExcelHandler creates a new ExcelHandler.
func NewExcelHandler(workbook *excel.Service, controller bridge.Controller) *ExcelHandler {
	return &ExcelHandler{
		workbook:   workbook,
		controller: controller,
		logger:     slog.Default(),
		now:        time.Now,
	}
}

// Append writes a row of tagging fields into the workbook. The body is either
// a flat object of sheet fields with the reserved routing keys mixed in
// (`target_row`/`Target_Row`, `overwrite`/`Overwrite`), or the same routing
// keys next to a nested "fields" object. A receipt time is stamped when the
// payload lacks one, so the sheet records when each row arrived.
func (h *ExcelHandler) Append(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields, targetRow, overwrite := splitAppendBody(body)
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "No fields provided")
		return
	}

	if _, ok := fields["Bridge_Received_At"]; !ok {
		fields["Bridge_Received_At"] = h.now().Format(time.RFC3339)
	}

	row, err := h.workbook.Append(fields, targetRow, overwrite)
	if err != nil {
		if errors.Is(err, excel.ErrNoRoom) {
			writeError(w, http.StatusConflict, "No empty row available near the requested position")
			return
		}
		logger.ErrorContext(ctx, "workbook append failed", "target_row", targetRow, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to append to workbook")
		return
	}

	logger.InfoContext(ctx, "workbook row written", "row", row, "overwrite", overwrite)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"row":      row,
		"saved_to": h.workbook.Path(),
	})
}

// splitAppendBody separates the reserved routing keys from the sheet fields.
func splitAppendBody(body map[string]any) (fields map[string]any, targetRow int, overwrite bool) {
	fields = make(map[string]any, len(body))

	for key, value := range body {
		switch key {
		case "target_row", "Target_Row":
			targetRow = asInt(value)
		case "overwrite", "Overwrite":
			b, _ := value.(bool)
			overwrite = b
		case "fields":
			if nested, ok := value.(map[string]any); ok {
				for k, v := range nested {
					fields[k] = v
				}
			}
		default:
			fields[key] = value
		}
	}

	return fields, targetRow, overwrite
}

func asInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// CheckRow reports whether a workbook row already holds data.
func (h *ExcelHandler) CheckRow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	// The tagging page polls without a parameter and means the first data row.
	row := 2
	if raw := r.URL.Query().Get("row"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Query parameter 'row' must be a positive integer")
			return
		}
		row = parsed
	}

	occupied, err := h.workbook.CheckRow(row)
	if err != nil {
		logger.ErrorContext(ctx, "workbook check failed", "row", row, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to check workbook row")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": row, "has_data": occupied})
}

// Peek returns the last rows of the sheet for quick verification from the
// tagging page.
func (h *ExcelHandler) Peek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	n := 3
	raw := r.URL.Query().Get("rows")
	if raw == "" {
		raw = r.URL.Query().Get("n")
	}
	if raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Query parameter 'rows' must be a positive integer")
			return
		}
		n = parsed
	}

	rows, err := h.workbook.Peek(n)
	if err != nil {
		logger.ErrorContext(ctx, "workbook peek failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read workbook")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"rows":     rows,
		"count":    len(rows),
		"sheet":    h.workbook.Sheet(),
		"workbook": h.workbook.Path(),
	})
}

// Status reports local workbook state together with the bridge controller's
// status. An unreachable controller is reported inline so the tagging page can
// still show workbook information.
func (h *ExcelHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	body := map[string]any{
		"ok":       true,
		"workbook": h.workbook.Path(),
		"sheet":    h.workbook.Sheet(),
	}
	_, err := os.Stat(h.workbook.Path())
	body["workbook_exists"] = err == nil

	status, err := h.controller.Status(ctx)
	if err != nil {
		logger.WarnContext(ctx, "bridge controller status unavailable", "error", err)
		body["controller"] = map[string]any{"ok": false, "error": err.Error()}
	} else {
		body["controller"] = status
	}

	writeJSON(w, http.StatusOK, body)
}

// Start asks the bridge controller to launch the bridge process.
func (h *ExcelHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, h.controller.Start)
}

// Stop asks the bridge controller to shut the bridge process down.
func (h *ExcelHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, h.controller.Stop)
}

func (h *ExcelHandler) proxy(w http.ResponseWriter, r *http.Request, call func(ctx context.Context) (*bridge.Status, error)) {
	ctx := r.Context()

	status, err := call(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Bridge controller error")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

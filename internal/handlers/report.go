package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/service"
)

// ReportHandler renders a clip's scouting report as an HTML page.
type ReportHandler struct {
	clips    service.ClipService
	parser   goldmark.Markdown
	template *template.Template
	logger   *slog.Logger
}

// reportPageData holds template data for rendered report pages.
type reportPageData struct {
	Title   string
	ClipID  string
	Content template.HTML
}

// NewReportHandler creates a new handler for serving clip reports.
func NewReportHandler(clips service.ClipService) *ReportHandler {
	tmpl := template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 840px;
      line-height: 1.6;
      background: #101418;
      color: #e6edf3;
    }
    header {
      margin-bottom: 1.5rem;
      border-bottom: 1px solid #30363d;
      padding-bottom: 1rem;
    }
    h1 { margin-top: 0; font-size: 1.6rem; }
    article {
      background: #161b22;
      border: 1px solid #30363d;
      border-radius: 10px;
      padding: 1.5rem;
    }
    article h2 { color: #9ec1ff; margin-top: 1.25rem; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #30363d; padding: 6px 10px; text-align: left; }
    th { background: #1f2630; }
    .meta { color: #8b949e; font-size: 0.9rem; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">Clip: {{.ClipID}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &ReportHandler{
		clips: clips,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
		logger:   slog.Default(),
	}
}

// ServeHTTP renders the requested clip as an HTML scouting report.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

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

	markdown := buildReportMarkdown(clip)

	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(markdown), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render report", "clip_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	pageData := reportPageData{
		Title:   reportTitle(clip),
		ClipID:  id,
		Content: template.HTML(buf.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute report template", "clip_id", id, "error", err)
	}
}

// buildReportMarkdown lays the clip's tagging fields out as a markdown
// report: a possession header, a defensive-detail table, shot data when
// present, and free-form notes last.
func buildReportMarkdown(clip map[string]any) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Possession\n\n")
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	writeRow(&b, "Opponent", clip["opponent"])
	writeRow(&b, "Quarter", clip["quarter"])
	writeRow(&b, "Possession", clip["possession"])
	writeRow(&b, "Situation", clip["situation"])
	writeRow(&b, "Start", clip["start_time"])
	writeRow(&b, "End", clip["end_time"])

	fmt.Fprintf(&b, "\n## Defense\n\n")
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	writeRow(&b, "Formation", clip["formation"])
	writeRow(&b, "Play Name", clip["play_name"])
	writeRow(&b, "Coverage", clip["coverage"])
	writeRow(&b, "Ball Screen", clip["ball_screen"])
	writeRow(&b, "Off-Ball Screen", clip["off_ball_screen"])
	writeRow(&b, "Help/Rotation", clip["help_rotation"])
	writeRow(&b, "Disruption", clip["disruption"])
	writeRow(&b, "Breakdown", clip["breakdown"])
	writeRow(&b, "Result", clip["result"])
	writeRow(&b, "Points", clip["points"])

	if hasShot, _ := clip["has_shot"].(string); strings.EqualFold(hasShot, "Yes") {
		fmt.Fprintf(&b, "\n## Shot\n\n")
		fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
		writeRow(&b, "Shooter", clip["shooter"])
		writeRow(&b, "Location", clip["shot_location"])
		writeRow(&b, "Contest", clip["contest"])
		writeRow(&b, "Result", clip["shot_result"])
		writeRow(&b, "Rebound", clip["rebound"])
	}

	if notes, _ := clip["notes"].(string); notes != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", notes)
	}

	return b.String()
}

func writeRow(b *strings.Builder, label string, value any) {
	text := fmt.Sprintf("%v", value)
	if value == nil || text == "" {
		text = "-"
	}
	fmt.Fprintf(b, "| %s | %s |\n", label, text)
}

func reportTitle(clip map[string]any) string {
	opponent, _ := clip["opponent"].(string)
	if opponent == "" {
		opponent = "Unknown opponent"
	}
	return fmt.Sprintf("Defensive report: %v vs Q%v P%v", opponent, clip["quarter"], clip["possession"])
}

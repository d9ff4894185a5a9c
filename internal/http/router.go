// Package http wires the chi router for the analytics API.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"defensive-analytics/internal/bridge"
	"defensive-analytics/internal/excel"
	"defensive-analytics/internal/extractor"
	"defensive-analytics/internal/handlers"
	"defensive-analytics/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ClipService service.ClipService
	Session     *extractor.Session
	Extractor   *extractor.Service
	Workbook    *excel.Service
	Controller  bridge.Controller
	DB          *sql.DB
	ClipsDir    string
}

// NewRouter creates a new HTTP router with the provided dependencies. The
// legacy routes mirror the paths the tagging page was built against; the /api
// routes are the unified surface.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	clipsHandler := handlers.NewClipsHandler(deps.ClipService)
	clipHandler := handlers.NewClipHandler(deps.ClipService)
	shotHandler := handlers.NewShotHandler(deps.ClipService)
	segmentsHandler := handlers.NewSegmentsHandler(deps.ClipService)
	extractHandler := handlers.NewExtractHandler(deps.Session, deps.Extractor)
	excelHandler := handlers.NewExcelHandler(deps.Workbook, deps.Controller)
	reportHandler := handlers.NewReportHandler(deps.ClipService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Session, deps.ClipsDir, deps.Workbook.Path())
	mediaHandler := handlers.NewMediaHandler(deps.ClipsDir)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Get("/clips", clipsHandler.List)
		r.Post("/clips", clipsHandler.Create)

		r.Route("/clip/{id}", func(r chi.Router) {
			r.Get("/", clipHandler.Get)
			r.Put("/", clipHandler.Update)
			r.Delete("/", clipHandler.Delete)

			r.Put("/shot", shotHandler.Set)
			r.Delete("/shot", shotHandler.Clear)

			r.Get("/segments", segmentsHandler.Get)
			r.Put("/segments", segmentsHandler.Put)

			r.Method(http.MethodGet, "/report", reportHandler)
		})
	})

	// Clip file serving, both the current and the legacy path.
	r.Method(http.MethodGet, "/clips/{filename}", mediaHandler)
	r.Method(http.MethodGet, "/legacy/Clips/{filename}", mediaHandler)

	// Extraction endpoints, kept at their legacy paths.
	r.Post("/set_video", extractHandler.SetVideo)
	r.Post("/set_video_manual", extractHandler.SetVideoManual)
	r.Post("/extract_clip", extractHandler.Extract)
	r.Get("/get_clips", clipsHandler.ListWrapped)

	// Workbook endpoints, legacy paths plus the /excel surface.
	r.Get("/check_row", excelHandler.CheckRow)
	r.Post("/append", excelHandler.Append)
	r.Get("/peek", excelHandler.Peek)

	r.Route("/excel", func(r chi.Router) {
		r.Get("/status", excelHandler.Status)
		r.Post("/start", excelHandler.Start)
		r.Post("/stop", excelHandler.Stop)
		r.Get("/check-row", excelHandler.CheckRow)
		r.Post("/append", excelHandler.Append)
	})

	r.Get("/", healthHandler.Status)
	r.Get("/health", healthHandler.Status)

	return r
}

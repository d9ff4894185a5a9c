package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"defensive-analytics/internal/bridge"
	"defensive-analytics/internal/config"
	"defensive-analytics/internal/excel"
	"defensive-analytics/internal/extractor"
	"defensive-analytics/internal/http"
	"defensive-analytics/internal/mirror"
	"defensive-analytics/internal/service"
	"defensive-analytics/internal/storage"
	"defensive-analytics/internal/translate"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Metadata stores and the field translator
	clipRepo := storage.NewClipRepo(db)
	mirrorStore := mirror.NewStore(cfg.MetadataFile)
	translator := translate.New(cfg.ClipsDir)

	clipService := service.NewClipService(clipRepo, mirrorStore, translator)
	slog.Info("Clip service initialized", "clips_dir", cfg.ClipsDir, "metadata_file", cfg.MetadataFile)

	// Clip extraction
	session := extractor.NewSession(cfg.ClipsDir)
	runner := extractor.NewRunner(cfg.FFmpegPath)
	extractService := extractor.NewService(cfg.ClipsDir, session, clipRepo, mirrorStore, runner)
	slog.Info("Extractor initialized", "ffmpeg", cfg.FFmpegPath)

	// Workbook append service and the external bridge controller
	workbook := excel.NewService(cfg.WorkbookPath, cfg.SheetName)
	controller := bridge.NewClient(cfg.BridgeCtrlURL)
	slog.Info("Workbook service initialized", "workbook", cfg.WorkbookPath, "sheet", cfg.SheetName)

	// Create router with dependencies
	deps := &http.Deps{
		ClipService: clipService,
		Session:     session,
		Extractor:   extractService,
		Workbook:    workbook,
		Controller:  controller,
		DB:          db,
		ClipsDir:    cfg.ClipsDir,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

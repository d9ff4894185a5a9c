package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort       string
	DBPath        string
	ClipsDir      string
	MetadataFile  string
	WorkbookPath  string
	SheetName     string
	BridgeCtrlURL string
	FFmpegPath    string
	LogLevel      slog.Level
	LogFormat     string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and creates the data and clips
// directories. If a .env file exists in the current directory or project root,
// it will be loaded automatically. Environment variables already set take
// precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Try to find project root by looking for a .env file in parent directories
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	clipsDir := getEnv("CLIPS_DIR", "./Clips")

	cfg := &Config{
		APIPort:       getEnv("API_PORT", "8000"),
		DBPath:        getEnv("DB_PATH", "./data/analytics.sqlite"),
		ClipsDir:      clipsDir,
		MetadataFile:  getEnv("METADATA_FILE", filepath.Join(clipsDir, "clips_metadata.json")),
		WorkbookPath:  resolveWorkbookPath(),
		SheetName:     getEnv("SHEET_NAME", "Tagging"),
		BridgeCtrlURL: getEnv("BRIDGE_CTRL_URL", "http://127.0.0.1:5000"),
		FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Create directories for the DB file and extracted clips up front
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.ClipsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create clips directory: %w", err)
	}

	return cfg, nil
}

// resolveWorkbookPath picks the workbook file. The legacy deployment kept a
// working copy next to the primary workbook; prefer the primary when it exists,
// fall back to the copy, and default to the primary path for a fresh workbook.
func resolveWorkbookPath() string {
	if path := os.Getenv("WORKBOOK_PATH"); path != "" {
		return path
	}
	primary := filepath.Join("Excel & Report", "OU WBB Defensive Project.xlsx")
	fallback := filepath.Join("Excel & Report", "OU WBB Defensive Project copy.xlsx")
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}
	return primary
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Package extractor turns tagging requests into clip files via ffmpeg and
// records the resulting clip through both metadata stores.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/mirror"
	"defensive-analytics/internal/service"
	"defensive-analytics/internal/storage"
)

// Runner executes the ffmpeg binary. Extracted so tests can fake the tool.
type Runner interface {
	// Run executes ffmpeg with the given arguments and returns its combined
	// output.
	Run(ctx context.Context, args ...string) (string, error)
}

// ffmpegRunner invokes the real binary.
type ffmpegRunner struct {
	path string
}

// NewRunner returns a Runner for the ffmpeg binary at the given path.
func NewRunner(ffmpegPath string) Runner {
	return &ffmpegRunner{path: ffmpegPath}
}

func (r *ffmpegRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("ffmpeg error: %w", err)
	}
	return string(output), nil
}

// ToolError carries ffmpeg's diagnostic output when extraction fails.
type ToolError struct {
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("ffmpeg failed: %v: %s", e.Err, e.Output)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Result describes a successfully extracted clip.
type Result struct {
	ClipID   string
	Filename string
	Path     string
}

// Service performs clip extraction and the follow-up dual write.
type Service struct {
	clipsDir string
	session  *Session
	store    storage.ClipStore
	mirror   *mirror.Store
	runner   Runner
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates an extraction service.
func NewService(clipsDir string, session *Session, store storage.ClipStore, mirrorStore *mirror.Store, runner Runner) *Service {
	return &Service{
		clipsDir: clipsDir,
		session:  session,
		store:    store,
		mirror:   mirrorStore,
		runner:   runner,
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// Extract cuts a clip out of the current session video and persists its
// metadata. The request payload uses the tagger's human-readable keys
// ("Start Time", "Game #", ...) plus the optional canonical-identity
// overrides (__gameId, __clipId, __opponent).
func (s *Service) Extract(ctx context.Context, data map[string]any) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	startTime := stringField(data, "Start Time", "")
	endTime := stringField(data, "End Time", "")
	gameNum := stringField(data, "Game #", "1")
	quarter := stringField(data, "Quarter", "1")
	possession := stringField(data, "Possession #", "1")
	opponentRaw := stringField(data, "Opponent", "Unknown")
	opponentSlug := Slugify(opponentRaw, "opponent")

	if startTime == "" || endTime == "" {
		return nil, &service.ValidationError{Field: "times", Message: "Start and End times required"}
	}

	videoPath := s.session.Path()
	if videoPath == "" || !fileExists(videoPath) {
		return nil, &service.ValidationError{Field: "video", Message: "no video file loaded; load a video first"}
	}

	startSec := TimeToSeconds(startTime)
	endSec := TimeToSeconds(endTime)
	duration := endSec - startSec
	if duration <= 0 {
		return nil, &service.ValidationError{Field: "times", Message: "End time must be after start time"}
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("G%s_Q%s_P%s_%s_%s.mp4", gameNum, quarter, possession, opponentSlug, timestamp)
	outputPath := filepath.Join(s.clipsDir, filename)

	// Copy-codec extraction: fast and lossless, no re-encode.
	args := []string{
		"-ss", strconv.Itoa(startSec),
		"-i", videoPath,
		"-t", strconv.Itoa(duration),
		"-c", "copy",
		"-avoid_negative_ts", "1",
		outputPath,
	}
	if output, err := s.runner.Run(ctx, args...); err != nil {
		logger.ErrorContext(ctx, "extraction failed", "filename", filename, "error", err)
		return nil, &ToolError{Output: output, Err: err}
	}

	clipID := stringField(data, "__clipId", "")
	if clipID == "" {
		clipID = fmt.Sprintf("clip_%s_%s_%s_%s", timestamp, gameNum, quarter, possession)
	}
	canonicalGameID := stringField(data, "__gameId", "")
	if canonicalGameID == "" {
		canonicalGameID = fmt.Sprintf("G%s_%s", gameNum, opponentSlug)
	}
	opponent := stringField(data, "__opponent", opponentRaw)
	createdAt := s.now().Format(time.RFC3339Nano)

	clip := &storage.Clip{
		ID:              clipID,
		Filename:        filename,
		Path:            outputPath,
		GameID:          atoi(gameNum),
		CanonicalGameID: canonicalGameID,
		CanonicalClipID: clipID,
		Opponent:        opponent,
		OpponentSlug:    opponentSlug,
		Quarter:         atoi(quarter),
		Possession:      atoi(possession),
		Situation:       stringField(data, "Situation", ""),
		Formation:       stringField(data, "Offensive Formation", ""),
		PlayName:        stringField(data, "Play Name", ""),
		ScoutCoverage:   stringField(data, "Covered in Scout?", ""),
		ActionTrigger:   stringField(data, "Action Trigger", ""),
		ActionTypes:     stringField(data, "Action Type(s)", ""),
		ActionSequence:  stringField(data, "Action Sequence", ""),
		Coverage:        stringField(data, "Defensive Coverage", ""),
		BallScreen:      stringField(data, "Ball Screen Coverage", ""),
		OffBallScreen:   stringField(data, "Off-Ball Screen Coverage", ""),
		HelpRotation:    stringField(data, "Help/Rotation", ""),
		Disruption:      stringField(data, "Defensive Disruption", ""),
		Breakdown:       stringField(data, "Defensive Breakdown", ""),
		Result:          stringField(data, "Play Result", ""),
		PaintTouch:      stringField(data, "Paint Touches", ""),
		Shooter:         stringField(data, "Shooter Designation", ""),
		ShotLocation:    stringField(data, "Shot Location", ""),
		Contest:         stringField(data, "Shot Contest", ""),
		Rebound:         stringField(data, "Rebound Outcome", ""),
		Points:          intField(data, "Points"),
		HasShot:         stringField(data, "Has Shot", ""),
		ShotX:           stringField(data, "Shot X", ""),
		ShotY:           stringField(data, "Shot Y", ""),
		ShotResult:      stringField(data, "Shot Result", ""),
		Notes:           stringField(data, "Notes", ""),
		StartTime:       startTime,
		EndTime:         endTime,
		CreatedAt:       createdAt,
	}

	if err := s.store.Upsert(ctx, clip); err != nil {
		logger.ErrorContext(ctx, "failed to store extracted clip", "clip_id", clipID, "error", err)
		return nil, service.WrapError(err, "failed to store extracted clip")
	}

	entry := mirror.Entry{
		"id":              clipID,
		"filename":        filename,
		"path":            outputPath,
		"gameId":          atoi(gameNum),
		"quarter":         atoi(quarter),
		"possession":      atoi(possession),
		"opponent":        opponent,
		"situation":       clip.Situation,
		"formation":       clip.Formation,
		"playName":        clip.PlayName,
		"scoutCoverage":   clip.ScoutCoverage,
		"actionTrigger":   clip.ActionTrigger,
		"actionTypes":     clip.ActionTypes,
		"actionSequence":  clip.ActionSequence,
		"coverage":        clip.Coverage,
		"ballScreen":      clip.BallScreen,
		"offBallScreen":   clip.OffBallScreen,
		"helpRotation":    clip.HelpRotation,
		"disruption":      clip.Disruption,
		"breakdown":       clip.Breakdown,
		"result":          clip.Result,
		"paintTouch":      clip.PaintTouch,
		"shooter":         clip.Shooter,
		"shotLocation":    clip.ShotLocation,
		"contest":         clip.Contest,
		"rebound":         clip.Rebound,
		"points":          clip.Points,
		"hasShot":         clip.HasShot,
		"shotX":           clip.ShotX,
		"shotY":           clip.ShotY,
		"shotResult":      clip.ShotResult,
		"notes":           clip.Notes,
		"startTime":       startTime,
		"endTime":         endTime,
		"createdAt":       createdAt,
		"canonicalGameId": canonicalGameID,
		"canonicalClipId": clipID,
		"__gameId":        canonicalGameID,
		"__clipId":        clipID,
		"__opponent":      opponent,
	}
	if err := s.mirror.Append(entry); err != nil {
		logger.WarnContext(ctx, "mirror append failed", "clip_id", clipID, "error", err)
	}

	logger.InfoContext(ctx, "clip extracted", "clip_id", clipID, "filename", filename, "duration_sec", duration)
	return &Result{ClipID: clipID, Filename: filename, Path: outputPath}, nil
}

func stringField(data map[string]any, key, fallback string) string {
	value, ok := data[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return fallback
		}
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intField(data map[string]any, key string) int64 {
	switch v := data[key].(type) {
	case float64:
		return int64(v)
	case string:
		return atoi(v)
	default:
		return 0
	}
}

func atoi(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clip_store.go -package=mocks defensive-analytics/internal/storage ClipStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// clipColumns is the full column set of the clips table, in insert order.
var clipColumns = []string{
	"id", "filename", "path", "game_id", "canonical_game_id", "canonical_clip_id",
	"opponent", "opponent_slug", "location", "game_score", "quarter", "possession",
	"situation", "formation", "play_name", "scout_coverage", "action_trigger",
	"action_types", "action_sequence", "coverage", "ball_screen", "off_ball_screen",
	"help_rotation", "disruption", "breakdown", "result", "paint_touch", "shooter",
	"shot_location", "contest", "rebound", "points", "has_shot", "shot_x", "shot_y",
	"shot_result", "notes", "start_time", "end_time", "created_at", "updated_at",
}

// ClipStore defines the interface for clip storage operations.
type ClipStore interface {
	// Upsert inserts a new clip or overwrites every non-identity column of an
	// existing row with the same id.
	Upsert(ctx context.Context, clip *Clip) error
	// FetchAll returns every clip, newest first.
	FetchAll(ctx context.Context) ([]*Clip, error)
	// FetchOne returns the clip or nil and ErrNotFound.
	FetchOne(ctx context.Context, id string) (*Clip, error)
	// Remove deletes the clip and, via cascade, its segments. Missing ids are a no-op.
	Remove(ctx context.Context, id string) error
	// ReplaceSegments swaps the full segment set for a clip.
	ReplaceSegments(ctx context.Context, clipID string, segments []Segment) error
	// FetchSegments returns a clip's segments ordered by start time.
	FetchSegments(ctx context.Context, clipID string) ([]Segment, error)
}

// ClipRepo provides methods for clip and segment operations.
// It implements the ClipStore interface.
type ClipRepo struct {
	db *sql.DB
}

// NewClipRepo creates a new ClipRepo.
func NewClipRepo(db *sql.DB) *ClipRepo {
	return &ClipRepo{db: db}
}

// Upsert inserts a new clip or updates an existing one by primary key.
// Every column except id and created_at is overwritten on conflict; updated_at
// advances on each call, created_at is only set when the record carries none.
func (r *ClipRepo) Upsert(ctx context.Context, clip *Clip) error {
	if clip.ID == "" {
		return fmt.Errorf("clip id is required")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if clip.CreatedAt == "" {
		clip.CreatedAt = now
	}
	clip.UpdatedAt = now

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(clipColumns)), ", ")
	assignments := make([]string, 0, len(clipColumns))
	for _, col := range clipColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO clips (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(clipColumns, ", "), placeholders, strings.Join(assignments, ", "),
	)

	_, err := r.db.ExecContext(ctx, query,
		clip.ID, clip.Filename, clip.Path, clip.GameID, clip.CanonicalGameID,
		clip.CanonicalClipID, clip.Opponent, clip.OpponentSlug, clip.Location,
		clip.GameScore, clip.Quarter, clip.Possession, clip.Situation,
		clip.Formation, clip.PlayName, clip.ScoutCoverage, clip.ActionTrigger,
		clip.ActionTypes, clip.ActionSequence, clip.Coverage, clip.BallScreen,
		clip.OffBallScreen, clip.HelpRotation, clip.Disruption, clip.Breakdown,
		clip.Result, clip.PaintTouch, clip.Shooter, clip.ShotLocation,
		clip.Contest, clip.Rebound, clip.Points, clip.HasShot, clip.ShotX,
		clip.ShotY, clip.ShotResult, clip.Notes, clip.StartTime, clip.EndTime,
		clip.CreatedAt, clip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert clip: %w", err)
	}

	return nil
}

// FetchAll returns every clip ordered by creation time, newest first.
func (r *ClipRepo) FetchAll(ctx context.Context) ([]*Clip, error) {
	query := fmt.Sprintf("SELECT %s FROM clips ORDER BY created_at DESC", strings.Join(clipColumns, ", "))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clips: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var clips []*Clip
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clips: %w", err)
	}

	return clips, nil
}

// FetchOne returns the clip with the given id, or nil and ErrNotFound.
func (r *ClipRepo) FetchOne(ctx context.Context, id string) (*Clip, error) {
	query := fmt.Sprintf("SELECT %s FROM clips WHERE id = ?", strings.Join(clipColumns, ", "))
	row := r.db.QueryRowContext(ctx, query, id)

	clip, err := scanClip(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return clip, nil
}

// Remove deletes the clip; segment rows go with it through the FK cascade.
// Deleting a nonexistent id is not an error.
func (r *ClipRepo) Remove(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM clips WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}
	return nil
}

// ReplaceSegments deletes all existing segments for the clip and inserts the
// provided list in a single transaction. An empty list removes every segment.
func (r *ClipRepo) ReplaceSegments(ctx context.Context, clipID string, segments []Segment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comm_segments WHERE clip_id = ?", clipID); err != nil {
		return fmt.Errorf("failed to clear segments: %w", err)
	}

	for _, seg := range segments {
		duration := seg.Duration
		if duration == 0 {
			duration = seg.End - seg.Start
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO comm_segments (clip_id, start, "end", duration, peak_dbfs, rms, rms_dbfs)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			clipID, seg.Start, seg.End, duration, seg.PeakDBFS, seg.RMS, seg.RMSDBFS,
		)
		if err != nil {
			return fmt.Errorf("failed to insert segment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segments: %w", err)
	}

	return nil
}

// FetchSegments returns the clip's segments ordered by start time ascending.
func (r *ClipRepo) FetchSegments(ctx context.Context, clipID string) ([]Segment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, clip_id, start, "end", duration, peak_dbfs, rms, rms_dbfs, created_at
		 FROM comm_segments
		 WHERE clip_id = ?
		 ORDER BY start`,
		clipID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var segments []Segment
	for rows.Next() {
		var seg Segment
		var createdAt sql.NullString
		if err := rows.Scan(&seg.ID, &seg.ClipID, &seg.Start, &seg.End, &seg.Duration,
			&seg.PeakDBFS, &seg.RMS, &seg.RMSDBFS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		seg.CreatedAt = createdAt.String
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate segments: %w", err)
	}

	return segments, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClip(row rowScanner) (*Clip, error) {
	var clip Clip
	var (
		gameID, quarter, possession, points                                       sql.NullInt64
		canonicalGameID, canonicalClipID, opponent, opponentSlug                  sql.NullString
		location, gameScore, situation, formation, playName, scoutCoverage        sql.NullString
		actionTrigger, actionTypes, actionSequence, coverage, ballScreen          sql.NullString
		offBallScreen, helpRotation, disruption, breakdown, result, paintTouch    sql.NullString
		shooter, shotLocation, contest, rebound, hasShot, shotX, shotY            sql.NullString
		shotResult, notes, startTime, endTime, createdAt, updatedAt               sql.NullString
	)

	err := row.Scan(
		&clip.ID, &clip.Filename, &clip.Path, &gameID, &canonicalGameID,
		&canonicalClipID, &opponent, &opponentSlug, &location, &gameScore,
		&quarter, &possession, &situation, &formation, &playName, &scoutCoverage,
		&actionTrigger, &actionTypes, &actionSequence, &coverage, &ballScreen,
		&offBallScreen, &helpRotation, &disruption, &breakdown, &result,
		&paintTouch, &shooter, &shotLocation, &contest, &rebound, &points,
		&hasShot, &shotX, &shotY, &shotResult, &notes, &startTime, &endTime,
		&createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan clip: %w", err)
	}

	clip.GameID = gameID.Int64
	clip.CanonicalGameID = canonicalGameID.String
	clip.CanonicalClipID = canonicalClipID.String
	clip.Opponent = opponent.String
	clip.OpponentSlug = opponentSlug.String
	clip.Location = location.String
	clip.GameScore = gameScore.String
	clip.Quarter = quarter.Int64
	clip.Possession = possession.Int64
	clip.Situation = situation.String
	clip.Formation = formation.String
	clip.PlayName = playName.String
	clip.ScoutCoverage = scoutCoverage.String
	clip.ActionTrigger = actionTrigger.String
	clip.ActionTypes = actionTypes.String
	clip.ActionSequence = actionSequence.String
	clip.Coverage = coverage.String
	clip.BallScreen = ballScreen.String
	clip.OffBallScreen = offBallScreen.String
	clip.HelpRotation = helpRotation.String
	clip.Disruption = disruption.String
	clip.Breakdown = breakdown.String
	clip.Result = result.String
	clip.PaintTouch = paintTouch.String
	clip.Shooter = shooter.String
	clip.ShotLocation = shotLocation.String
	clip.Contest = contest.String
	clip.Rebound = rebound.String
	clip.Points = points.Int64
	clip.HasShot = hasShot.String
	clip.ShotX = shotX.String
	clip.ShotY = shotY.String
	clip.ShotResult = shotResult.String
	clip.Notes = notes.String
	clip.StartTime = startTime.String
	clip.EndTime = endTime.String
	clip.CreatedAt = createdAt.String
	clip.UpdatedAt = updatedAt.String

	return &clip, nil
}

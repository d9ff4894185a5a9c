package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *ClipRepo {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := tmpDir + "/test.db"

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewClipRepo(db)
}

func TestClipRepo_UpsertAndFetchOne(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clip := &Clip{
		ID:         "clip_20250101_120000_1_2_3",
		Filename:   "G1_Q2_P3_opponent_20250101_120000.mp4",
		GameID:     1,
		Opponent:   "State",
		Quarter:    2,
		Possession: 3,
		Coverage:   "Man",
		Notes:      "closeout late",
		StartTime:  "00:01:30",
		EndTime:    "00:01:45",
	}
	if err := repo.Upsert(ctx, clip); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if clip.CreatedAt == "" || clip.UpdatedAt == "" {
		t.Fatal("Upsert() did not stamp timestamps")
	}

	got, err := repo.FetchOne(ctx, clip.ID)
	if err != nil {
		t.Fatalf("FetchOne() error = %v", err)
	}
	if got.Opponent != "State" || got.Quarter != 2 || got.Coverage != "Man" {
		t.Errorf("FetchOne() = %+v, want stored values", got)
	}
	if got.Notes != "closeout late" {
		t.Errorf("Notes = %q, want %q", got.Notes, "closeout late")
	}
}

func TestClipRepo_UpsertIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clip := &Clip{ID: "clip-1", Filename: "a.mp4", Opponent: "State"}
	if err := repo.Upsert(ctx, clip); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	createdAt := clip.CreatedAt

	time.Sleep(5 * time.Millisecond)

	clip.Opponent = "Tech"
	if err := repo.Upsert(ctx, clip); err != nil {
		t.Fatalf("Upsert() second call error = %v", err)
	}

	got, err := repo.FetchOne(ctx, "clip-1")
	if err != nil {
		t.Fatalf("FetchOne() error = %v", err)
	}
	if got.Opponent != "Tech" {
		t.Errorf("Opponent = %q, want %q", got.Opponent, "Tech")
	}
	if got.CreatedAt != createdAt {
		t.Errorf("created_at changed on upsert: %q -> %q", createdAt, got.CreatedAt)
	}
	if got.UpdatedAt == createdAt {
		t.Error("updated_at did not advance on upsert")
	}

	all, err := repo.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("FetchAll() returned %d clips, want 1", len(all))
	}
}

func TestClipRepo_FetchOneNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FetchOne(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchOne() error = %v, want ErrNotFound", err)
	}
}

func TestClipRepo_RemoveIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clip := &Clip{ID: "clip-1", Filename: "a.mp4"}
	if err := repo.Upsert(ctx, clip); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := repo.Remove(ctx, "clip-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := repo.Remove(ctx, "clip-1"); err != nil {
		t.Errorf("Remove() second call error = %v, want nil", err)
	}
	if err := repo.Remove(ctx, "never-existed"); err != nil {
		t.Errorf("Remove() unknown id error = %v, want nil", err)
	}
}

func TestClipRepo_ReplaceSegments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clip := &Clip{ID: "clip-1", Filename: "a.mp4"}
	if err := repo.Upsert(ctx, clip); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	peak := -3.5
	first := []Segment{
		{Start: 10.0, End: 12.5, PeakDBFS: &peak},
		{Start: 2.0, End: 4.0},
	}
	if err := repo.ReplaceSegments(ctx, "clip-1", first); err != nil {
		t.Fatalf("ReplaceSegments() error = %v", err)
	}

	got, err := repo.FetchSegments(ctx, "clip-1")
	if err != nil {
		t.Fatalf("FetchSegments() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FetchSegments() returned %d segments, want 2", len(got))
	}
	// Ordered by start, not insertion
	if got[0].Start != 2.0 || got[1].Start != 10.0 {
		t.Errorf("segments not ordered by start: %v, %v", got[0].Start, got[1].Start)
	}
	// Duration derived from end - start when omitted
	if got[0].Duration != 2.0 {
		t.Errorf("Duration = %v, want 2.0", got[0].Duration)
	}
	if got[1].PeakDBFS == nil || *got[1].PeakDBFS != -3.5 {
		t.Errorf("PeakDBFS = %v, want -3.5", got[1].PeakDBFS)
	}

	// Replace is a swap, not a merge
	second := []Segment{{Start: 50.0, End: 51.0}}
	if err := repo.ReplaceSegments(ctx, "clip-1", second); err != nil {
		t.Fatalf("ReplaceSegments() second call error = %v", err)
	}
	got, err = repo.FetchSegments(ctx, "clip-1")
	if err != nil {
		t.Fatalf("FetchSegments() error = %v", err)
	}
	if len(got) != 1 || got[0].Start != 50.0 {
		t.Errorf("FetchSegments() after replace = %+v, want single segment at 50.0", got)
	}

	// Empty list clears everything
	if err := repo.ReplaceSegments(ctx, "clip-1", nil); err != nil {
		t.Fatalf("ReplaceSegments() with empty list error = %v", err)
	}
	got, err = repo.FetchSegments(ctx, "clip-1")
	if err != nil {
		t.Fatalf("FetchSegments() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FetchSegments() after clear returned %d segments, want 0", len(got))
	}
}

func TestClipRepo_DeleteCascadesSegments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clip := &Clip{ID: "clip-1", Filename: "a.mp4"}
	if err := repo.Upsert(ctx, clip); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := repo.ReplaceSegments(ctx, "clip-1", []Segment{{Start: 1, End: 2}}); err != nil {
		t.Fatalf("ReplaceSegments() error = %v", err)
	}

	if err := repo.Remove(ctx, "clip-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	got, err := repo.FetchSegments(ctx, "clip-1")
	if err != nil {
		t.Fatalf("FetchSegments() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("segments survived clip deletion: %d rows", len(got))
	}
}

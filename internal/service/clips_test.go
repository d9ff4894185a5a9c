package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"defensive-analytics/internal/mirror"
	"defensive-analytics/internal/storage"
	"defensive-analytics/internal/translate"
)

type fixture struct {
	svc    ClipService
	repo   *storage.ClipRepo
	mirror *mirror.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmpDir := t.TempDir()

	db, err := storage.New(tmpDir + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	repo := storage.NewClipRepo(db)
	mirrorStore := mirror.NewStore(filepath.Join(tmpDir, "clips_metadata.json"))
	translator := translate.New(tmpDir)

	return &fixture{
		svc:    NewClipService(repo, mirrorStore, translator),
		repo:   repo,
		mirror: mirrorStore,
	}
}

func TestClipService_CreateWritesBothStores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.svc.Create(ctx, map[string]any{
		"id":       "clip-1",
		"opponent": "State",
		"coverage": "Man",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got["id"] != "clip-1" || got["opponent"] != "State" {
		t.Errorf("Create() = %v, want stored values", got)
	}

	if _, err := f.repo.FetchOne(ctx, "clip-1"); err != nil {
		t.Errorf("store missing clip after Create(): %v", err)
	}
	if _, err := f.mirror.FindByID("clip-1"); err != nil {
		t.Errorf("mirror missing clip after Create(): %v", err)
	}
}

func TestClipService_CreateGeneratesID(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Create(context.Background(), map[string]any{"opponent": "State"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	id, _ := got["id"].(string)
	if id == "" {
		t.Fatal("Create() did not assign an id")
	}
}

func TestClipService_GetFallsBackToMirror(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Entry exists only in the mirror, as after a store rebuild
	if err := f.mirror.Append(mirror.Entry{
		"id":          "mirror-only",
		"opponent":    "Tech",
		"Play Result": "Turnover",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := f.svc.Get(ctx, "mirror-only")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["opponent"] != "Tech" || got["result"] != "Turnover" {
		t.Errorf("Get() = %v, want mirror values in API shape", got)
	}

	_, err = f.svc.Get(ctx, "nowhere")
	if !errors.Is(err, ErrClipNotFound) {
		t.Errorf("Get() error = %v, want ErrClipNotFound", err)
	}
}

func TestClipService_ListFallsBackToMirrorWhenStoreEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.mirror.Append(mirror.Entry{"id": "m1", "opponent": "State"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := f.mirror.Append(mirror.Entry{"id": "m2", "opponent": "Tech"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List() returned %d clips, want 2 from mirror", len(got))
	}

	// Once the store has rows, the mirror is no longer consulted
	if _, err := f.svc.Create(ctx, map[string]any{"id": "s1", "opponent": "Central"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err = f.svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0]["id"] != "s1" {
		t.Errorf("List() = %v, want only the store row", got)
	}
}

func TestClipService_UpdateMergesPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, map[string]any{
		"id":       "clip-1",
		"opponent": "State",
		"coverage": "Man",
		"notes":    "original",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := f.svc.Update(ctx, "clip-1", map[string]any{"notes": "revised"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got["notes"] != "revised" {
		t.Errorf("notes = %v, want revised", got["notes"])
	}
	// Fields outside the patch survive
	if got["opponent"] != "State" || got["coverage"] != "Man" {
		t.Errorf("Update() clobbered unrelated fields: %v", got)
	}
}

func TestClipService_UpdateRejectsEmptyPatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), "clip-1", map[string]any{"bogus": "x"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Update() error = %v, want ValidationError", err)
	}
}

func TestClipService_ClearShotResetsOnlyShotFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, map[string]any{
		"id":       "clip-1",
		"opponent": "State",
		"notes":    "keep me",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := f.svc.SetShot(ctx, "clip-1", ShotUpdate{
		ShotX:      "120",
		ShotY:      "80",
		ShotResult: "Made 2",
		Shooter:    "primary",
	}); err != nil {
		t.Fatalf("SetShot() error = %v", err)
	}

	got, err := f.svc.Get(ctx, "clip-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// has_shot defaults to Yes when omitted
	if got["has_shot"] != "Yes" || got["shot_x"] != "120" {
		t.Errorf("SetShot() = %v, want shot recorded", got)
	}

	got, err = f.svc.ClearShot(ctx, "clip-1")
	if err != nil {
		t.Fatalf("ClearShot() error = %v", err)
	}
	if got["has_shot"] != "No" {
		t.Errorf("has_shot = %v, want No", got["has_shot"])
	}
	for _, key := range []string{"shot_x", "shot_y", "shot_result"} {
		if got[key] != "" {
			t.Errorf("%s = %v, want empty after clear", key, got[key])
		}
	}
	// Shooter and unrelated fields are untouched
	if got["shooter"] != "primary" {
		t.Errorf("shooter = %v, want primary", got["shooter"])
	}
	if got["notes"] != "keep me" {
		t.Errorf("notes = %v, want keep me", got["notes"])
	}
}

func TestClipService_UpdateMirrorOnlyClip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.mirror.Append(mirror.Entry{"id": "m1", "opponent": "State"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := f.svc.Update(ctx, "m1", map[string]any{"notes": "from dashboard"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got["notes"] != "from dashboard" {
		t.Errorf("notes = %v, want from dashboard", got["notes"])
	}

	// No store row was invented for the mirror-only clip
	if _, err := f.repo.FetchOne(ctx, "m1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("FetchOne() error = %v, want ErrClipNotFound", err)
	}
}

func TestClipService_DeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, map[string]any{"id": "clip-1"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := f.svc.Delete(ctx, "clip-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := f.svc.Delete(ctx, "clip-1"); err != nil {
		t.Errorf("Delete() second call error = %v, want nil", err)
	}

	if _, err := f.svc.Get(ctx, "clip-1"); !errors.Is(err, ErrClipNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrClipNotFound", err)
	}
	if _, err := f.mirror.FindByID("clip-1"); !errors.Is(err, mirror.ErrNotFound) {
		t.Errorf("mirror entry survived delete")
	}
}

func TestClipService_ReplaceSegmentsRequiresClip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.ReplaceSegments(ctx, "missing", []storage.Segment{{Start: 1, End: 2}})
	if !errors.Is(err, ErrClipNotFound) {
		t.Errorf("ReplaceSegments() error = %v, want ErrClipNotFound", err)
	}

	if _, err := f.svc.Create(ctx, map[string]any{"id": "clip-1"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := f.svc.ReplaceSegments(ctx, "clip-1", []storage.Segment{{Start: 1, End: 2}}); err != nil {
		t.Fatalf("ReplaceSegments() error = %v", err)
	}

	segments, err := f.svc.Segments(ctx, "clip-1")
	if err != nil {
		t.Fatalf("Segments() error = %v", err)
	}
	if len(segments) != 1 {
		t.Errorf("Segments() returned %d, want 1", len(segments))
	}
}

package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clip_service.go -package=mocks -mock_names=ClipService=MockClipService defensive-analytics/internal/service ClipService

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"defensive-analytics/internal/contextutil"
	"defensive-analytics/internal/mirror"
	"defensive-analytics/internal/storage"
	"defensive-analytics/internal/translate"
)

// ShotUpdate carries the shot-specific fields of a clip.
type ShotUpdate struct {
	HasShot    string
	ShotX      string
	ShotY      string
	ShotResult string
	Shooter    string
}

// ClipService is the reconciliation layer over the clip store and the JSON
// mirror. The store is authoritative; the mirror is written best-effort and
// consulted only when the store has nothing to say.
type ClipService interface {
	// Create writes a new clip to both stores and returns its API shape.
	Create(ctx context.Context, payload map[string]any) (map[string]any, error)
	// List returns all clips, falling back to the mirror when the store is empty.
	List(ctx context.Context) ([]map[string]any, error)
	// Get returns one clip from the store, or the mirror, or ErrClipNotFound.
	Get(ctx context.Context, id string) (map[string]any, error)
	// Update applies a partial update keyed by API field names to both stores.
	Update(ctx context.Context, id string, patch map[string]any) (map[string]any, error)
	// SetShot updates exactly the shot fields of a clip.
	SetShot(ctx context.Context, id string, shot ShotUpdate) (map[string]any, error)
	// ClearShot resets the shot fields, leaving everything else untouched.
	ClearShot(ctx context.Context, id string) (map[string]any, error)
	// Delete removes the clip from both stores; unknown ids succeed silently.
	Delete(ctx context.Context, id string) error
	// Segments returns a clip's audio segments ordered by start time.
	Segments(ctx context.Context, id string) ([]storage.Segment, error)
	// ReplaceSegments swaps the clip's full segment set.
	ReplaceSegments(ctx context.Context, id string, segments []storage.Segment) error
}

// clipService implements ClipService.
type clipService struct {
	store      storage.ClipStore
	mirror     *mirror.Store
	translator *translate.Translator
	logger     *slog.Logger
}

// NewClipService creates a new ClipService.
func NewClipService(store storage.ClipStore, mirrorStore *mirror.Store, translator *translate.Translator) ClipService {
	return &clipService{
		store:      store,
		mirror:     mirrorStore,
		translator: translator,
		logger:     slog.Default(),
	}
}

// Create writes the authoritative store first; a store failure fails the
// request. The mirror append is best-effort and only logged on failure.
func (s *clipService) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	logger := contextutil.LoggerFromContext(ctx)

	clip := &storage.Clip{}
	clip.Apply(payload)
	if clip.ID == "" {
		clip.ID = uuid.New().String()
	}

	if err := s.store.Upsert(ctx, clip); err != nil {
		logger.ErrorContext(ctx, "failed to store clip", "clip_id", clip.ID, "error", err)
		return nil, WrapError(err, "failed to store clip")
	}

	entry := mirror.Entry{}
	for key, value := range payload {
		entry[key] = value
	}
	entry["id"] = clip.ID
	if err := s.mirror.Append(entry); err != nil {
		logger.WarnContext(ctx, "mirror append failed", "clip_id", clip.ID, "error", err)
	}

	logger.InfoContext(ctx, "clip created", "clip_id", clip.ID)
	return s.translator.StoreToAPI(clip), nil
}

// List returns store rows when any exist; an empty store falls back to the
// entire mirror for the call.
func (s *clipService) List(ctx context.Context) ([]map[string]any, error) {
	logger := contextutil.LoggerFromContext(ctx)

	clips, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list clips")
	}
	if len(clips) > 0 {
		out := make([]map[string]any, 0, len(clips))
		for _, clip := range clips {
			out = append(out, s.translator.StoreToAPI(clip))
		}
		return out, nil
	}

	collection, err := s.mirror.Load()
	if err != nil {
		logger.WarnContext(ctx, "mirror unavailable for list", "error", err)
		return []map[string]any{}, nil
	}
	out := make([]map[string]any, 0, len(collection.Clips))
	for _, entry := range collection.Clips {
		out = append(out, s.translator.MirrorToAPI(entry))
	}
	return out, nil
}

// Get tries the store, then the mirror; ErrClipNotFound only when neither has
// the id.
func (s *clipService) Get(ctx context.Context, id string) (map[string]any, error) {
	logger := contextutil.LoggerFromContext(ctx)

	clip, err := s.store.FetchOne(ctx, id)
	if err == nil {
		return s.translator.StoreToAPI(clip), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, WrapError(err, "failed to fetch clip")
	}

	entry, err := s.mirror.FindByID(id)
	if err != nil {
		if !errors.Is(err, mirror.ErrNotFound) {
			logger.WarnContext(ctx, "mirror unavailable for get", "clip_id", id, "error", err)
		}
		return nil, ErrClipNotFound
	}
	return s.translator.MirrorToAPI(entry), nil
}

// Update merges the patch into the current store row and re-upserts it in
// full; patch semantics live here, not in the storage layer. The mirror gets
// the analogous partial update regardless of the store outcome.
func (s *clipService) Update(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	storePatch, mirrorPatch := s.translator.SplitPatch(patch)
	if len(storePatch) == 0 && len(mirrorPatch) == 0 {
		return nil, &ValidationError{Field: "body", Message: "no valid fields provided"}
	}
	return s.applyPatch(ctx, id, storePatch, mirrorPatch)
}

// SetShot updates exactly the shot fields. has_shot defaults to "Yes" when
// the caller omits it.
func (s *clipService) SetShot(ctx context.Context, id string, shot ShotUpdate) (map[string]any, error) {
	if shot.HasShot == "" {
		shot.HasShot = "Yes"
	}
	storePatch, mirrorPatch := s.translator.SplitPatch(map[string]any{
		"has_shot":    shot.HasShot,
		"shot_x":      shot.ShotX,
		"shot_y":      shot.ShotY,
		"shot_result": shot.ShotResult,
		"shooter":     shot.Shooter,
	})
	return s.applyPatch(ctx, id, storePatch, mirrorPatch)
}

// ClearShot resets has_shot to the negative sentinel and empties the shot
// coordinates and result. The shooter and all unrelated fields are untouched.
func (s *clipService) ClearShot(ctx context.Context, id string) (map[string]any, error) {
	storePatch, mirrorPatch := s.translator.SplitPatch(map[string]any{
		"has_shot":    "No",
		"shot_x":      "",
		"shot_y":      "",
		"shot_result": "",
	})
	return s.applyPatch(ctx, id, storePatch, mirrorPatch)
}

// applyPatch is the shared dual-write path for partial updates. The store row
// is only written when it already exists; the mirror is always attempted. The
// response reflects the freshest available source.
func (s *clipService) applyPatch(ctx context.Context, id string, storePatch, mirrorPatch map[string]any) (map[string]any, error) {
	logger := contextutil.LoggerFromContext(ctx)

	existing, err := s.store.FetchOne(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, WrapError(err, "failed to fetch clip")
	}

	if existing != nil {
		existing.Apply(storePatch)
		if err := s.store.Upsert(ctx, existing); err != nil {
			logger.ErrorContext(ctx, "failed to update clip", "clip_id", id, "error", err)
			return nil, WrapError(err, "failed to update clip")
		}
	}

	if len(mirrorPatch) > 0 {
		if err := s.mirror.UpsertByID(id, mirrorPatch); err != nil {
			logger.WarnContext(ctx, "mirror update failed", "clip_id", id, "error", err)
		}
	}

	refreshed, err := s.store.FetchOne(ctx, id)
	if err == nil {
		return s.translator.StoreToAPI(refreshed), nil
	}
	if entry, err := s.mirror.FindByID(id); err == nil {
		return s.translator.MirrorToAPI(entry), nil
	}

	// Neither store holds the record; echo the requested change back.
	echo := map[string]any{"id": id}
	for col, value := range storePatch {
		echo[col] = value
	}
	return echo, nil
}

// Delete removes the clip from the store and the mirror. Both removals are
// no-ops for unknown ids; only a store failure fails the call.
func (s *clipService) Delete(ctx context.Context, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.store.Remove(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to delete clip", "clip_id", id, "error", err)
		return WrapError(err, "failed to delete clip")
	}
	if err := s.mirror.RemoveByID(id); err != nil {
		logger.WarnContext(ctx, "mirror delete failed", "clip_id", id, "error", err)
	}

	logger.InfoContext(ctx, "clip deleted", "clip_id", id)
	return nil
}

// Segments returns the clip's audio segments, start ascending.
func (s *clipService) Segments(ctx context.Context, id string) ([]storage.Segment, error) {
	segments, err := s.store.FetchSegments(ctx, id)
	if err != nil {
		return nil, WrapError(err, "failed to fetch segments")
	}
	return segments, nil
}

// ReplaceSegments swaps the clip's full segment set. The clip must exist in
// the store; segments are never mirrored.
func (s *clipService) ReplaceSegments(ctx context.Context, id string, segments []storage.Segment) error {
	if _, err := s.store.FetchOne(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrClipNotFound
		}
		return WrapError(err, "failed to fetch clip")
	}
	if err := s.store.ReplaceSegments(ctx, id, segments); err != nil {
		return WrapError(err, "failed to replace segments")
	}
	return nil
}

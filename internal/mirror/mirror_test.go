package mirror

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "clips_metadata.json"))

	collection, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if collection.Clips == nil {
		t.Fatal("Load() returned nil Clips slice")
	}
	if len(collection.Clips) != 0 {
		t.Errorf("Load() returned %d entries, want 0", len(collection.Clips))
	}
}

func TestStore_AppendAndFindByID(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "clips_metadata.json"))

	entry := Entry{"id": "clip-1", "opponent": "State", "quarter": 2}
	if err := store.Append(entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.FindByID("clip-1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got["opponent"] != "State" {
		t.Errorf("opponent = %v, want State", got["opponent"])
	}

	_, err = store.FindByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestStore_UpsertByIDPreservesOtherKeys(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "clips_metadata.json"))

	entry := Entry{"id": "clip-1", "opponent": "State", "notes": "original", "hasShot": "Yes"}
	if err := store.Append(entry); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := store.UpsertByID("clip-1", map[string]any{"Notes": "updated", "Play Result": "Turnover"}); err != nil {
		t.Fatalf("UpsertByID() error = %v", err)
	}

	got, err := store.FindByID("clip-1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	// Updated keys written, existing keys untouched
	if got["Notes"] != "updated" || got["Play Result"] != "Turnover" {
		t.Errorf("update keys not written: %v", got)
	}
	if got["opponent"] != "State" || got["notes"] != "original" || got["hasShot"] != "Yes" {
		t.Errorf("existing keys changed: %v", got)
	}
}

func TestStore_UpsertByIDUnknownIDIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clips_metadata.json")
	store := NewStore(path)

	if err := store.UpsertByID("ghost", map[string]any{"Notes": "x"}); err != nil {
		t.Fatalf("UpsertByID() error = %v", err)
	}

	collection, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// The mirror never invents records on update
	if len(collection.Clips) != 0 {
		t.Errorf("UpsertByID() created %d entries for unknown id, want 0", len(collection.Clips))
	}
}

func TestStore_RemoveByID(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "clips_metadata.json"))

	if err := store.Append(Entry{"id": "clip-1"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(Entry{"id": "clip-2"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := store.RemoveByID("clip-1"); err != nil {
		t.Fatalf("RemoveByID() error = %v", err)
	}

	collection, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(collection.Clips) != 1 || collection.Clips[0]["id"] != "clip-2" {
		t.Errorf("RemoveByID() left %v, want only clip-2", collection.Clips)
	}

	// Removing again is a no-op
	if err := store.RemoveByID("clip-1"); err != nil {
		t.Errorf("RemoveByID() second call error = %v, want nil", err)
	}
}

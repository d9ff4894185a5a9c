// Package mirror maintains the JSON-file shadow copy of clip metadata.
// The file is the whole write unit: every mutation is load-modify-save.
package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no mirror entry exists for an id.
var ErrNotFound = errors.New("mirror entry not found")

// Entry is one clip's mirror record. Keys follow the mirror's own naming
// conventions (camelCase from creation, legacy title-case from updates), not
// the store's column names.
type Entry map[string]any

// Collection is the full mirror file payload.
type Collection struct {
	Clips []Entry `json:"clips"`
}

// Store reads and writes the mirror file.
type Store struct {
	path string
}

// NewStore creates a mirror store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the mirror file. A missing file is a valid initial state and
// yields an empty collection.
func (s *Store) Load() (*Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Collection{Clips: []Entry{}}, nil
		}
		return nil, fmt.Errorf("failed to read mirror file: %w", err)
	}

	var collection Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to parse mirror file: %w", err)
	}
	if collection.Clips == nil {
		collection.Clips = []Entry{}
	}

	return &collection, nil
}

// Save replaces the mirror file contents with the given collection.
func (s *Store) Save(collection *Collection) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mirror file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create mirror directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mirror file: %w", err)
	}

	return nil
}

// FindByID returns the entry with the given id, or nil and ErrNotFound.
func (s *Store) FindByID(id string) (Entry, error) {
	collection, err := s.Load()
	if err != nil {
		return nil, err
	}
	for _, entry := range collection.Clips {
		if entryID(entry) == id {
			return entry, nil
		}
	}
	return nil, ErrNotFound
}

// Append adds a full entry to the collection.
func (s *Store) Append(entry Entry) error {
	collection, err := s.Load()
	if err != nil {
		return err
	}
	collection.Clips = append(collection.Clips, entry)
	return s.Save(collection)
}

// UpsertByID overwrites only the given keys on the entry with the matching id.
// Keys not mentioned in fields are preserved. Entries for unknown ids are left
// alone; the mirror never invents a record on update.
func (s *Store) UpsertByID(id string, fields map[string]any) error {
	collection, err := s.Load()
	if err != nil {
		return err
	}

	updated := false
	for _, entry := range collection.Clips {
		if entryID(entry) != id {
			continue
		}
		for key, value := range fields {
			entry[key] = value
		}
		updated = true
		break
	}

	if !updated {
		return nil
	}
	return s.Save(collection)
}

// RemoveByID deletes the entry with the given id. Missing ids are a no-op.
func (s *Store) RemoveByID(id string) error {
	collection, err := s.Load()
	if err != nil {
		return err
	}

	kept := collection.Clips[:0]
	removed := false
	for _, entry := range collection.Clips {
		if entryID(entry) == id {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}

	if !removed {
		return nil
	}
	collection.Clips = kept
	return s.Save(collection)
}

func entryID(entry Entry) string {
	if id, ok := entry["id"].(string); ok {
		return id
	}
	return ""
}

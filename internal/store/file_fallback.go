// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MKhiriev/go-note-keeper/models"
)

// fileFallbackStorage is the degraded local store used when the SQLite
// database cannot be opened on the device. It keeps the full state in memory
// guarded by a mutex and persists it as a single JSON file after every write.
// Slower and without indexed lookups, but it satisfies the same
// [NoteRepository] and [MetadataRepository] contracts so the sync engine is
// unaware of the downgrade.
type fileFallbackStorage struct {
	path     string
	inMemory bool

	mu        sync.RWMutex
	notes     map[string]models.Note
	conflicts map[string]models.SyncConflict
	metadata  map[string]string
}

type fallbackPersistedState struct {
	Notes     map[string]models.Note         `json:"notes"`
	Conflicts map[string]models.SyncConflict `json:"conflicts,omitempty"`
	Metadata  map[string]string              `json:"metadata,omitempty"`
}

// NewFileFallbackStorage opens (or creates) the JSON-file store at path.
// An empty path yields a purely in-memory store, useful in tests.
func NewFileFallbackStorage(path string) (*fileFallbackStorage, error) {
	s := &fileFallbackStorage{
		path:      path,
		inMemory:  path == "",
		notes:     make(map[string]models.Note),
		conflicts: make(map[string]models.SyncConflict),
		metadata:  make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileFallbackStorage) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read fallback storage file: %w", err)
	}

	var st fallbackPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode fallback storage file: %w", err)
	}

	if st.Notes == nil {
		st.Notes = make(map[string]models.Note)
	}
	if st.Conflicts == nil {
		st.Conflicts = make(map[string]models.SyncConflict)
	}
	if st.Metadata == nil {
		st.Metadata = make(map[string]string)
	}

	s.notes = st.Notes
	s.conflicts = st.Conflicts
	s.metadata = st.Metadata

	return nil
}

// persist is called with s.mu held.
func (s *fileFallbackStorage) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create fallback storage dir: %w", err)
		}
	}

	state := fallbackPersistedState{Notes: s.notes, Conflicts: s.conflicts, Metadata: s.metadata}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fallback storage: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write fallback storage file: %w", err)
	}

	return nil
}

func (s *fileFallbackStorage) Get(_ context.Context, id string) (models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return models.Note{}, ErrNoteNotFound
	}
	return note, nil
}

func (s *fileFallbackStorage) Put(_ context.Context, note models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[note.ID] = note
	return s.persist()
}

func (s *fileFallbackStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(s.notes, id)
	return s.persist()
}

func (s *fileFallbackStorage) ListAll(_ context.Context, includeDeleted bool) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]models.Note, 0, len(s.notes))
	for _, note := range s.notes {
		if note.Deleted() && !includeDeleted {
			continue
		}
		notes = append(notes, note)
	}

	// Stable order: newest first, id as tie-break, matching the SQL store.
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

func (s *fileFallbackStorage) SaveConflict(_ context.Context, conflict models.SyncConflict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conflicts[conflict.ConflictID] = conflict
	return s.persist()
}

func (s *fileFallbackStorage) GetConflict(_ context.Context, conflictID string) (models.SyncConflict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conflict, ok := s.conflicts[conflictID]
	if !ok {
		return models.SyncConflict{}, ErrConflictNotFound
	}
	return conflict, nil
}

func (s *fileFallbackStorage) UpdateConflict(_ context.Context, conflict models.SyncConflict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conflicts[conflict.ConflictID]; !ok {
		return ErrConflictNotFound
	}
	s.conflicts[conflict.ConflictID] = conflict
	return s.persist()
}

func (s *fileFallbackStorage) ListOpenConflicts(_ context.Context) ([]models.SyncConflict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var open []models.SyncConflict
	for _, conflict := range s.conflicts {
		if conflict.Open() {
			open = append(open, conflict)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].DetectedAt.Before(open[j].DetectedAt)
	})

	return open, nil
}

func (s *fileFallbackStorage) GetMetadata(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.metadata[key]
	if !ok {
		return nil, ErrMetadataNotFound
	}
	return []byte(value), nil
}

func (s *fileFallbackStorage) PutMetadata(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metadata[key] = string(value)
	return s.persist()
}

package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/k-otsuka/lexinote/internal/dictionary"
)

// SnapshotStore keeps the whole notebook in memory and rewrites it to a
// single JSON file on every mutation. A whole-collection snapshot is
// acceptable at expected notebook sizes (tens to low hundreds of entries);
// it does not scale beyond that.
type SnapshotStore struct {
	mu      sync.Mutex
	path    string
	entries []SavedEntry
	byID    map[string]int
}

var _ Store = (*SnapshotStore)(nil)

type snapshotFile struct {
	Entries []SavedEntry `json:"entries"`
}

// NewSnapshotStore loads the snapshot at path, or starts empty when the
// file does not exist yet.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	store := &SnapshotStore{
		path: path,
		byID: make(map[string]int),
	}

	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(contents, &snapshot); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	store.entries = snapshot.Entries
	for i, saved := range store.entries {
		store.byID[saved.Entry.ID] = i
	}
	return store, nil
}

// Add implements Store. Duplicate IDs leave the collection unchanged.
func (s *SnapshotStore) Add(entry dictionary.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[entry.ID]; ok {
		return nil
	}
	s.entries = append(s.entries, SavedEntry{
		Entry:   entry,
		SavedAt: time.Now(),
		Review:  ReviewState{EasinessFactor: DefaultEasinessFactor},
	})
	s.byID[entry.ID] = len(s.entries) - 1
	return s.persist()
}

// Remove implements Store.
func (s *SnapshotStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	delete(s.byID, id)
	for i := index; i < len(s.entries); i++ {
		s.byID[s.entries[i].Entry.ID] = i
	}
	return s.persist()
}

// Get implements Store.
func (s *SnapshotStore) Get(id string) (SavedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.byID[id]
	if !ok {
		return SavedEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return s.entries[index], nil
}

// List implements Store: most recently added first.
func (s *SnapshotStore) List() ([]SavedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]SavedEntry, len(s.entries))
	for i, saved := range s.entries {
		result[len(s.entries)-1-i] = saved
	}
	return result, nil
}

// Len implements Store.
func (s *SnapshotStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// UpdateReview implements Store.
func (s *SnapshotStore) UpdateReview(id string, review ReviewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	s.entries[index].Review = review
	return s.persist()
}

// persist rewrites the whole snapshot. Callers hold the mutex.
func (s *SnapshotStore) persist() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	contents, err := json.MarshalIndent(snapshotFile{Entries: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := os.WriteFile(s.path, contents, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", s.path, err)
	}
	return nil
}

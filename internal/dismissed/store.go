// Package dismissed tracks feed items the operator has dismissed locally.
// A dismissed item stays hidden until the underlying record shows new
// activity, at which point it resurfaces.
package dismissed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/creatorops/opsfeed/internal/log"
)

// Entry records when a feed item was dismissed
type Entry struct {
	DismissedAt time.Time `json:"dismissedAt"`
}

// Store persists dismissed feed items under the user cache directory.
// Safe for concurrent use.
type Store struct {
	path    string
	entries map[string]Entry
	mu      sync.RWMutex
}

// NewStore opens the dismissed-item store, creating its directory when
// missing. A corrupt or absent file starts the store fresh.
func NewStore() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "opsfeed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return newStoreAt(filepath.Join(dir, "dismissed.json")), nil
}

func newStoreAt(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]Entry),
	}
	if err := s.load(); err != nil {
		log.Debug("could not load dismissed store, starting fresh", "error", err)
	}
	return s
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.entries)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Dismiss hides an item. lastActivity is the item's activity timestamp
// at dismissal time; newer activity makes the item show again.
func (s *Store) Dismiss(itemID string, lastActivity time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[itemID] = Entry{DismissedAt: lastActivity}
	return s.save()
}

// Restore removes an item from the dismissed list
func (s *Store) Restore(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, itemID)
	return s.save()
}

// ShouldShow reports whether the item should surface in the feed: it was
// never dismissed, or it has had activity since dismissal.
func (s *Store) ShouldShow(itemID string, lastActivity time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[itemID]
	if !exists {
		return true
	}
	return lastActivity.After(entry.DismissedAt)
}

// IsDismissed reports whether the item is currently dismissed
func (s *Store) IsDismissed(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.entries[itemID]
	return exists
}

// Count returns the number of dismissed items
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

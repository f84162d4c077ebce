// Package cache stores dashboard API responses on disk so repeated feed
// builds inside the TTL window avoid refetching.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creatorops/opsfeed/internal/log"
	"github.com/creatorops/opsfeed/internal/model"
)

// Version invalidates older cache files when the entry schema changes
const Version = 1

// ListTTL is the max age of a cached record list before a refetch
const ListTTL = 5 * time.Minute

// ListType names the record kind a cached list holds.
type ListType string

const (
	ListCustoms ListType = "customs"
	ListScenes  ListType = "scenes"
)

// CustomsEntry is a cached custom-request list.
type CustomsEntry struct {
	Requests []model.CustomRequest `json:"requests"`
	// SinceTime is the lookback cutoff the list was fetched with.
	SinceTime time.Time `json:"sinceTime"`
	CachedAt  time.Time `json:"cachedAt"`
	Version   int       `json:"version"`
}

// ScenesEntry is a cached scene-assignment list.
type ScenesEntry struct {
	Assignments []model.SceneAssignment `json:"assignments"`
	CachedAt    time.Time               `json:"cachedAt"`
	Version     int                     `json:"version"`
}

// Cacher abstracts the cache so the fetch layer can be tested with a fake.
type Cacher interface {
	GetCustoms(team string, since time.Time) (*CustomsEntry, bool)
	SetCustoms(team string, entry *CustomsEntry) error
	GetScenes(team string) (*ScenesEntry, bool)
	SetScenes(team string, entry *ScenesEntry) error
	Clear() error
	Stats() (total int, valid int, err error)
}

var _ Cacher = (*Cache)(nil)

// Cache is a file-per-list JSON cache under the user cache directory.
type Cache struct {
	dir string
}

// NewCache opens the cache, creating its directory when missing
func NewCache() (*Cache, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "opsfeed", "lists")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

func (c *Cache) listPath(listType ListType, team string) string {
	if team == "" {
		team = "default"
	}
	return filepath.Join(c.dir, fmt.Sprintf("list_%s_%s.json", listType, team))
}

// GetCustoms returns the cached custom-request list for a team if it is
// fresh and covers the requested lookback window.
func (c *Cache) GetCustoms(team string, since time.Time) (*CustomsEntry, bool) {
	data, err := os.ReadFile(c.listPath(ListCustoms, team))
	if err != nil {
		return nil, false
	}

	var entry CustomsEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Version != Version {
		log.Debug("cache version mismatch", "cached", entry.Version, "current", Version)
		return nil, false
	}
	if time.Since(entry.CachedAt) > ListTTL {
		return nil, false
	}

	// A wider lookback than the cached fetch needs a full refresh. Hour
	// truncation avoids misses from small clock skew between runs.
	if since.Truncate(time.Hour).Before(entry.SinceTime.Truncate(time.Hour)) {
		return nil, false
	}

	return &entry, true
}

// SetCustoms caches a custom-request list for a team
func (c *Cache) SetCustoms(team string, entry *CustomsEntry) error {
	if entry == nil {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}
	if entry.Version == 0 {
		entry.Version = Version
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(c.listPath(ListCustoms, team), data, 0600)
}

// GetScenes returns the cached scene-assignment list for a team if fresh
func (c *Cache) GetScenes(team string) (*ScenesEntry, bool) {
	data, err := os.ReadFile(c.listPath(ListScenes, team))
	if err != nil {
		return nil, false
	}

	var entry ScenesEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Version != Version {
		return nil, false
	}
	if time.Since(entry.CachedAt) > ListTTL {
		return nil, false
	}

	return &entry, true
}

// SetScenes caches a scene-assignment list for a team
func (c *Cache) SetScenes(team string, entry *ScenesEntry) error {
	if entry == nil {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}
	if entry.Version == 0 {
		entry.Version = Version
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(c.listPath(ListScenes, team), data, 0600)
}

// Clear removes all cached lists
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports how many cached lists exist and how many are still fresh
func (c *Cache) Stats() (total int, valid int, err error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, 0, err
	}

	now := time.Now()
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			continue
		}

		// Both entry kinds share the CachedAt/Version envelope.
		var envelope struct {
			CachedAt time.Time `json:"cachedAt"`
			Version  int       `json:"version"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			continue
		}

		total++
		if envelope.Version == Version && now.Sub(envelope.CachedAt) <= ListTTL {
			valid++
		}
	}

	return total, valid, nil
}

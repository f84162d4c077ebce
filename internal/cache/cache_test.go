package cache

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/creatorops/opsfeed/internal/model"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	return &Cache{dir: t.TempDir()}
}

func TestCustomsRoundTrip(t *testing.T) {
	c := testCache(t)
	since := time.Now().Add(-24 * time.Hour)

	entry := &CustomsEntry{
		Requests: []model.CustomRequest{
			{ID: "1", Status: model.StatusNeedsClientApproval},
			{ID: "2", Status: model.StatusInProgress},
		},
		SinceTime: since,
	}

	if err := c.SetCustoms("alpha", entry); err != nil {
		t.Fatalf("SetCustoms() error: %v", err)
	}

	got, ok := c.GetCustoms("alpha", since)
	if !ok {
		t.Fatal("GetCustoms() miss, want hit")
	}
	if len(got.Requests) != 2 || got.Requests[0].ID != "1" {
		t.Errorf("GetCustoms() returned %d requests", len(got.Requests))
	}

	// A different team is a separate list.
	if _, ok := c.GetCustoms("beta", since); ok {
		t.Error("GetCustoms() for another team should miss")
	}
}

func TestCustomsWiderLookbackMisses(t *testing.T) {
	c := testCache(t)
	cachedSince := time.Now().Add(-24 * time.Hour)

	if err := c.SetCustoms("alpha", &CustomsEntry{SinceTime: cachedSince}); err != nil {
		t.Fatal(err)
	}

	// Asking further back than the cached fetch covered must refetch.
	if _, ok := c.GetCustoms("alpha", cachedSince.Add(-48*time.Hour)); ok {
		t.Error("GetCustoms() with wider lookback should miss")
	}
	// A narrower lookback is satisfiable from cache.
	if _, ok := c.GetCustoms("alpha", cachedSince.Add(2*time.Hour)); !ok {
		t.Error("GetCustoms() with narrower lookback should hit")
	}
}

func TestScenesRoundTrip(t *testing.T) {
	c := testCache(t)

	entry := &ScenesEntry{
		Assignments: []model.SceneAssignment{
			{ID: "s1", Status: model.ScenePending},
		},
	}
	if err := c.SetScenes("alpha", entry); err != nil {
		t.Fatalf("SetScenes() error: %v", err)
	}

	got, ok := c.GetScenes("alpha")
	if !ok {
		t.Fatal("GetScenes() miss, want hit")
	}
	if len(got.Assignments) != 1 || got.Assignments[0].ID != "s1" {
		t.Errorf("GetScenes() returned %d assignments", len(got.Assignments))
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	c := testCache(t)

	if err := c.SetScenes("alpha", &ScenesEntry{
		CachedAt: time.Now().Add(-ListTTL - time.Minute),
	}); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.GetScenes("alpha"); ok {
		t.Error("GetScenes() on expired entry should miss")
	}
}

func TestVersionMismatchMisses(t *testing.T) {
	c := testCache(t)

	stale := ScenesEntry{CachedAt: time.Now(), Version: Version + 1}
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.listPath(ListScenes, "alpha"), data, 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.GetScenes("alpha"); ok {
		t.Error("GetScenes() on version mismatch should miss")
	}
}

func TestClearAndStats(t *testing.T) {
	c := testCache(t)
	since := time.Now()

	if err := c.SetCustoms("alpha", &CustomsEntry{SinceTime: since}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetScenes("alpha", &ScenesEntry{}); err != nil {
		t.Fatal(err)
	}

	total, valid, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if total != 2 || valid != 2 {
		t.Errorf("Stats() = (%d, %d), want (2, 2)", total, valid)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d files after Clear(), want 0", len(entries))
	}
}

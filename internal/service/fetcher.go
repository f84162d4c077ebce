// Package service orchestrates record fetching between the dashboard
// API and the on-disk cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/creatorops/opsfeed/internal/apiclient"
	"github.com/creatorops/opsfeed/internal/cache"
	"github.com/creatorops/opsfeed/internal/log"
	"github.com/creatorops/opsfeed/internal/model"
)

// ProgressFunc is called as fetch sources complete.
type ProgressFunc func(completed, total int)

// FetchResult holds everything a feed build needs.
type FetchResult struct {
	Customs []model.CustomRequest
	Scenes  []model.SceneAssignment

	// CustomsFromCache and ScenesFromCache report per-source cache hits
	CustomsFromCache bool
	ScenesFromCache  bool

	// RateLimited is set when the API throttled a fetch and the result
	// degraded to whatever the cache held.
	RateLimited bool
}

// TotalFetched returns the number of records across both sources
func (r *FetchResult) TotalFetched() int {
	return len(r.Customs) + len(r.Scenes)
}

// Fetcher fetches the feed's record sources in parallel.
type Fetcher struct {
	api        apiclient.Fetcher
	cache      cache.Cacher
	team       string
	since      time.Time
	onProgress ProgressFunc
}

// NewFetcher creates a Fetcher. cache may be nil to disable caching;
// onProgress may be nil.
func NewFetcher(api apiclient.Fetcher, c cache.Cacher, team string, since time.Time, onProgress ProgressFunc) *Fetcher {
	return &Fetcher{
		api:        api,
		cache:      c,
		team:       team,
		since:      since,
		onProgress: onProgress,
	}
}

func (f *Fetcher) reportProgress(completed, total int) {
	if f.onProgress != nil {
		f.onProgress(completed, total)
	}
}

// feedStatuses is the set of custom statuses worth fetching: everything
// the feed can surface. Terminal statuses never become feed items, so
// they are not requested.
var feedStatuses = []model.CustomStatus{
	model.StatusNeedsClientApproval,
	model.StatusInProgress,
}

// FetchAll fetches customs and scenes in parallel. Each source checks
// the cache first; a rate-limited source keeps its cached data (possibly
// empty) and marks the result instead of failing the whole build.
func (f *Fetcher) FetchAll(ctx context.Context) (*FetchResult, error) {
	const total = 2
	var completed int
	var mu sync.Mutex

	step := func() {
		mu.Lock()
		completed++
		n := completed
		mu.Unlock()
		f.reportProgress(n, total)
	}

	f.reportProgress(0, total)

	result := &FetchResult{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		customs, fromCache, err := f.fetchCustoms(gctx)
		if err != nil {
			if errors.Is(err, apiclient.ErrRateLimited) {
				mu.Lock()
				result.RateLimited = true
				mu.Unlock()
				step()
				return nil
			}
			step()
			return fmt.Errorf("custom requests: %w", err)
		}
		mu.Lock()
		result.Customs = customs
		result.CustomsFromCache = fromCache
		mu.Unlock()
		step()
		return nil
	})

	g.Go(func() error {
		scenes, fromCache, err := f.fetchScenes(gctx)
		if err != nil {
			if errors.Is(err, apiclient.ErrRateLimited) {
				mu.Lock()
				result.RateLimited = true
				mu.Unlock()
				step()
				return nil
			}
			step()
			return fmt.Errorf("scene assignments: %w", err)
		}
		mu.Lock()
		result.Scenes = scenes
		result.ScenesFromCache = fromCache
		mu.Unlock()
		step()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (f *Fetcher) fetchCustoms(ctx context.Context) ([]model.CustomRequest, bool, error) {
	if f.cache != nil {
		if entry, ok := f.cache.GetCustoms(f.team, f.since); ok {
			log.Info("using cached custom requests", "count", len(entry.Requests))
			return entry.Requests, true, nil
		}
	}

	customs, err := f.api.ListCustomRequests(ctx, feedStatuses, f.since)
	if err != nil {
		return nil, false, err
	}

	if f.cache != nil {
		err := f.cache.SetCustoms(f.team, &cache.CustomsEntry{
			Requests:  customs,
			SinceTime: f.since,
		})
		if err != nil {
			log.Debug("failed to cache custom requests", "error", err)
		}
	}

	return customs, false, nil
}

func (f *Fetcher) fetchScenes(ctx context.Context) ([]model.SceneAssignment, bool, error) {
	if f.cache != nil {
		if entry, ok := f.cache.GetScenes(f.team); ok {
			log.Info("using cached scene assignments", "count", len(entry.Assignments))
			return entry.Assignments, true, nil
		}
	}

	scenes, err := f.api.ListSceneAssignments(ctx, model.ScenePending)
	if err != nil {
		return nil, false, err
	}

	if f.cache != nil {
		if err := f.cache.SetScenes(f.team, &cache.ScenesEntry{Assignments: scenes}); err != nil {
			log.Debug("failed to cache scene assignments", "error", err)
		}
	}

	return scenes, false, nil
}

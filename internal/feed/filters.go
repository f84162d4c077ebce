package feed

import (
	"time"

	"github.com/creatorops/opsfeed/internal/model"
)

// FilterByUrgency filters items by a specific urgency level
func FilterByUrgency(items []Item, level UrgencyLevel) []Item {
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Urgency == level {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// FilterByType filters items by source kind
func FilterByType(items []Item, itemType ItemType) []Item {
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Type == itemType {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// FilterVIP keeps only items from VIP requesters
func FilterVIP(items []Item) []Item {
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.IsVIP {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// FilterExcludedRequesters removes custom requests submitted by requesters
// in the exclude list. This is useful for hiding internal test accounts.
func FilterExcludedRequesters(requests []model.CustomRequest, excluded []string) []model.CustomRequest {
	if len(excluded) == 0 {
		return requests
	}

	excludeSet := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		excludeSet[name] = true
	}

	filtered := make([]model.CustomRequest, 0, len(requests))
	for _, r := range requests {
		if excludeSet[r.RequesterName] {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// DismissedStore is an interface for checking if items should be shown
type DismissedStore interface {
	ShouldShow(itemID string, lastActivity time.Time) bool
}

// FilterDismissed filters out items that were dismissed locally and have
// had no new activity since.
func FilterDismissed(items []Item, store DismissedStore, now time.Time) []Item {
	if store == nil {
		return items
	}

	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		lastActivity := now.Add(-time.Duration(it.TimeWaitingMs) * time.Millisecond)
		if store.ShouldShow(it.ID, lastActivity) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// Limit truncates the feed to at most n items. A non-positive n returns
// the feed unchanged.
func Limit(items []Item, n int) []Item {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

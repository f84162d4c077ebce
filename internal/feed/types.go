package feed

// UrgencyLevel classifies a priority score against the configured cutoffs.
type UrgencyLevel string

const (
	UrgencyUrgent UrgencyLevel = "urgent"
	UrgencyHigh   UrgencyLevel = "high"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyLow    UrgencyLevel = "low"
)

// Display returns a human-readable urgency level
func (u UrgencyLevel) Display() string {
	switch u {
	case UrgencyUrgent:
		return "Urgent"
	case UrgencyHigh:
		return "High"
	case UrgencyMedium:
		return "Medium"
	case UrgencyLow:
		return "Low"
	default:
		return string(u)
	}
}

// Badge returns the status tag shown next to an item. The glyphs are a
// display convention; only the urgency mapping matters.
func (u UrgencyLevel) Badge() string {
	switch u {
	case UrgencyUrgent:
		return "\U0001F525 URGENT" // 🔥
	case UrgencyHigh:
		return "⚡ ACTION NEEDED" // ⚡
	case UrgencyMedium:
		return "\U0001F4CB READY" // 📋
	default:
		return "✨ NEW" // ✨
	}
}

// ItemType identifies the source kind of a feed item
type ItemType string

const (
	TypeCustomApproval ItemType = "custom_approval"
	TypeCustomUpload   ItemType = "custom_upload"
	TypeScene          ItemType = "scene"
	TypeSceneGroup     ItemType = "scene_group"
)

// Item is a single display-ready entry in the priority feed.
// Items are transient: computed fresh from current records on every feed
// build and never persisted or mutated.
type Item struct {
	ID       string       `json:"id"`
	Type     ItemType     `json:"type"`
	Score    float64      `json:"priorityScore"`
	Urgency  UrgencyLevel `json:"urgencyLevel"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`

	// Amount is the proposed dollar amount (custom requests only).
	Amount float64 `json:"amount,omitempty"`

	TimeWaiting   string `json:"timeWaiting"`
	TimeWaitingMs int64  `json:"timeWaitingMs"`

	ActionLabel string `json:"actionLabel"`
	Badge       string `json:"badge"`
	IsVIP       bool   `json:"isVip,omitempty"`

	// OnAction is bound at construction to the source record and the
	// caller-supplied handler. The engine never invokes it.
	OnAction func() `json:"-"`

	// Children holds the collapsed scene items of a scene_group entry.
	Children []Item `json:"children,omitempty"`
}

// Summary aggregates feed-level counts for footer and report output
type Summary struct {
	Total         int                  `json:"total"`
	ByUrgency     map[UrgencyLevel]int `json:"byUrgency"`
	ByType        map[ItemType]int     `json:"byType"`
	VIPCount      int                  `json:"vipCount"`
	PendingAmount float64              `json:"pendingAmount"`
}

// Summarize computes feed-level counts across items.
// Scene groups contribute their children, not the group node itself.
func Summarize(items []Item) Summary {
	s := Summary{
		ByUrgency: make(map[UrgencyLevel]int),
		ByType:    make(map[ItemType]int),
	}

	var walk func(items []Item)
	walk = func(items []Item) {
		for _, it := range items {
			if it.Type == TypeSceneGroup {
				walk(it.Children)
				continue
			}
			s.Total++
			s.ByUrgency[it.Urgency]++
			s.ByType[it.Type]++
			if it.IsVIP {
				s.VIPCount++
			}
			s.PendingAmount += it.Amount
		}
	}
	walk(items)

	return s
}

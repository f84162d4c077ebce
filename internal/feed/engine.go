// Package feed implements the priority feed engine: it scores custom
// requests and scene assignments, classifies their urgency, and produces
// a stably sorted, display-ready work queue.
package feed

import (
	"fmt"
	"sort"
	"time"

	"github.com/creatorops/opsfeed/config"
	"github.com/creatorops/opsfeed/internal/format"
	"github.com/creatorops/opsfeed/internal/model"
)

// subtitleMaxRunes caps the subtitle length on feed items.
const subtitleMaxRunes = 60

// minScenesForGroup is the smallest number of scene items that collapse
// into a single group entry.
const minScenesForGroup = 3

// CustomActionFunc handles the feed action for a custom request.
type CustomActionFunc func(model.CustomRequest)

// SceneActionFunc handles the feed action for a scene assignment.
type SceneActionFunc func(model.SceneAssignment, model.Scene)

// Engine builds the prioritized feed. It is stateless aside from its
// immutable weights and can be shared across goroutines.
type Engine struct {
	scorer *Scorer
}

// NewEngine creates a feed engine with the given scoring weights
func NewEngine(weights config.EngineWeights) *Engine {
	return &Engine{
		scorer: NewScorer(weights),
	}
}

// BuildFeed converts the actionable subset of the given records into feed
// items and returns them stably sorted by descending score. Only customs
// awaiting client approval, customs ready for upload, and pending scene
// assignments surface; every other status is excluded by this allow-list.
// Equal scores retain input order: approvals, then uploads, then scenes.
func (e *Engine) BuildFeed(
	customs []model.CustomRequest,
	assignments []model.SceneAssignment,
	onCustom CustomActionFunc,
	onScene SceneActionFunc,
) []Item {
	items := make([]Item, 0, len(customs)+len(assignments))

	for _, r := range customs {
		if r.Status == model.StatusNeedsClientApproval {
			items = append(items, e.ConvertCustomRequest(r, onCustom))
		}
	}
	for _, r := range customs {
		if r.Status == model.StatusInProgress {
			items = append(items, e.ConvertCustomRequest(r, onCustom))
		}
	}
	for _, a := range assignments {
		if a.Status == model.ScenePending {
			items = append(items, e.ConvertSceneAssignment(a, onScene))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	return items
}

// ConvertCustomRequest turns one custom request into a feed item, binding
// the supplied handler to the record.
func (e *Engine) ConvertCustomRequest(r model.CustomRequest, onAction CustomActionFunc) Item {
	score := e.scorer.ScoreCustomRequest(&r)
	urgency := e.scorer.ClassifyUrgency(score)
	waiting := e.scorer.waitingFor(r.SubmittedAt)

	requester := r.RequesterName
	if requester == "" {
		requester = "Unknown requester"
	}

	var itemType ItemType
	var title, actionLabel string
	switch r.Status {
	case model.StatusInProgress:
		itemType = TypeCustomUpload
		title = requester + " · ready to upload"
		actionLabel = "Upload"
	default:
		itemType = TypeCustomApproval
		title = requester + " · needs approval"
		actionLabel = "Approve Now"
	}

	var amount float64
	if r.ProposedAmount != nil {
		amount = *r.ProposedAmount
	}

	return Item{
		ID:            r.ID,
		Type:          itemType,
		Score:         score,
		Urgency:       urgency,
		Title:         title,
		Subtitle:      format.Truncate(r.Description, subtitleMaxRunes),
		Amount:        amount,
		TimeWaiting:   format.RelativeWait(waiting),
		TimeWaitingMs: waiting.Milliseconds(),
		ActionLabel:   actionLabel,
		Badge:         urgency.Badge(),
		IsVIP:         e.scorer.IsVIP(&r),
		OnAction:      bindCustomAction(r, onAction),
	}
}

// ConvertSceneAssignment turns one scene assignment into a feed item,
// binding the supplied handler to the assignment and its scene.
func (e *Engine) ConvertSceneAssignment(a model.SceneAssignment, onAction SceneActionFunc) Item {
	score := e.scorer.ScoreSceneAssignment(&a)
	urgency := e.scorer.ClassifyUrgency(score)
	waiting := e.scorer.waitingFor(a.AssignedAt)

	title := a.Scene.Title
	if title == "" {
		title = "Untitled Scene"
	}
	subtitle := a.Scene.Location
	if subtitle == "" {
		subtitle = "No location set"
	}

	return Item{
		ID:            a.ID,
		Type:          TypeScene,
		Score:         score,
		Urgency:       urgency,
		Title:         title,
		Subtitle:      format.Truncate(subtitle, subtitleMaxRunes),
		TimeWaiting:   format.RelativeWait(waiting),
		TimeWaitingMs: waiting.Milliseconds(),
		ActionLabel:   "View Scene",
		Badge:         urgency.Badge(),
		OnAction:      bindSceneAction(a, onAction),
	}
}

// bindCustomAction closes over a copy of the record so a later upstream
// mutation can never change what the action applies to.
func bindCustomAction(r model.CustomRequest, onAction CustomActionFunc) func() {
	if onAction == nil {
		return func() {}
	}
	return func() { onAction(r) }
}

func bindSceneAction(a model.SceneAssignment, onAction SceneActionFunc) func() {
	if onAction == nil {
		return func() {}
	}
	return func() { onAction(a, a.Scene) }
}

// GroupScenes collapses the feed's scene items into a single group entry
// when there are at least three of them. Non-scene items keep their
// position; the group node takes the position of the first scene. Fewer
// than three scenes are returned unchanged.
func (e *Engine) GroupScenes(items []Item) []Item {
	var scenes []Item
	for _, it := range items {
		if it.Type == TypeScene {
			scenes = append(scenes, it)
		}
	}
	if len(scenes) < minScenesForGroup {
		return items
	}

	out := make([]Item, 0, len(items)-len(scenes)+1)
	grouped := false
	for _, it := range items {
		if it.Type != TypeScene {
			out = append(out, it)
			continue
		}
		if !grouped {
			out = append(out, e.sceneGroup(scenes))
			grouped = true
		}
	}
	return out
}

// sceneGroup builds the synthetic group entry carrying the scene items.
// The group inherits the most urgent child's score so it sorts where the
// first scene would have.
func (e *Engine) sceneGroup(scenes []Item) Item {
	var maxScore float64
	var maxWaitingMs int64
	for _, sc := range scenes {
		if sc.Score > maxScore {
			maxScore = sc.Score
		}
		if sc.TimeWaitingMs > maxWaitingMs {
			maxWaitingMs = sc.TimeWaitingMs
		}
	}
	urgency := e.scorer.ClassifyUrgency(maxScore)

	return Item{
		ID:            "scene-group",
		Type:          TypeSceneGroup,
		Score:         maxScore,
		Urgency:       urgency,
		Title:         fmt.Sprintf("%d pending scenes", len(scenes)),
		Subtitle:      format.Truncate(scenes[0].Title+" and more", subtitleMaxRunes),
		TimeWaiting:   format.RelativeWait(time.Duration(maxWaitingMs) * time.Millisecond),
		TimeWaitingMs: maxWaitingMs,
		ActionLabel:   "View Scenes",
		Badge:         urgency.Badge(),
		OnAction:      func() {},
		Children:      scenes,
	}
}

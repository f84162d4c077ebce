package feed

import (
	"math"
	"time"

	"github.com/creatorops/opsfeed/config"
	"github.com/creatorops/opsfeed/internal/model"
)

// Scorer implements the weighted urgency scoring rules
type Scorer struct {
	Weights config.EngineWeights

	// now is swapped out in tests to pin boundary cases
	now func() time.Time
}

// NewScorer creates a scorer with the given weights
func NewScorer(weights config.EngineWeights) *Scorer {
	return &Scorer{
		Weights: weights,
		now:     time.Now,
	}
}

// waitingFor returns the elapsed wall-clock time since the given RFC 3339
// timestamp. An unparseable timestamp or one in the future degrades to
// zero elapsed time; a bad record must never fail the whole feed.
func (s *Scorer) waitingFor(timestamp string) time.Duration {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0
	}
	d := s.now().Sub(t)
	if d < 0 {
		return 0
	}
	return d
}

// ScoreCustomRequest calculates the priority score for a custom request.
// Statuses outside the two the feed surfaces contribute a base score of
// zero; such records are expected to be filtered out before scoring.
func (s *Scorer) ScoreCustomRequest(r *model.CustomRequest) float64 {
	waitingHours := s.waitingFor(r.SubmittedAt).Hours()

	var score float64
	switch r.Status {
	case model.StatusNeedsClientApproval:
		if waitingHours >= s.Weights.UrgentEscalationHours {
			score = s.Weights.UrgentApproval
		} else {
			score = s.Weights.HighApproval
		}
	case model.StatusInProgress:
		score = s.Weights.ReadyUpload
	}

	score += math.Min(waitingHours*s.Weights.HourlyWaitingBonus, s.Weights.MaxWaitingBonus)

	// VIP bonus is flat, not scaled by spend
	if s.IsVIP(r) {
		score += s.Weights.VIPBonus
	}

	if r.ProposedAmount != nil && *r.ProposedAmount > 0 {
		steps := math.Floor(*r.ProposedAmount / s.Weights.AmountBonusStep)
		score += math.Min(steps*s.Weights.AmountBonus, s.Weights.MaxAmountBonus)
	}

	return score
}

// ScoreSceneAssignment calculates the priority score for a scene
// assignment. Scenes carry no monetary or VIP dimension; only the
// assignment age matters.
func (s *Scorer) ScoreSceneAssignment(a *model.SceneAssignment) float64 {
	waitingDays := s.waitingFor(a.AssignedAt).Hours() / 24
	if waitingDays > s.Weights.OldSceneThresholdDays {
		return s.Weights.OldScene
	}
	return s.Weights.NewScene
}

// ClassifyUrgency maps a score onto the urgency taxonomy. Cutoffs are
// evaluated in descending order, so the mapping is monotonic as long as
// urgent > high > medium.
func (s *Scorer) ClassifyUrgency(score float64) UrgencyLevel {
	switch {
	case score >= s.Weights.UrgentThreshold:
		return UrgencyUrgent
	case score >= s.Weights.HighThreshold:
		return UrgencyHigh
	case score >= s.Weights.MediumThreshold:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// IsVIP reports whether the requester's lifetime spend meets the VIP
// threshold. A missing spend figure means not VIP.
func (s *Scorer) IsVIP(r *model.CustomRequest) bool {
	return r.LifetimeSpend != nil && *r.LifetimeSpend >= s.Weights.VIPThreshold
}

package feed

import (
	"math"
	"testing"
	"time"

	"github.com/creatorops/opsfeed/config"
	"github.com/creatorops/opsfeed/internal/model"
)

// testNow is the pinned reference time for all scoring tests
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestScorer() *Scorer {
	s := NewScorer(config.DefaultEngineWeights())
	s.now = func() time.Time { return testNow }
	return s
}

func ago(d time.Duration) string {
	return testNow.Add(-d).Format(time.RFC3339)
}

func amount(v float64) *float64 { return &v }

func spend(v float64) *float64 { return &v }

func makeCustom(id string, status model.CustomStatus, waited time.Duration) model.CustomRequest {
	return model.CustomRequest{
		ID:          id,
		Status:      status,
		SubmittedAt: ago(waited),
	}
}

func scoresClose(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestScoreCustomRequestBaseScores(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name   string
		status model.CustomStatus
		waited time.Duration
		want   float64
	}{
		{
			name:   "approval below escalation boundary uses high base",
			status: model.StatusNeedsClientApproval,
			waited: 2 * time.Hour,
			want:   800 + 2*5,
		},
		{
			name:   "approval at escalation boundary uses urgent base",
			status: model.StatusNeedsClientApproval,
			waited: 24 * time.Hour,
			want:   1000 + 24*5,
		},
		{
			name:   "ready for upload uses upload base",
			status: model.StatusInProgress,
			waited: 2 * time.Hour,
			want:   600 + 2*5,
		},
		{
			name:   "completed contributes zero base",
			status: model.StatusCompleted,
			waited: 2 * time.Hour,
			want:   2 * 5,
		},
		{
			name:   "needs team approval contributes zero base",
			status: model.StatusNeedsTeamApproval,
			waited: 2 * time.Hour,
			want:   2 * 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := makeCustom("1", tt.status, tt.waited)
			got := s.ScoreCustomRequest(&r)
			if !scoresClose(got, tt.want) {
				t.Errorf("ScoreCustomRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEscalationBoundary(t *testing.T) {
	s := newTestScorer()

	// One minute under 24 hours stays on the high-approval base.
	under := makeCustom("1", model.StatusNeedsClientApproval, 23*time.Hour+59*time.Minute)
	wantUnder := 800 + (23*time.Hour + 59*time.Minute).Hours()*5
	if got := s.ScoreCustomRequest(&under); !scoresClose(got, wantUnder) {
		t.Errorf("score just under 24h = %v, want %v", got, wantUnder)
	}

	// Exactly 24 hours escalates to the urgent base.
	at := makeCustom("2", model.StatusNeedsClientApproval, 24*time.Hour)
	wantAt := 1000 + 24*5.0
	if got := s.ScoreCustomRequest(&at); !scoresClose(got, wantAt) {
		t.Errorf("score at exactly 24h = %v, want %v", got, wantAt)
	}
}

func TestWaitTimeMonotonicity(t *testing.T) {
	s := newTestScorer()

	// Both below the escalation boundary and below the bonus cap.
	short := makeCustom("1", model.StatusNeedsClientApproval, 5*time.Hour)
	long := makeCustom("2", model.StatusNeedsClientApproval, 10*time.Hour)

	shortScore := s.ScoreCustomRequest(&short)
	longScore := s.ScoreCustomRequest(&long)
	if longScore <= shortScore {
		t.Errorf("longer wait scored %v, shorter wait scored %v; want longer > shorter", longScore, shortScore)
	}
}

func TestWaitingBonusCap(t *testing.T) {
	s := newTestScorer()

	r := makeCustom("1", model.StatusNeedsClientApproval, 1000*time.Hour)
	// Urgent base plus the bonus cap, never 1000h worth of bonus.
	want := 1000 + 200.0
	if got := s.ScoreCustomRequest(&r); !scoresClose(got, want) {
		t.Errorf("ScoreCustomRequest() = %v, want capped %v", got, want)
	}
}

func TestVIPBonusIsFlat(t *testing.T) {
	s := newTestScorer()

	atThreshold := makeCustom("1", model.StatusNeedsClientApproval, time.Hour)
	atThreshold.LifetimeSpend = spend(500)
	below := makeCustom("2", model.StatusNeedsClientApproval, time.Hour)
	below.LifetimeSpend = spend(499)

	vipScore := s.ScoreCustomRequest(&atThreshold)
	plainScore := s.ScoreCustomRequest(&below)

	if diff := vipScore - plainScore; !scoresClose(diff, 100) {
		t.Errorf("VIP score difference = %v, want exactly 100", diff)
	}
	if vipScore < plainScore {
		t.Error("VIP request scored lower than non-VIP request")
	}
}

func TestVIPDetection(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name  string
		spend *float64
		want  bool
	}{
		{"missing spend is not VIP", nil, false},
		{"below threshold is not VIP", spend(499), false},
		{"at threshold is VIP", spend(500), true},
		{"above threshold is VIP", spend(10000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := makeCustom("1", model.StatusNeedsClientApproval, time.Hour)
			r.LifetimeSpend = tt.spend
			if got := s.IsVIP(&r); got != tt.want {
				t.Errorf("IsVIP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmountBonusRoundsDown(t *testing.T) {
	s := newTestScorer()

	score := func(amt *float64) float64 {
		r := makeCustom("1", model.StatusNeedsClientApproval, time.Hour)
		r.ProposedAmount = amt
		return s.ScoreCustomRequest(&r)
	}

	// $149 and $100 both floor to two $50 steps.
	if a, b := score(amount(149)), score(amount(100)); !scoresClose(a, b) {
		t.Errorf("score($149) = %v, score($100) = %v; want equal", a, b)
	}

	// $150 earns one more step than $149.
	if a, b := score(amount(150)), score(amount(149)); !scoresClose(a-b, 10) {
		t.Errorf("score($150) - score($149) = %v, want 10", a-b)
	}

	// The bonus caps out regardless of amount.
	if a, b := score(amount(100000)), score(nil); !scoresClose(a-b, 100) {
		t.Errorf("amount bonus for $100000 = %v, want capped 100", a-b)
	}

	// A missing amount contributes zero.
	if a, b := score(nil), score(amount(0)); !scoresClose(a, b) {
		t.Errorf("score(nil) = %v, score($0) = %v; want equal", a, b)
	}
}

func TestUnparseableTimestampFailsOpen(t *testing.T) {
	s := newTestScorer()

	r := model.CustomRequest{
		ID:          "1",
		Status:      model.StatusNeedsClientApproval,
		SubmittedAt: "not-a-timestamp",
	}

	// Zero elapsed time: high base, no wait bonus, no escalation.
	if got := s.ScoreCustomRequest(&r); !scoresClose(got, 800) {
		t.Errorf("ScoreCustomRequest() with bad timestamp = %v, want 800", got)
	}
}

func TestFutureTimestampClampsToZero(t *testing.T) {
	s := newTestScorer()

	r := model.CustomRequest{
		ID:          "1",
		Status:      model.StatusNeedsClientApproval,
		SubmittedAt: testNow.Add(2 * time.Hour).Format(time.RFC3339),
	}

	if got := s.ScoreCustomRequest(&r); !scoresClose(got, 800) {
		t.Errorf("ScoreCustomRequest() with future timestamp = %v, want 800", got)
	}
}

func TestScoreSceneAssignment(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name   string
		waited time.Duration
		want   float64
	}{
		{"fresh assignment", time.Hour, 400},
		{"two days old", 2 * 24 * time.Hour, 400},
		{"exactly three days stays new", 3 * 24 * time.Hour, 400},
		{"over three days is old", 3*24*time.Hour + time.Hour, 200},
		{"weeks old", 14 * 24 * time.Hour, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := model.SceneAssignment{
				ID:         "1",
				Status:     model.ScenePending,
				AssignedAt: ago(tt.waited),
			}
			if got := s.ScoreSceneAssignment(&a); !scoresClose(got, tt.want) {
				t.Errorf("ScoreSceneAssignment() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unparseable assignment time scores as new", func(t *testing.T) {
		a := model.SceneAssignment{ID: "1", Status: model.ScenePending, AssignedAt: "garbage"}
		if got := s.ScoreSceneAssignment(&a); !scoresClose(got, 400) {
			t.Errorf("ScoreSceneAssignment() = %v, want 400", got)
		}
	})
}

func TestClassifyUrgency(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		score float64
		want  UrgencyLevel
	}{
		{1290, UrgencyUrgent},
		{900, UrgencyUrgent},
		{899, UrgencyHigh},
		{700, UrgencyHigh},
		{699, UrgencyMedium},
		{400, UrgencyMedium},
		{399, UrgencyLow},
		{0, UrgencyLow},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := s.ClassifyUrgency(tt.score); got != tt.want {
				t.Errorf("ClassifyUrgency(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestClassifyUrgencyRespectsOverrides(t *testing.T) {
	weights := config.DefaultEngineWeights()
	weights.UrgentThreshold = 1200
	weights.HighThreshold = 1000
	weights.MediumThreshold = 500
	s := NewScorer(weights)

	if got := s.ClassifyUrgency(1100); got != UrgencyHigh {
		t.Errorf("ClassifyUrgency(1100) = %v, want high with raised thresholds", got)
	}
	if got := s.ClassifyUrgency(450); got != UrgencyLow {
		t.Errorf("ClassifyUrgency(450) = %v, want low with raised thresholds", got)
	}
}

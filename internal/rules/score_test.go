package rules

import (
	"testing"
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

func TestScoreClampUpper(t *testing.T) {
	// Every modifier maxed at once must still land inside [0,10].
	d := testNow.Add(24 * time.Hour)
	sig := signal.Signal{
		Type:             signal.TypeFinalRule,
		Urgency:          signal.UrgencyCritical,
		Timestamp:        testNow,
		Deadline:         &d,
		WatchlistMatches: []string{"epa"},
	}
	sig.SetMetric(signal.MetricCommentDelta, 1000000.0)

	got := score(&sig, testNow)
	if got < 0.0 || got > 10.0 {
		t.Errorf("score out of bounds: %f", got)
	}
	if got != 10.0 {
		t.Errorf("maxed modifiers should clamp to 10.0, got %f", got)
	}
}

func TestScoreClampLower(t *testing.T) {
	sig := signal.Signal{
		Type:      signal.TypeNotice,
		Urgency:   signal.UrgencyLow,
		Timestamp: testNow.Add(-60 * 24 * time.Hour), // stale
	}
	got := score(&sig, testNow)
	if got < 0.0 {
		t.Errorf("score below zero: %f", got)
	}
	// base 1.0 - 1.0 stale penalty
	if got != 0.0 {
		t.Errorf("stale notice should score 0.0, got %f", got)
	}
}

func TestSurgeBonusMonotonicAndCapped(t *testing.T) {
	prev := -1.0
	for _, pct := range []float64{0, 50, 100, 200, 400, 800, 10000} {
		sig := signal.Signal{Type: signal.TypeDocket}
		sig.SetMetric(signal.MetricCommentDelta, pct)
		bonus := surgeBonus(&sig)

		if bonus < prev {
			t.Errorf("surge bonus decreased at %0.f%%: %f < %f", pct, bonus, prev)
		}
		if bonus > 2.0 {
			t.Errorf("surge bonus exceeds cap at %0.f%%: %f", pct, bonus)
		}
		prev = bonus
	}

	// sqrt(400/100) = 2.0 exactly at the cap
	sig := signal.Signal{}
	sig.SetMetric(signal.MetricCommentDelta, 400.0)
	if b := surgeBonus(&sig); b != 2.0 {
		t.Errorf("expected bonus 2.0 at 400%%, got %f", b)
	}
}

func TestWatchlistBonusDelta(t *testing.T) {
	base := signal.Signal{Type: signal.TypeProposedRule, Urgency: signal.UrgencyLow, Timestamp: testNow}
	hit := base
	hit.WatchlistMatches = []string{"privacy"}

	without := score(&base, testNow)
	with := score(&hit, testNow)

	if with-without < watchlistBonus {
		t.Errorf("watchlist hit should add at least %f, got delta %f", watchlistBonus, with-without)
	}
}

func TestFloorVoteOverridesBase(t *testing.T) {
	vote := signal.Signal{Type: signal.TypeBill, ActionType: signal.ActionFloorVote, Urgency: signal.UrgencyLow, Timestamp: testNow}
	plain := signal.Signal{Type: signal.TypeBill, Urgency: signal.UrgencyLow, Timestamp: testNow}

	if score(&vote, testNow) != 4.0 {
		t.Errorf("floor vote base should be 4.0, got %f", score(&vote, testNow))
	}
	if score(&plain, testNow) != 1.5 {
		t.Errorf("plain bill base should be 1.5, got %f", score(&plain, testNow))
	}
}

func TestDeadlineBonus(t *testing.T) {
	near := testNow.Add(2 * 24 * time.Hour)
	far := testNow.Add(10 * 24 * time.Hour)

	withNear := signal.Signal{Type: signal.TypeNotice, Urgency: signal.UrgencyLow, Timestamp: testNow, Deadline: &near}
	withFar := signal.Signal{Type: signal.TypeNotice, Urgency: signal.UrgencyLow, Timestamp: testNow, Deadline: &far}

	if score(&withNear, testNow)-score(&withFar, testNow) != deadlineBonus {
		t.Errorf("deadline within 3 days should add %f", deadlineBonus)
	}
}

func TestBundleKeepsFixedScore(t *testing.T) {
	e := NewEngine(nil)
	e.Now = func() time.Time { return testNow }

	bundle := signal.Signal{
		Source:        signal.SourceFederalRegister,
		SourceID:      "faa_ads_bundle_5",
		Title:         "FAA Airworthiness Directives — 5 notices today",
		Timestamp:     testNow,
		PriorityScore: 2.0,
	}
	bundle.SetMetric(signal.MetricBundledCount, 5)

	e.Process(&bundle)
	if bundle.PriorityScore != 2.0 {
		t.Errorf("bundle score should stay fixed at 2.0, got %f", bundle.PriorityScore)
	}
}

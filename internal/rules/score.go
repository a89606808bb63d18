package rules

import (
	"math"
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

// Scoring modifiers. The additive rule set is canonical; there is no
// multiplicative variant.
const (
	urgencyCriticalBonus = 2.0
	urgencyHighBonus     = 1.0
	surgeBonusCap        = 2.0
	deadlineBonus        = 0.8
	deadlineBonusDays    = 3
	watchlistBonus       = 1.5
	stalePenalty         = -1.0
	staleAfterDays       = 30

	scoreMin = 0.0
	scoreMax = 10.0
)

// score computes the bounded [0,10] priority score: a per-type base plus
// clamped additive modifiers. Runs after urgency and watchlist matching,
// which both feed into it.
func score(sig *signal.Signal, now time.Time) float64 {
	base, ok := actionBaseScores[sig.ActionType]
	if !ok {
		if base, ok = baseScores[sig.Type]; !ok {
			base = 1.0
		}
	}

	s := base

	switch sig.Urgency {
	case signal.UrgencyCritical:
		s += urgencyCriticalBonus
	case signal.UrgencyHigh:
		s += urgencyHighBonus
	}

	s += surgeBonus(sig)

	if sig.Deadline != nil && daysUntil(now, *sig.Deadline) <= deadlineBonusDays {
		s += deadlineBonus
	}

	if sig.WatchlistHit() {
		s += watchlistBonus
	}

	if sig.Age(now) > staleAfterDays*24*time.Hour {
		s += stalePenalty
	}

	return math.Max(scoreMin, math.Min(scoreMax, s))
}

// surgeBonus maps the 24h comment delta percentage to a capped bonus:
// min(2, sqrt(deltaPct/100)). Monotonic in the delta.
func surgeBonus(sig *signal.Signal) float64 {
	delta, ok := sig.MetricFloat(signal.MetricCommentDelta)
	if !ok || delta <= 0 {
		return 0
	}
	return math.Min(surgeBonusCap, math.Sqrt(delta/100))
}

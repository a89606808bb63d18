// Package rules is the deterministic rules engine: it classifies signals,
// resolves urgency tiers, matches watchlist terms, scores priority, and
// tags industries. Everything here is pure computation over in-memory
// values; no I/O.
package rules

import (
	"time"

	"github.com/abelbrown/govlens/internal/logging"
	"github.com/abelbrown/govlens/internal/signal"
)

// Engine applies the full rule set to signals. The watchlist is read-only
// caller input; Now is injectable so tests can pin the clock.
type Engine struct {
	Watchlist []string
	Now       func() time.Time
}

// NewEngine creates an engine with the given watch terms.
func NewEngine(watchlist []string) *Engine {
	return &Engine{
		Watchlist: watchlist,
		Now:       time.Now,
	}
}

// Process runs all rules on a signal in dependency order: classification
// feeds urgency, and both urgency and the watchlist result feed the score.
// Bundles keep their fixed score and skip the formula.
func (e *Engine) Process(sig *signal.Signal) {
	now := e.Now().UTC()
	sig.Normalize(now)

	sig.Type = Classify(sig)
	sig.Urgency = resolveUrgency(sig, now)
	sig.WatchlistMatches = MatchWatchlist(sig, e.Watchlist)
	if !sig.IsBundle() {
		sig.PriorityScore = score(sig, now)
	}
	if sig.Industry == "" {
		sig.Industry = TagIndustry(sig)
	}
}

// ProcessAll processes a batch, isolating per-signal failures: a signal
// that panics mid-rule is logged and dropped, never aborting the run.
func (e *Engine) ProcessAll(signals []signal.Signal) []signal.Signal {
	out := make([]signal.Signal, 0, len(signals))
	for i := range signals {
		if e.processOne(&signals[i]) {
			out = append(out, signals[i])
		}
	}
	return out
}

func (e *Engine) processOne(sig *signal.Signal) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("skipping signal after processing failure",
				"stable_id", sig.StableID(), "panic", r)
			ok = false
		}
	}()
	e.Process(sig)
	return true
}

// daysUntil counts whole days from now to t, flooring toward negative
// infinity so a deadline 30 days and 12 hours out still counts as 30 days.
func daysUntil(now, t time.Time) int {
	d := t.Sub(now)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

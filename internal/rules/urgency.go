package rules

import (
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

// Urgency tier thresholds, in days.
const (
	criticalEffectiveDays = 30
	highCommentDays       = 14
	highEventDays         = 7
	highDocketDays        = 7
	mediumEventDays       = 21
	surgeUrgencyPct       = 200
)

// resolveUrgency walks the tiers from critical down; the first tier with
// any satisfied predicate wins. All instants are UTC by the time this
// runs (Normalize enforces it).
func resolveUrgency(sig *signal.Signal, now time.Time) signal.Urgency {
	if isCritical(sig, now) {
		return signal.UrgencyCritical
	}
	if isHigh(sig, now) {
		return signal.UrgencyHigh
	}
	if isMedium(sig, now) {
		return signal.UrgencyMedium
	}
	return signal.UrgencyLow
}

// isCritical: a final (or interim final) rule taking effect within 30
// days, boundary inclusive.
func isCritical(sig *signal.Signal, now time.Time) bool {
	if sig.Type != signal.TypeFinalRule && sig.Type != signal.TypeInterimFinalRule {
		return false
	}
	return sig.Deadline != nil && daysUntil(now, *sig.Deadline) <= criticalEffectiveDays
}

func isHigh(sig *signal.Signal, now time.Time) bool {
	if sig.ActionType == signal.ActionFloorVote || sig.ActionType == signal.ActionConferenceAction {
		return true
	}

	switch sig.Type {
	case signal.TypeProposedRule:
		return sig.Deadline != nil && daysUntil(now, *sig.Deadline) <= highCommentDays
	case signal.TypeHearing, signal.TypeMarkup:
		return sig.Deadline != nil && daysUntil(now, *sig.Deadline) <= highEventDays
	case signal.TypeDocket:
		if sig.Deadline != nil && daysUntil(now, *sig.Deadline) <= highDocketDays {
			return true
		}
		delta, ok := sig.MetricFloat(signal.MetricCommentDelta)
		return ok && delta >= surgeUrgencyPct
	}
	return false
}

func isMedium(sig *signal.Signal, now time.Time) bool {
	switch sig.Type {
	case signal.TypeHearing, signal.TypeMarkup:
		if sig.Deadline == nil {
			return false
		}
		days := daysUntil(now, *sig.Deadline)
		return days > highEventDays && days <= mediumEventDays
	case signal.TypeDocket:
		return sig.CommentCount > 0
	case signal.TypeBill:
		return sig.ActionType == signal.ActionCommitteeReferral
	}
	return false
}

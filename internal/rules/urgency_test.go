package rules

import (
	"testing"
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func deadlineIn(days int) *time.Time {
	d := testNow.Add(time.Duration(days) * 24 * time.Hour)
	return &d
}

func TestCriticalBoundary(t *testing.T) {
	at30 := signal.Signal{Type: signal.TypeFinalRule, Deadline: deadlineIn(30)}
	if got := resolveUrgency(&at30, testNow); got != signal.UrgencyCritical {
		t.Errorf("final rule effective in exactly 30 days should be critical, got %s", got)
	}

	at31 := signal.Signal{Type: signal.TypeFinalRule, Deadline: deadlineIn(31)}
	if got := resolveUrgency(&at31, testNow); got == signal.UrgencyCritical {
		t.Error("final rule effective in 31 days should not be critical")
	}
}

func TestCriticalCoversInterimFinal(t *testing.T) {
	sig := signal.Signal{Type: signal.TypeInterimFinalRule, Deadline: deadlineIn(10)}
	if got := resolveUrgency(&sig, testNow); got != signal.UrgencyCritical {
		t.Errorf("interim final rule within window should be critical, got %s", got)
	}
}

func TestCriticalRequiresDeadline(t *testing.T) {
	sig := signal.Signal{Type: signal.TypeFinalRule}
	if got := resolveUrgency(&sig, testNow); got == signal.UrgencyCritical {
		t.Error("final rule without deadline should not be critical")
	}
}

func TestHighTier(t *testing.T) {
	cases := []struct {
		name string
		sig  signal.Signal
	}{
		{"proposed rule, comments close in 14d", signal.Signal{Type: signal.TypeProposedRule, Deadline: deadlineIn(14)}},
		{"hearing in 7d", signal.Signal{Type: signal.TypeHearing, Deadline: deadlineIn(7)}},
		{"markup in 3d", signal.Signal{Type: signal.TypeMarkup, Deadline: deadlineIn(3)}},
		{"floor vote", signal.Signal{Type: signal.TypeBill, ActionType: signal.ActionFloorVote}},
		{"conference action", signal.Signal{Type: signal.TypeBill, ActionType: signal.ActionConferenceAction}},
		{"docket deadline in 7d", signal.Signal{Type: signal.TypeDocket, Deadline: deadlineIn(7)}},
	}
	for _, c := range cases {
		if got := resolveUrgency(&c.sig, testNow); got != signal.UrgencyHigh {
			t.Errorf("%s: expected high, got %s", c.name, got)
		}
	}

	surge := signal.Signal{Type: signal.TypeDocket}
	surge.SetMetric(signal.MetricCommentDelta, 250.0)
	if got := resolveUrgency(&surge, testNow); got != signal.UrgencyHigh {
		t.Errorf("docket with 250%% surge: expected high, got %s", got)
	}
}

func TestMediumTier(t *testing.T) {
	hearing := signal.Signal{Type: signal.TypeHearing, Deadline: deadlineIn(14)}
	if got := resolveUrgency(&hearing, testNow); got != signal.UrgencyMedium {
		t.Errorf("hearing in 14 days: expected medium, got %s", got)
	}

	// 21 days is the inclusive upper bound, 22 falls to low.
	at21 := signal.Signal{Type: signal.TypeMarkup, Deadline: deadlineIn(21)}
	if got := resolveUrgency(&at21, testNow); got != signal.UrgencyMedium {
		t.Errorf("markup in 21 days: expected medium, got %s", got)
	}
	at22 := signal.Signal{Type: signal.TypeMarkup, Deadline: deadlineIn(22)}
	if got := resolveUrgency(&at22, testNow); got != signal.UrgencyLow {
		t.Errorf("markup in 22 days: expected low, got %s", got)
	}

	activeDocket := signal.Signal{Type: signal.TypeDocket, CommentCount: 12}
	if got := resolveUrgency(&activeDocket, testNow); got != signal.UrgencyMedium {
		t.Errorf("active docket: expected medium, got %s", got)
	}

	referral := signal.Signal{Type: signal.TypeBill, ActionType: signal.ActionCommitteeReferral}
	if got := resolveUrgency(&referral, testNow); got != signal.UrgencyMedium {
		t.Errorf("committee referral: expected medium, got %s", got)
	}
}

func TestLowDefault(t *testing.T) {
	sig := signal.Signal{Type: signal.TypeNotice}
	if got := resolveUrgency(&sig, testNow); got != signal.UrgencyLow {
		t.Errorf("expected low default, got %s", got)
	}
}

func TestUrgencyWithNonUTCDeadline(t *testing.T) {
	// A deadline carried in a non-UTC zone must compare as the same
	// instant after normalization.
	loc := time.FixedZone("EST", -5*3600)
	d := testNow.Add(30 * 24 * time.Hour).In(loc)
	sig := signal.Signal{Type: signal.TypeFinalRule, Deadline: &d}
	sig.Normalize(testNow)

	if got := resolveUrgency(&sig, testNow); got != signal.UrgencyCritical {
		t.Errorf("zone-shifted 30-day deadline should still be critical, got %s", got)
	}
}

func TestDaysUntilFloors(t *testing.T) {
	if d := daysUntil(testNow, testNow.Add(30*24*time.Hour+12*time.Hour)); d != 30 {
		t.Errorf("30.5 days out should floor to 30, got %d", d)
	}
	if d := daysUntil(testNow, testNow.Add(-12*time.Hour)); d != -1 {
		t.Errorf("half a day past should floor to -1, got %d", d)
	}
	if d := daysUntil(testNow, testNow); d != 0 {
		t.Errorf("same instant should be 0 days, got %d", d)
	}
}

package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/govlens/internal/rules"
	"github.com/abelbrown/govlens/internal/signal"
)

// Per-section line formatters. Every item renders as a bullet line plus
// one indented detail line; long titles wrap onto the indent instead of
// being cut mid-word.

func (c *Composer) wrappedTitle(sig *signal.Signal) string {
	return strings.Join(WrapTitle(sig.Title, c.opts.TitleLimit), "\n  ")
}

func industryTag(sig *signal.Signal) string {
	industry := sig.Industry
	if industry == "" {
		industry = rules.DefaultIndustry
	}
	return "[" + industry + "]"
}

func issueCodes(sig *signal.Signal) string {
	if len(sig.IssueCodes) == 0 {
		return "Issues: None"
	}
	return "Issues: " + strings.Join(sig.IssueCodes, "/")
}

func (c *Composer) formatWatchlist(sig *signal.Signal, now time.Time) string {
	detail := joinParts(
		TruncateSummary(sig.Summary, c.opts.SummaryLimit),
		issueCodes(sig),
		SourceLink(sig),
	)
	return fmt.Sprintf("• %s **%s** • %s\n  %s",
		industryTag(sig), c.wrappedTitle(sig), sig.Urgency.Display(), detail)
}

func (c *Composer) formatWhatChanged(sig *signal.Signal, now time.Time) string {
	detail := joinParts(issueCodes(sig), SourceLink(sig))
	return fmt.Sprintf("• %s %s — %s • %s\n  %s",
		industryTag(sig), typePrefix(sig.Type), c.wrappedTitle(sig), sig.Urgency.Display(), detail)
}

func (c *Composer) formatIndustry(sig *signal.Signal, now time.Time) string {
	detail := joinParts(issueCodes(sig), SourceLink(sig))
	return fmt.Sprintf("• %s %s • %s\n  %s",
		industryTag(sig), c.wrappedTitle(sig), sig.Urgency.Display(), detail)
}

func (c *Composer) formatDeadline(sig *signal.Signal, now time.Time) string {
	detail := joinParts(issueCodes(sig), SourceLink(sig))
	return fmt.Sprintf("• %s %s • Deadline: %s\n  %s",
		industryTag(sig), c.wrappedTitle(sig), deadlineDisplay(sig, now), detail)
}

func (c *Composer) formatSurge(sig *signal.Signal, now time.Time) string {
	surge := "Surge detected"
	if delta, ok := sig.MetricFloat(signal.MetricCommentDelta); ok {
		if abs, haveAbs := sig.MetricFloat("comments_24h_delta"); haveAbs {
			surge = fmt.Sprintf("+%.0f%% / +%.0f (24h)", delta, abs)
		} else {
			surge = fmt.Sprintf("+%.0f%% (24h)", delta)
		}
	}

	window := "No deadline"
	if sig.Deadline != nil {
		window = fmt.Sprintf("Deadline in %dd", daysUntil(now, *sig.Deadline))
	}

	detail := joinParts(surge, window, issueCodes(sig), SourceLink(sig))
	return fmt.Sprintf("• %s Docket Surge — %s • %s\n  %s",
		industryTag(sig), c.wrappedTitle(sig), sig.Urgency.Display(), detail)
}

func (c *Composer) formatBill(sig *signal.Signal, now time.Time) string {
	detail := joinParts("Last action: "+actionDisplay(sig.ActionType), issueCodes(sig), SourceLink(sig))
	return fmt.Sprintf("• %s Bill Action — %s • %s\n  %s",
		industryTag(sig), c.wrappedTitle(sig), sig.Urgency.Display(), detail)
}

func (c *Composer) formatBundle(sig *signal.Signal, now time.Time) string {
	return "• " + joinParts(sig.Title, SourceLink(sig))
}

func (c *Composer) formatOutlier(sig *signal.Signal, now time.Time) string {
	return "• " + joinParts(TruncateSummary(sig.Title, 80), SourceLink(sig))
}

func (c *Composer) formatMini(sig *signal.Signal) string {
	return "• " + joinParts(
		industryTag(sig)+" "+c.wrappedTitle(sig),
		sig.Urgency.Display(),
		SourceLink(sig),
	)
}

func typePrefix(t signal.Type) string {
	switch t {
	case signal.TypeFinalRule:
		return "*Final Rule*"
	case signal.TypeInterimFinalRule:
		return "*Interim Final Rule*"
	case signal.TypeProposedRule:
		return "*Proposed Rule*"
	case signal.TypeHearing:
		return "Hearing"
	case signal.TypeMarkup:
		return "Markup"
	case signal.TypeBill:
		return "Bill Action"
	case signal.TypeDocket:
		return "Docket"
	default:
		return "Notice"
	}
}

func deadlineDisplay(sig *signal.Signal, now time.Time) string {
	if sig.Deadline == nil {
		return "Unknown"
	}
	switch days := daysUntil(now, *sig.Deadline); {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%dd", days)
	}
}

// actionDisplay renders a raw action type for humans: known types get
// fixed phrasing, the rest swap underscores for spaces.
func actionDisplay(actionType string) string {
	switch actionType {
	case "":
		return "Action"
	case "introduced":
		return "Introduced"
	case "hearing_scheduled":
		return "Hearing scheduled"
	case "markup_scheduled":
		return "Markup scheduled"
	case signal.ActionFloorVote:
		return "Floor vote"
	case signal.ActionConferenceAction:
		return "Conference action"
	case signal.ActionCommitteeReferral:
		return "Committee referral"
	}

	words := strings.ReplaceAll(actionType, "_", " ")
	return strings.ToUpper(words[:1]) + words[1:]
}

// daysUntil counts whole days from now to t, flooring toward negative
// infinity. Mirrors the rules engine's deadline arithmetic.
func daysUntil(now, t time.Time) int {
	d := t.Sub(now)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

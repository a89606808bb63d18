// Package signal defines the canonical record for one government-activity
// event. Collectors produce Signals; the rules engine fills in the derived
// fields; the digest composer consumes them.
package signal

import (
	"strings"
	"time"
)

// Source identifies the upstream system a signal came from.
type Source string

const (
	SourceCongress        Source = "congress"
	SourceFederalRegister Source = "federal_register"
	SourceRegulationsGov  Source = "regulations_gov"
)

// LinkLabel returns the label used when rendering a signal's link
// in the chat digest.
func (s Source) LinkLabel() string {
	switch s {
	case SourceFederalRegister:
		return "FR"
	case SourceCongress:
		return "Congress"
	case SourceRegulationsGov:
		return "Docket"
	default:
		return "View"
	}
}

// Type classifies what kind of government action a signal represents.
type Type string

const (
	TypeFinalRule        Type = "final_rule"
	TypeInterimFinalRule Type = "interim_final_rule"
	TypeProposedRule     Type = "proposed_rule"
	TypeHearing          Type = "hearing"
	TypeMarkup           Type = "markup"
	TypeBill             Type = "bill"
	TypeDocket           Type = "docket"
	TypeNotice           Type = "notice"
)

// Urgency is the ordinal time-sensitivity tier of a signal.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Rank returns the ordinal position of an urgency tier; higher is more urgent.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	default:
		return 0
	}
}

// Display returns the tier name capitalized for digest output.
func (u Urgency) Display() string {
	if u == "" {
		return "Medium"
	}
	return strings.ToUpper(string(u[:1])) + string(u[1:])
}

// Bill action types with special handling in classification and scoring.
const (
	ActionFloorVote         = "floor_vote"
	ActionConferenceAction  = "conference_action"
	ActionCommitteeReferral = "committee_referral"
)

// MetricBundledCount is set on synthetic bundle signals.
const MetricBundledCount = "bundled_count"

// MetricCommentDelta is the 24h comment surge percentage on docket signals.
const MetricCommentDelta = "comments_24h_delta_pct"

// Signal is the normalized record of one government-activity event.
// A Signal is owned by one pipeline stage at a time and mutated in place
// through classification and scoring.
type Signal struct {
	Source       Source         `json:"source"`
	SourceID     string         `json:"source_id"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary"`
	Link         string         `json:"link"`
	Timestamp    time.Time      `json:"timestamp"`
	Agency       string         `json:"agency,omitempty"`
	IssueCodes   []string       `json:"issue_codes,omitempty"`
	BillID       string         `json:"bill_id,omitempty"`
	DocketID     string         `json:"docket_id,omitempty"`
	ActionType   string         `json:"action_type,omitempty"`
	CommentCount int            `json:"comment_count,omitempty"`
	Deadline     *time.Time     `json:"deadline,omitempty"`
	Metrics      map[string]any `json:"metrics,omitempty"`

	// Derived fields, set only by the rules engine.
	Type             Type     `json:"signal_type,omitempty"`
	Urgency          Urgency  `json:"urgency,omitempty"`
	PriorityScore    float64  `json:"priority_score"`
	Industry         string   `json:"industry,omitempty"`
	WatchlistMatches []string `json:"watchlist_matches,omitempty"`
}

// StableID is the natural dedup key: "source:sourceID".
func (s *Signal) StableID() string {
	return string(s.Source) + ":" + s.SourceID
}

// WatchlistHit reports whether any watch term matched this signal.
func (s *Signal) WatchlistHit() bool {
	return len(s.WatchlistMatches) > 0
}

// IsBundle reports whether this is a synthetic aggregate of suppressed
// low-value signals.
func (s *Signal) IsBundle() bool {
	_, ok := s.MetricFloat(MetricBundledCount)
	return ok
}

// BundledCount returns the number of constituents folded into a bundle,
// or zero for ordinary signals.
func (s *Signal) BundledCount() int {
	n, _ := s.MetricFloat(MetricBundledCount)
	return int(n)
}

// DocketKey returns the correlation key for docket grouping: the portion
// of SourceID before the first "-", or the whole SourceID.
func (s *Signal) DocketKey() string {
	if i := strings.Index(s.SourceID, "-"); i > 0 {
		return s.SourceID[:i]
	}
	return s.SourceID
}

// SearchText is the lowercased text all keyword scans run against.
func (s *Signal) SearchText() string {
	return strings.ToLower(s.Title + " " + s.Summary + " " + s.Agency)
}

// MetricFloat reads a numeric metric, tolerating the value shapes that
// show up after JSON round-trips.
func (s *Signal) MetricFloat(key string) (float64, bool) {
	if s.Metrics == nil {
		return 0, false
	}
	switch v := s.Metrics[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// MetricString reads a text metric; absent or non-string values yield "".
func (s *Signal) MetricString(key string) string {
	if s.Metrics == nil {
		return ""
	}
	v, _ := s.Metrics[key].(string)
	return v
}

// SetMetric records a source-specific fact, allocating the map on first use.
func (s *Signal) SetMetric(key string, value any) {
	if s.Metrics == nil {
		s.Metrics = make(map[string]any)
	}
	s.Metrics[key] = value
}

// Normalize enforces the cross-cutting ingestion invariants every
// downstream stage depends on: all instants are UTC, a missing timestamp
// falls back to now, text fields are trimmed, and issue codes are deduped
// in their given order. Safe to call more than once.
func (s *Signal) Normalize(now time.Time) {
	now = now.UTC()

	if s.Timestamp.IsZero() {
		s.Timestamp = now
	} else {
		s.Timestamp = s.Timestamp.UTC()
	}
	if s.Deadline != nil {
		d := s.Deadline.UTC()
		s.Deadline = &d
	}

	s.Title = strings.TrimSpace(s.Title)
	s.Summary = strings.TrimSpace(s.Summary)
	s.Agency = strings.TrimSpace(s.Agency)

	if len(s.IssueCodes) > 1 {
		seen := make(map[string]bool, len(s.IssueCodes))
		codes := s.IssueCodes[:0]
		for _, c := range s.IssueCodes {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			codes = append(codes, c)
		}
		s.IssueCodes = codes
	}
}

// Age returns how old the signal is relative to now.
func (s *Signal) Age(now time.Time) time.Duration {
	return now.UTC().Sub(s.Timestamp)
}

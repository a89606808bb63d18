// Package bundle collapses clusters of near-duplicate, low-priority
// signals sharing an agency/title pattern into one synthetic aggregate,
// so a flood of routine notices occupies a single digest line.
package bundle

import (
	"fmt"
	"strings"

	"github.com/abelbrown/govlens/internal/signal"
)

// BundleScore is the fixed priority of a synthetic bundle: visible, but
// never crowding out high-value individual items.
const BundleScore = 2.0

// MinCluster is the default minimum number of same-pattern items before
// they collapse into a bundle.
const MinCluster = 2

// escalationTerms exempt an item from bundling regardless of cluster
// size; these stay individually visible.
var escalationTerms = []string{"emergency", "immediate adoption"}

// Pattern describes one bundleable cluster shape.
type Pattern struct {
	// Key names the pattern and seeds the synthetic source ID.
	Key string
	// Label is the human-readable cluster name used in the bundle title.
	Label string
	// Agency must match the signal's agency exactly.
	Agency string
	// TitlePrefix must prefix the signal's title.
	TitlePrefix string
	// LandingPage, when set, is used as the bundle's representative
	// link; otherwise the first constituent's link is used.
	LandingPage string
}

// DefaultPatterns covers the two clusters that routinely flood a daily
// window: FAA airworthiness directives and SEC self-regulatory
// organization filings.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Key:         "faa_ads",
			Label:       "FAA Airworthiness Directives",
			Agency:      "Federal Aviation Administration",
			TitlePrefix: "Airworthiness Directives;",
			LandingPage: "https://www.federalregister.gov/agencies/federal-aviation-administration",
		},
		{
			Key:         "sec_sro",
			Label:       "SEC Self-Regulatory Organization Filings",
			Agency:      "Securities and Exchange Commission",
			TitlePrefix: "Self-Regulatory Organizations;",
			LandingPage: "https://www.federalregister.gov/agencies/securities-and-exchange-commission",
		},
	}
}

// Bundler detects and collapses pattern clusters.
type Bundler struct {
	Patterns   []Pattern
	MinCluster int
	Score      float64
}

// New creates a bundler with the default patterns and thresholds.
func New() *Bundler {
	return &Bundler{
		Patterns:   DefaultPatterns(),
		MinCluster: MinCluster,
		Score:      BundleScore,
	}
}

// Apply replaces each qualifying cluster with a single synthetic bundle
// signal. Escalated items (emergency, immediate adoption) and clusters
// below the minimum size pass through untouched. Non-cluster signals keep
// their relative order; bundles are appended after them.
func (b *Bundler) Apply(signals []signal.Signal) []signal.Signal {
	clusters := make(map[string][]signal.Signal, len(b.Patterns))
	out := make([]signal.Signal, 0, len(signals))

	for _, sig := range signals {
		p, ok := b.match(&sig)
		if !ok || escalated(&sig) {
			out = append(out, sig)
			continue
		}
		clusters[p.Key] = append(clusters[p.Key], sig)
	}

	for _, p := range b.Patterns {
		members := clusters[p.Key]
		if len(members) == 0 {
			continue
		}
		if len(members) < b.MinCluster {
			out = append(out, members...)
			continue
		}
		out = append(out, b.synthesize(p, members))
	}

	return out
}

func (b *Bundler) match(sig *signal.Signal) (Pattern, bool) {
	for _, p := range b.Patterns {
		if sig.Agency == p.Agency && strings.HasPrefix(sig.Title, p.TitlePrefix) {
			return p, true
		}
	}
	return Pattern{}, false
}

// escalated reports whether an item carries an escalation keyword and
// must remain individually visible.
func escalated(sig *signal.Signal) bool {
	title := strings.ToLower(sig.Title)
	for _, term := range escalationTerms {
		if strings.Contains(title, term) {
			return true
		}
	}
	return false
}

// synthesize builds the aggregate signal for a cluster. The first
// constituent anchors source, timestamp, and industry.
func (b *Bundler) synthesize(p Pattern, members []signal.Signal) signal.Signal {
	first := members[0]

	link := p.LandingPage
	if link == "" {
		link = first.Link
	}

	bundle := signal.Signal{
		Source:        first.Source,
		SourceID:      fmt.Sprintf("%s_bundle_%d", p.Key, len(members)),
		Title:         fmt.Sprintf("%s — %d notices today", p.Label, len(members)),
		Link:          link,
		Timestamp:     first.Timestamp,
		Agency:        first.Agency,
		IssueCodes:    first.IssueCodes,
		Type:          first.Type,
		Urgency:       signal.UrgencyLow,
		Industry:      first.Industry,
		PriorityScore: b.Score,
	}
	bundle.SetMetric(signal.MetricBundledCount, len(members))
	return bundle
}

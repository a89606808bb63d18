package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abelbrown/govlens/internal/logging"
	"github.com/abelbrown/govlens/internal/rules"
	"github.com/abelbrown/govlens/internal/signal"
)

// emptyDigest is the canonical no-activity message.
const emptyDigest = "*No fresh government activity detected.*"

// Composer turns a scored signal batch into a sectioned, budgeted digest.
type Composer struct {
	opts Options
}

// NewComposer returns a Composer. Zero Now falls back to time.Now.
func NewComposer(opts Options) *Composer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Composer{opts: opts}
}

// Result carries the rendered digest plus the accounting a caller needs
// for the run record and the overflow thread.
type Result struct {
	Text          string
	SignalCount   int
	EmittedCount  int
	OverflowCount int
}

// Compose renders the digest text for a batch of scored signals.
func (c *Composer) Compose(sigs []signal.Signal) string {
	return c.ComposeResult(sigs).Text
}

type sectionSpec struct {
	header string
	cap    int
	items  []signal.Signal
	format func(*signal.Signal, time.Time) string
}

// ComposeResult renders the digest and reports item accounting. Signals
// are deduplicated first; a signal can appear in several sections but
// each appearance spends budget. Eligible items past a section cap or
// the total budget count toward overflow.
func (c *Composer) ComposeResult(sigs []signal.Signal) Result {
	now := c.opts.Now().UTC()

	sigs = rules.Dedupe(sigs)
	if len(sigs) == 0 {
		return Result{Text: emptyDigest}
	}

	sorted := make([]signal.Signal, len(sigs))
	copy(sorted, sigs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityScore > sorted[j].PriorityScore
	})

	budget := c.opts.Budget
	sections := []sectionSpec{
		{"🔔 **Watchlist Alerts**", budget.Watchlist, watchlistSignals(sorted), c.formatWatchlist},
		{"📌 **What Changed**", budget.WhatChanged, c.whatChangedSignals(sorted), c.formatWhatChanged},
		{"🏭 **Industry Snapshot**", budget.Industry, c.industrySnapshot(sorted), c.formatIndustry},
		{"⏰ **Upcoming Deadlines**", budget.Deadlines, c.deadlineSignals(sorted, now), c.formatDeadline},
		{"📈 **Docket Surges**", budget.Surges, c.docketSurges(sorted), c.formatSurge},
		{"🏛️ **Bill Actions**", budget.Bills, billActions(sorted), c.formatBill},
		{"📦 **Bundled Notices**", budget.Bundles, bundleSignals(sorted), c.formatBundle},
	}

	var (
		body      strings.Builder
		emitted   int
		overflow  int
		remaining = budget.Total
		included  = make(map[string]bool)
		eligible  = make(map[string]bool)
	)

	for _, sec := range sections {
		if sec.cap <= 0 {
			continue // disabled section, items never counted
		}
		for _, s := range sec.items {
			eligible[s.StableID()] = true
		}

		limit := sec.cap
		if limit > remaining {
			limit = remaining
		}

		count := 0
		var lines []string
		for i := range sec.items {
			if count >= limit {
				break
			}
			line, err := c.renderLine(&sec.items[i], now, sec.format)
			if err != nil {
				logging.Warn("digest line skipped", "id", sec.items[i].StableID(), "error", err)
				continue
			}
			lines = append(lines, line)
			included[sec.items[i].StableID()] = true
			count++
		}
		overflow += len(sec.items) - count

		if count > 0 {
			body.WriteString("\n" + sec.header + "\n")
			body.WriteString(strings.Join(lines, "\n"))
			body.WriteString("\n")
			emitted += count
			remaining -= count
		}
	}

	// Outlier: one last look at the highest-scoring signal the sections
	// missed. If it was eligible somewhere it has already been counted
	// as overflow, so emitting it takes that count back.
	if remaining > 0 {
		if s, ok := outlier(sorted, included); ok {
			if line, err := c.renderLine(&s, now, c.formatOutlier); err == nil {
				body.WriteString("\n💡 **Also Notable**\n")
				body.WriteString(line)
				body.WriteString("\n")
				included[s.StableID()] = true
				emitted++
				if eligible[s.StableID()] {
					overflow--
				}
			} else {
				logging.Warn("outlier line skipped", "id", s.StableID(), "error", err)
			}
		}
	}

	if emitted == 0 {
		return Result{Text: emptyDigest, SignalCount: len(sorted)}
	}

	var out strings.Builder
	out.WriteString(c.header(sorted, now))
	out.WriteString(body.String())
	out.WriteString("\n" + footer(overflow, now))

	return Result{
		Text:          out.String(),
		SignalCount:   len(sorted),
		EmittedCount:  emitted,
		OverflowCount: overflow,
	}
}

// renderLine isolates per-signal formatting so one malformed signal
// cannot take down the whole digest.
func (c *Composer) renderLine(sig *signal.Signal, now time.Time, format func(*signal.Signal, time.Time) string) (line string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("format %s: %v", sig.StableID(), r)
		}
	}()
	return format(sig, now), nil
}

func (c *Composer) header(sigs []signal.Signal, now time.Time) string {
	var bills, fr, dockets, hits int
	for _, s := range sigs {
		switch s.Source {
		case signal.SourceCongress:
			bills++
		case signal.SourceFederalRegister:
			fr++
		case signal.SourceRegulationsGov:
			dockets++
		}
		if s.WatchlistHit() {
			hits++
		}
	}

	return fmt.Sprintf("🔍 **GovLens — Daily Signals** (%s) · %dh\nBills: %d · Federal Register: %d · Dockets: %d · Watchlist hits: %d\n",
		now.Format("Jan 2"), c.opts.HoursBack, bills, fr, dockets, hits)
}

func footer(overflow int, now time.Time) string {
	updated := "Updated " + now.Format("15:04") + " UTC"
	if overflow > 0 {
		return fmt.Sprintf("_+%d more items in thread · /govlens help · %s_", overflow, updated)
	}
	return "_/govlens help · " + updated + "_"
}

// ComposeMini renders the compact alert used when the full digest is
// not warranted. Returns ok=false when nothing crosses the alert bar:
// fewer than ten signals, no watchlist hit, nothing scoring at or above
// the mini threshold, and no qualifying docket surge.
func (c *Composer) ComposeMini(sigs []signal.Signal) (string, bool) {
	sigs = rules.Dedupe(sigs)
	if len(sigs) == 0 {
		return "", false
	}

	alert := len(sigs) >= 10
	for _, s := range sigs {
		if s.WatchlistHit() || s.PriorityScore >= c.opts.MiniThreshold {
			alert = true
			break
		}
		if delta, ok := s.MetricFloat(signal.MetricCommentDelta); ok && delta >= c.opts.SurgeThresholdPct {
			alert = true
			break
		}
	}
	if !alert {
		return "", false
	}

	sorted := make([]signal.Signal, len(sigs))
	copy(sorted, sigs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityScore > sorted[j].PriorityScore
	})

	var out strings.Builder
	out.WriteString(fmt.Sprintf("⚡ **Mini Signals Alert** · %d signals\n", len(sorted)))
	top := 3
	if len(sorted) < top {
		top = len(sorted)
	}
	for i := 0; i < top; i++ {
		out.WriteString(c.formatMini(&sorted[i]))
		out.WriteString("\n")
	}
	return out.String(), true
}

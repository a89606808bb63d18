package digest

import (
	"sort"
	"time"

	"github.com/abelbrown/govlens/internal/rules"
	"github.com/abelbrown/govlens/internal/signal"
)

// Section selectors. Each returns the full eligible list for its section;
// caps and budgets are applied later by the composer. A signal may be
// eligible for more than one section.

func watchlistSignals(sigs []signal.Signal) []signal.Signal {
	var out []signal.Signal
	for _, s := range sigs {
		if s.WatchlistHit() {
			out = append(out, s)
		}
	}
	return out
}

func (c *Composer) whatChangedSignals(sigs []signal.Signal) []signal.Signal {
	var out []signal.Signal
	for _, s := range sigs {
		if !s.IsBundle() && s.PriorityScore >= c.opts.WhatChangedThreshold {
			out = append(out, s)
		}
	}
	return out
}

// industrySnapshot takes the top N signals per industry, then orders the
// combined list by score.
func (c *Composer) industrySnapshot(sigs []signal.Signal) []signal.Signal {
	perIndustry := make(map[string]int)
	var out []signal.Signal

	// sigs arrive score-descending, so a simple counting pass keeps the
	// top N of each industry.
	for _, s := range sigs {
		if s.IsBundle() {
			continue
		}
		industry := s.Industry
		if industry == "" {
			industry = rules.DefaultIndustry
		}
		if perIndustry[industry] >= c.opts.TopPerIndustry {
			continue
		}
		perIndustry[industry]++
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

func (c *Composer) deadlineSignals(sigs []signal.Signal, now time.Time) []signal.Signal {
	var out []signal.Signal
	for _, s := range sigs {
		if s.Deadline == nil {
			continue
		}
		days := daysUntil(now, *s.Deadline)
		if days >= 0 && days <= c.opts.DeadlineWindowDays {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline.Before(*out[j].Deadline)
	})
	return out
}

func (c *Composer) docketSurges(sigs []signal.Signal) []signal.Signal {
	var out []signal.Signal
	for _, s := range sigs {
		if s.Type != signal.TypeDocket {
			continue
		}
		if delta, ok := s.MetricFloat(signal.MetricCommentDelta); ok && delta >= c.opts.SurgeThresholdPct {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, _ := out[i].MetricFloat(signal.MetricCommentDelta)
		dj, _ := out[j].MetricFloat(signal.MetricCommentDelta)
		return di > dj
	})
	return out
}

// billActions emits one representative (the latest action) per bill
// group, ordered by score.
func billActions(sigs []signal.Signal) []signal.Signal {
	groups := rules.GroupByBill(sigs)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]signal.Signal, 0, len(keys))
	for _, k := range keys {
		if latest, ok := rules.Latest(groups[k]); ok {
			out = append(out, latest)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

func bundleSignals(sigs []signal.Signal) []signal.Signal {
	var out []signal.Signal
	for _, s := range sigs {
		if s.IsBundle() {
			out = append(out, s)
		}
	}
	return out
}

// outlier picks the single highest-scoring signal not already shown
// anywhere, surfacing what a pure top-K pass would miss. Bundles are
// excluded. Returns false when nothing eligible remains.
func outlier(sigs []signal.Signal, included map[string]bool) (signal.Signal, bool) {
	for _, s := range sigs {
		if s.IsBundle() || included[s.StableID()] {
			continue
		}
		return s, true // sigs are score-descending
	}
	return signal.Signal{}, false
}

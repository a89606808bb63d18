package digest

import "time"

// Budget caps how many items each section may emit, plus a ceiling for
// the digest as a whole. Items past a cap are counted as overflow, never
// silently dropped. A cap of zero disables its section.
type Budget struct {
	Total       int
	Watchlist   int
	WhatChanged int
	Industry    int
	Deadlines   int
	Surges      int
	Bills       int
	Bundles     int
}

// DefaultBudget mirrors what fits comfortably on a phone screen.
func DefaultBudget() Budget {
	return Budget{
		Total:       30,
		Watchlist:   5,
		WhatChanged: 7,
		Industry:    12,
		Deadlines:   5,
		Surges:      3,
		Bills:       5,
		Bundles:     3,
	}
}

// Options configures one digest run.
type Options struct {
	// HoursBack is the collection window, used only for header text.
	HoursBack int

	Budget Budget

	// WhatChangedThreshold is the minimum score for the What Changed
	// section.
	WhatChangedThreshold float64

	// SurgeThresholdPct is the 24h comment delta that qualifies a
	// docket for the surge section.
	SurgeThresholdPct float64

	// MiniThreshold is the score floor for the mini digest.
	MiniThreshold float64

	// TopPerIndustry bounds how many signals one industry contributes
	// to the snapshot section.
	TopPerIndustry int

	// DeadlineWindowDays bounds the Deadlines section lookahead.
	DeadlineWindowDays int

	// TitleLimit and SummaryLimit are display-width caps for mobile
	// rendering.
	TitleLimit   int
	SummaryLimit int

	// Now is injectable for tests.
	Now func() time.Time
}

// DefaultOptions returns the deployment defaults.
func DefaultOptions() Options {
	return Options{
		HoursBack:            24,
		Budget:               DefaultBudget(),
		WhatChangedThreshold: 3.0,
		SurgeThresholdPct:    200,
		MiniThreshold:        5.0,
		TopPerIndustry:       2,
		DeadlineWindowDays:   7,
		TitleLimit:           60,
		SummaryLimit:         160,
		Now:                  time.Now,
	}
}

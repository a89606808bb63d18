package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/govlens/internal/bundle"
	"github.com/abelbrown/govlens/internal/collect"
	"github.com/abelbrown/govlens/internal/config"
	"github.com/abelbrown/govlens/internal/digest"
	"github.com/abelbrown/govlens/internal/rules"
	"github.com/abelbrown/govlens/internal/signal"
	"github.com/abelbrown/govlens/internal/store"
)

// loadConfig loads the config or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openDB opens the store or exits, creating the data directory first.
func openDB(cfg *config.Config) *store.Store {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create data directory: %v\n", err)
		os.Exit(1)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open database: %v\n", err)
		os.Exit(1)
	}
	return st
}

// buildManager assembles collectors from the configured feed sources.
func buildManager(cfg *config.Config) (*collect.Manager, error) {
	sources, err := config.LoadFeedSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	var collectors []collect.Collector
	for _, src := range sources {
		switch signal.Source(src.Source) {
		case signal.SourceFederalRegister:
			url := src.URL
			if cfg.Sources.FederalRegisterURL != "" {
				url = cfg.Sources.FederalRegisterURL
			}
			collectors = append(collectors, collect.NewFederalRegister(url))
		case signal.SourceCongress:
			url := src.URL
			if cfg.Sources.CongressScheduleURL != "" {
				url = cfg.Sources.CongressScheduleURL
			}
			collectors = append(collectors, collect.NewCongress(url))
		case signal.SourceRegulationsGov:
			if cfg.Sources.RegulationsGovAPIKey == "" {
				continue // collector is useless without a key
			}
			collectors = append(collectors, collect.NewRegulationsGov(cfg.Sources.RegulationsGovAPIKey))
		}
	}
	if len(collectors) == 0 {
		return nil, fmt.Errorf("no collectors configured")
	}
	return collect.NewManager(collectors...), nil
}

// digestOptions maps config onto composer options.
func digestOptions(cfg *config.Config, hoursBack int) digest.Options {
	opts := digest.DefaultOptions()
	opts.HoursBack = hoursBack
	opts.Budget = digest.Budget{
		Total:       cfg.Digest.TotalBudget,
		Watchlist:   cfg.Digest.WatchlistCap,
		WhatChanged: cfg.Digest.WhatChangedCap,
		Industry:    cfg.Digest.IndustryCap,
		Deadlines:   cfg.Digest.DeadlinesCap,
		Surges:      cfg.Digest.SurgesCap,
		Bills:       cfg.Digest.BillsCap,
		Bundles:     cfg.Digest.BundlesCap,
	}
	opts.WhatChangedThreshold = cfg.Digest.WhatChangedThreshold
	opts.SurgeThresholdPct = cfg.Digest.SurgeThresholdPct
	opts.MiniThreshold = cfg.Digest.MiniThreshold
	opts.TopPerIndustry = cfg.Digest.TopPerIndustry
	opts.DeadlineWindowDays = cfg.Digest.DeadlineWindowDays
	opts.TitleLimit = cfg.Digest.TitleLimit
	opts.SummaryLimit = cfg.Digest.SummaryLimit
	return opts
}

// composeFromStore runs the scoring pipeline over stored signals and
// composes the digest.
func composeFromStore(cfg *config.Config, st *store.Store, hoursBack int) (digest.Result, error) {
	since := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)
	sigs, err := st.ListSince(since)
	if err != nil {
		return digest.Result{}, fmt.Errorf("list signals: %w", err)
	}

	engine := rules.NewEngine(cfg.Watchlist)
	sigs = engine.ProcessAll(sigs)
	sigs = bundle.New().Apply(sigs)

	composer := digest.NewComposer(digestOptions(cfg, hoursBack))
	return composer.ComposeResult(sigs), nil
}

// composeMiniFromStore is the mini-alert variant of composeFromStore.
// ok is false when nothing crosses the alert thresholds.
func composeMiniFromStore(cfg *config.Config, st *store.Store, hoursBack int) (string, bool) {
	since := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)
	sigs, err := st.ListSince(since)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: list signals: %v\n", err)
		os.Exit(1)
	}

	engine := rules.NewEngine(cfg.Watchlist)
	sigs = engine.ProcessAll(sigs)

	composer := digest.NewComposer(digestOptions(cfg, hoursBack))
	return composer.ComposeMini(sigs)
}

// Package config holds the persistent govlens configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration.
type Config struct {
	// Watchlist terms matched case-insensitively against signal text.
	Watchlist []string `json:"watchlist"`

	// HoursBack is the default digest collection window.
	HoursBack int `json:"hours_back"`

	// Digest tuning.
	Digest DigestConfig `json:"digest"`

	// Upstream source settings.
	Sources SourcesConfig `json:"sources"`

	// Delivery settings.
	Slack SlackConfig `json:"slack"`

	// DBPath is the SQLite database location.
	DBPath string `json:"db_path"`

	// SourcesFile points at the YAML feed list; empty uses built-in
	// sources.
	SourcesFile string `json:"sources_file,omitempty"`
}

// DigestConfig holds section caps and score thresholds.
type DigestConfig struct {
	TotalBudget          int     `json:"total_budget"`
	WatchlistCap         int     `json:"watchlist_cap"`
	WhatChangedCap       int     `json:"what_changed_cap"`
	IndustryCap          int     `json:"industry_cap"`
	DeadlinesCap         int     `json:"deadlines_cap"`
	SurgesCap            int     `json:"surges_cap"`
	BillsCap             int     `json:"bills_cap"`
	BundlesCap           int     `json:"bundles_cap"`
	WhatChangedThreshold float64 `json:"what_changed_threshold"`
	SurgeThresholdPct    float64 `json:"surge_threshold_pct"`
	MiniThreshold        float64 `json:"mini_threshold"`
	TopPerIndustry       int     `json:"top_per_industry"`
	DeadlineWindowDays   int     `json:"deadline_window_days"`
	TitleLimit           int     `json:"title_limit"`
	SummaryLimit         int     `json:"summary_limit"`
}

// SourcesConfig holds per-source collector settings.
type SourcesConfig struct {
	FederalRegisterURL   string `json:"federal_register_url,omitempty"`
	CongressScheduleURL  string `json:"congress_schedule_url,omitempty"`
	RegulationsGovAPIKey string `json:"regulations_gov_api_key,omitempty"`
}

// SlackConfig holds delivery settings.
type SlackConfig struct {
	WebhookURL string `json:"webhook_url,omitempty"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Watchlist: []string{},
		HoursBack: 24,
		Digest: DigestConfig{
			TotalBudget:          30,
			WatchlistCap:         5,
			WhatChangedCap:       7,
			IndustryCap:          12,
			DeadlinesCap:         5,
			SurgesCap:            3,
			BillsCap:             5,
			BundlesCap:           3,
			WhatChangedThreshold: 3.0,
			SurgeThresholdPct:    200,
			MiniThreshold:        5.0,
			TopPerIndustry:       2,
			DeadlineWindowDays:   7,
			TitleLimit:           60,
			SummaryLimit:         160,
		},
		DBPath: filepath.Join(home, ".govlens", "govlens.db"),
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".govlens", "config.json")
}

// Load reads config from disk, or returns defaults when no file exists.
// Environment variables override secrets either way.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Restrictive permissions: the file can hold an API key and a
	// webhook URL.
	return os.WriteFile(path, data, 0600)
}

// applyEnv fills secrets from environment variables, which win over
// the file.
func (c *Config) applyEnv() {
	if key := os.Getenv("REGULATIONS_GOV_API_KEY"); key != "" {
		c.Sources.RegulationsGovAPIKey = key
	}
	if url := os.Getenv("GOVLENS_SLACK_WEBHOOK"); url != "" {
		c.Slack.WebhookURL = url
	}
	if path := os.Getenv("GOVLENS_DB"); path != "" {
		c.DBPath = path
	}
}

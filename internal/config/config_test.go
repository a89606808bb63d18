package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HoursBack != 24 {
		t.Errorf("HoursBack = %d", cfg.HoursBack)
	}
	if cfg.Digest.TotalBudget != 30 {
		t.Errorf("TotalBudget = %d", cfg.Digest.TotalBudget)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Watchlist = []string{"FDA", "section 230"}
	cfg.Digest.WatchlistCap = 9
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if len(got.Watchlist) != 2 || got.Watchlist[0] != "FDA" {
		t.Errorf("Watchlist = %v", got.Watchlist)
	}
	if got.Digest.WatchlistCap != 9 {
		t.Errorf("WatchlistCap = %d", got.Digest.WatchlistCap)
	}
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("REGULATIONS_GOV_API_KEY", "env-key")
	t.Setenv("GOVLENS_SLACK_WEBHOOK", "https://hooks.example/env")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Sources.RegulationsGovAPIKey != "env-key" {
		t.Errorf("api key = %q", cfg.Sources.RegulationsGovAPIKey)
	}
	if cfg.Slack.WebhookURL != "https://hooks.example/env" {
		t.Errorf("webhook = %q", cfg.Slack.WebhookURL)
	}
}

func TestLoadFeedSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	yaml := `sources:
  - name: FR Documents
    source: federal_register
    url: https://www.federalregister.gov/documents/current.rss
  - name: Old Feed
    source: congress
    disabled: true
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	sources, err := LoadFeedSources(path)
	if err != nil {
		t.Fatalf("LoadFeedSources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected disabled entry dropped, got %d sources", len(sources))
	}
	if sources[0].Source != "federal_register" {
		t.Errorf("source = %s", sources[0].Source)
	}
}

func TestLoadFeedSourcesMissingFileUsesDefaults(t *testing.T) {
	sources, err := LoadFeedSources(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFeedSources: %v", err)
	}
	if len(sources) != len(DefaultFeedSources) {
		t.Errorf("expected built-in sources, got %d", len(sources))
	}
}

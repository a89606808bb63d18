package signal

import (
	"testing"
	"time"
)

func TestNormalizeCoercesToUTC(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	deadline := time.Date(2026, 3, 15, 10, 0, 0, 0, loc)

	sig := Signal{
		Source:    SourceFederalRegister,
		SourceID:  "2026-01234",
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, loc),
		Deadline:  &deadline,
	}
	sig.Normalize(time.Now())

	if sig.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp not UTC after Normalize: %v", sig.Timestamp.Location())
	}
	if sig.Deadline.Location() != time.UTC {
		t.Errorf("deadline not UTC after Normalize: %v", sig.Deadline.Location())
	}
	// Same instant, different wall clock
	if !sig.Deadline.Equal(deadline) {
		t.Errorf("normalize changed the deadline instant: %v vs %v", sig.Deadline, deadline)
	}
}

func TestNormalizeZeroTimestampFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	sig := Signal{Source: SourceCongress, SourceID: "hr1234-5"}
	sig.Normalize(now)

	if !sig.Timestamp.Equal(now) {
		t.Errorf("expected zero timestamp to become now, got %v", sig.Timestamp)
	}
}

func TestNormalizeDedupesIssueCodes(t *testing.T) {
	sig := Signal{IssueCodes: []string{"HCR", "TEC", "HCR", "", "ENE", "TEC"}}
	sig.Normalize(time.Now())

	want := []string{"HCR", "TEC", "ENE"}
	if len(sig.IssueCodes) != len(want) {
		t.Fatalf("expected %d codes, got %d: %v", len(want), len(sig.IssueCodes), sig.IssueCodes)
	}
	for i, c := range want {
		if sig.IssueCodes[i] != c {
			t.Errorf("code %d: expected %q, got %q", i, c, sig.IssueCodes[i])
		}
	}
}

func TestStableID(t *testing.T) {
	sig := Signal{Source: SourceRegulationsGov, SourceID: "EPA-HQ-2026-0001-0042"}
	if sig.StableID() != "regulations_gov:EPA-HQ-2026-0001-0042" {
		t.Errorf("unexpected stable ID: %s", sig.StableID())
	}
}

func TestDocketKey(t *testing.T) {
	sig := Signal{SourceID: "EPA-HQ-2026-0001-0042"}
	if sig.DocketKey() != "EPA" {
		t.Errorf("expected docket key 'EPA', got %q", sig.DocketKey())
	}

	noSep := Signal{SourceID: "EPAHQ20260001"}
	if noSep.DocketKey() != "EPAHQ20260001" {
		t.Errorf("expected whole source ID without separator, got %q", noSep.DocketKey())
	}
}

func TestMetricFloatShapes(t *testing.T) {
	sig := Signal{}
	sig.SetMetric("a", 250.0)
	sig.SetMetric("b", 250)
	sig.SetMetric("c", "not a number")

	if v, ok := sig.MetricFloat("a"); !ok || v != 250.0 {
		t.Errorf("float64 metric: got %v, %v", v, ok)
	}
	if v, ok := sig.MetricFloat("b"); !ok || v != 250.0 {
		t.Errorf("int metric: got %v, %v", v, ok)
	}
	if _, ok := sig.MetricFloat("c"); ok {
		t.Error("string metric should not read as float")
	}
	if _, ok := sig.MetricFloat("missing"); ok {
		t.Error("missing metric should not read as float")
	}
}

func TestIsBundle(t *testing.T) {
	sig := Signal{}
	if sig.IsBundle() {
		t.Error("plain signal should not be a bundle")
	}
	sig.SetMetric(MetricBundledCount, 5)
	if !sig.IsBundle() {
		t.Error("signal with bundled_count should be a bundle")
	}
	if sig.BundledCount() != 5 {
		t.Errorf("expected bundled count 5, got %d", sig.BundledCount())
	}
}

func TestUrgencyRankOrdering(t *testing.T) {
	tiers := []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Rank() <= tiers[i-1].Rank() {
			t.Errorf("%s should rank above %s", tiers[i], tiers[i-1])
		}
	}
}

func TestUrgencyDisplay(t *testing.T) {
	if UrgencyCritical.Display() != "Critical" {
		t.Errorf("expected 'Critical', got %q", UrgencyCritical.Display())
	}
	var empty Urgency
	if empty.Display() != "Medium" {
		t.Errorf("empty urgency should display as 'Medium', got %q", empty.Display())
	}
}

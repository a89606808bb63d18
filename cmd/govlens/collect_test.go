package main

import (
	"testing"

	"github.com/abelbrown/govlens/internal/signal"
)

type fakeCounter map[string]int

func (f fakeCounter) CommentCount(stableID string) (int, bool, error) {
	n, ok := f[stableID]
	return n, ok, nil
}

func TestApplyCommentDeltas(t *testing.T) {
	sigs := []signal.Signal{
		{Source: signal.SourceRegulationsGov, SourceID: "EPA-1-0001", CommentCount: 300},
		{Source: signal.SourceRegulationsGov, SourceID: "EPA-2-0001", CommentCount: 100},
		{Source: signal.SourceRegulationsGov, SourceID: "EPA-3-0001", CommentCount: 50},
		{Source: signal.SourceFederalRegister, SourceID: "2026-1", CommentCount: 300},
	}
	prev := fakeCounter{
		"regulations_gov:EPA-1-0001": 100, // tripled: +200%
		"regulations_gov:EPA-2-0001": 100, // unchanged
	}

	applyCommentDeltas(prev, sigs)

	delta, ok := sigs[0].MetricFloat(signal.MetricCommentDelta)
	if !ok || delta != 200 {
		t.Errorf("delta = %f ok=%v, want 200", delta, ok)
	}
	abs, _ := sigs[0].MetricFloat("comments_24h_delta")
	if abs != 200 {
		t.Errorf("absolute delta = %f, want 200", abs)
	}

	if _, ok := sigs[1].MetricFloat(signal.MetricCommentDelta); ok {
		t.Error("unchanged count should not record a delta")
	}
	if _, ok := sigs[2].MetricFloat(signal.MetricCommentDelta); ok {
		t.Error("first sighting should not record a delta")
	}
	if _, ok := sigs[3].MetricFloat(signal.MetricCommentDelta); ok {
		t.Error("non-docket sources should be skipped")
	}
}

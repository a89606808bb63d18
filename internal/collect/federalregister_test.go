package collect

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/govlens/internal/signal"
)

func TestConvertFeedEntry(t *testing.T) {
	published := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	entry := &gofeed.Item{
		Title:           "Medicare Program; Final Rule on Payment Policies",
		Description:     "This final rule updates payment policies. Comments must be received by September 15, 2026.",
		Link:            "https://www.federalregister.gov/documents/2026/08/24/2026-18234/medicare-program",
		Categories:      []string{"Centers for Medicare & Medicaid Services", "Rule"},
		PublishedParsed: &published,
	}

	sig := convertFeedEntry(entry)
	if sig.Source != signal.SourceFederalRegister {
		t.Errorf("source = %s", sig.Source)
	}
	if sig.SourceID != "2026-18234" {
		t.Errorf("SourceID = %s, want document number from link", sig.SourceID)
	}
	if sig.Agency != "Centers for Medicare & Medicaid Services" {
		t.Errorf("Agency = %s", sig.Agency)
	}
	if !sig.Timestamp.Equal(published) {
		t.Errorf("Timestamp = %v", sig.Timestamp)
	}
	if got := sig.MetricString("document_type"); got != "Rule" {
		t.Errorf("document_type = %q", got)
	}
	if sig.Deadline == nil {
		t.Fatal("expected deadline parsed from summary")
	}
	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if !sig.Deadline.Equal(want) {
		t.Errorf("Deadline = %v, want %v", sig.Deadline, want)
	}
}

func TestFeedEntryIDFallsBackToGUID(t *testing.T) {
	entry := &gofeed.Item{
		Link: "https://example.gov/no-doc-number",
		GUID: "guid-123",
	}
	if got := feedEntryID(entry); got != "guid-123" {
		t.Errorf("id = %q, want GUID fallback", got)
	}
}

func TestDocumentTypeFromTitle(t *testing.T) {
	entry := &gofeed.Item{Title: "Air Quality Standards; Proposed Rule"}
	if got := documentType(entry); got != "Proposed Rule" {
		t.Errorf("documentType = %q", got)
	}
}

func TestCommentDeadlineVariants(t *testing.T) {
	cases := []struct {
		summary string
		want    bool
	}{
		{"Comments must be received by March 15, 2026.", true},
		{"Comments are due on or before March 15, 2026.", true},
		{"No comment period applies.", false},
	}
	for _, tc := range cases {
		if _, ok := commentDeadline(tc.summary); ok != tc.want {
			t.Errorf("commentDeadline(%q) ok = %v, want %v", tc.summary, ok, tc.want)
		}
	}
}

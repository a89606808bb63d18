package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

func TestConvertDocketDocument(t *testing.T) {
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	var doc docketDocument
	doc.ID = "EPA-HQ-OAR-2026-0317-0001"
	doc.Attributes.Title = "National Emission Standards Review"
	doc.Attributes.DocketID = "EPA-HQ-OAR-2026-0317"
	doc.Attributes.AgencyID = "EPA"
	doc.Attributes.DocumentType = "Proposed Rule"
	doc.Attributes.PostedDate = time.Date(2026, 8, 23, 14, 0, 0, 0, time.UTC)
	doc.Attributes.CommentEndDate = &end
	doc.Attributes.CommentCount = 412

	sig := convertDocketDocument(doc)
	if sig.Source != signal.SourceRegulationsGov {
		t.Errorf("source = %s", sig.Source)
	}
	if sig.SourceID != doc.ID {
		t.Errorf("SourceID = %s", sig.SourceID)
	}
	if sig.Link != "https://www.regulations.gov/document/EPA-HQ-OAR-2026-0317-0001" {
		t.Errorf("Link = %s", sig.Link)
	}
	if sig.CommentCount != 412 {
		t.Errorf("CommentCount = %d", sig.CommentCount)
	}
	if sig.Deadline == nil || !sig.Deadline.Equal(end) {
		t.Errorf("Deadline = %v", sig.Deadline)
	}
	if got := sig.MetricString("document_type"); got != "Proposed Rule" {
		t.Errorf("document_type = %q", got)
	}
}

func TestRegulationsGovCollect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing API key header")
		}
		if r.URL.Query().Get("sort") != "-postedDate" {
			t.Errorf("sort param = %q", r.URL.Query().Get("sort"))
		}

		var body documentsResponse
		var doc docketDocument
		doc.ID = "FDA-2026-N-1234-0002"
		doc.Attributes.Title = "Draft Guidance Availability"
		doc.Attributes.AgencyID = "FDA"
		doc.Attributes.PostedDate = time.Now().UTC()
		body.Data = append(body.Data, doc, docketDocument{}) // titleless record is dropped

		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewRegulationsGov("test-key")
	c.base = srv.URL

	sigs, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(sigs) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(sigs))
	}
	if sigs[0].SourceID != "FDA-2026-N-1234-0002" {
		t.Errorf("SourceID = %s", sigs[0].SourceID)
	}
}

func TestManagerIsolatesFailures(t *testing.T) {
	good := &stubCollector{name: "good", sigs: []signal.Signal{{
		Source:   signal.SourceCongress,
		SourceID: "a",
		Title:    "ok",
	}}}
	bad := &stubCollector{name: "bad", err: context.DeadlineExceeded}

	m := NewManager(bad, good)
	sigs := m.CollectAll(context.Background())
	if len(sigs) != 1 {
		t.Fatalf("expected the good collector's signal, got %d", len(sigs))
	}
	if sigs[0].Timestamp.IsZero() {
		t.Error("manager should normalize signals on ingest")
	}
}

type stubCollector struct {
	name string
	sigs []signal.Signal
	err  error
}

func (s *stubCollector) Name() string          { return s.name }
func (s *stubCollector) Source() signal.Source { return signal.SourceCongress }
func (s *stubCollector) Collect(ctx context.Context) ([]signal.Signal, error) {
	return s.sigs, s.err
}

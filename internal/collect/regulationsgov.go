package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

// regulationsAPIBase is the api.data.gov endpoint for regulations.gov v4.
const regulationsAPIBase = "https://api.regulations.gov/v4"

// docketDocument is one document record in the v4 API response.
type docketDocument struct {
	ID         string `json:"id"`
	Attributes struct {
		Title          string     `json:"title"`
		DocketID       string     `json:"docketId"`
		AgencyID       string     `json:"agencyId"`
		DocumentType   string     `json:"documentType"`
		PostedDate     time.Time  `json:"postedDate"`
		CommentEndDate *time.Time `json:"commentEndDate"`
		CommentCount   int        `json:"commentCount"`
		Summary        string     `json:"highlightedContent"`
	} `json:"attributes"`
}

type documentsResponse struct {
	Data []docketDocument `json:"data"`
}

// RegulationsGov collects recently posted docket documents from the
// regulations.gov v4 API.
type RegulationsGov struct {
	base   string
	apiKey string
	client *http.Client
	now    func() time.Time
}

// NewRegulationsGov creates the collector. An api.data.gov key is
// required; the DEMO_KEY tier works for light use.
func NewRegulationsGov(apiKey string) *RegulationsGov {
	return &RegulationsGov{
		base:   regulationsAPIBase,
		apiKey: apiKey,
		client: &http.Client{Timeout: collectTimeout},
		now:    time.Now,
	}
}

func (r *RegulationsGov) Name() string { return "regulations-gov" }

func (r *RegulationsGov) Source() signal.Source { return signal.SourceRegulationsGov }

func (r *RegulationsGov) Collect(ctx context.Context) ([]signal.Signal, error) {
	since := r.now().UTC().Add(-24 * time.Hour)

	q := url.Values{}
	q.Set("filter[postedDate][ge]", since.Format("2006-01-02"))
	q.Set("sort", "-postedDate")
	q.Set("page[size]", "100")
	endpoint := fmt.Sprintf("%s/documents?%s", r.base, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("regulations.gov API error: %d", resp.StatusCode)
	}

	var body documentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode documents response: %w", err)
	}

	sigs := make([]signal.Signal, 0, len(body.Data))
	for _, doc := range body.Data {
		if doc.Attributes.Title == "" {
			continue
		}
		sigs = append(sigs, convertDocketDocument(doc))
	}
	return sigs, nil
}

// convertDocketDocument maps one API document to a signal. Document IDs
// embed the docket ID, so DocketKey-based grouping works off SourceID
// directly.
func convertDocketDocument(doc docketDocument) signal.Signal {
	a := doc.Attributes

	sig := signal.Signal{
		Source:       signal.SourceRegulationsGov,
		SourceID:     doc.ID,
		Title:        a.Title,
		Summary:      a.Summary,
		Link:         "https://www.regulations.gov/document/" + doc.ID,
		Timestamp:    a.PostedDate,
		Agency:       a.AgencyID,
		DocketID:     a.DocketID,
		CommentCount: a.CommentCount,
		Deadline:     a.CommentEndDate,
	}
	if a.DocumentType != "" {
		sig.SetMetric("document_type", a.DocumentType)
	}
	return sig
}

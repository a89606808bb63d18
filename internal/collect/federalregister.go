package collect

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/govlens/internal/signal"
)

// defaultFederalRegisterURL is the documents-of-the-day feed.
const defaultFederalRegisterURL = "https://www.federalregister.gov/documents/current.rss"

// frDocNumber pulls the document number out of a federalregister.gov URL,
// e.g. .../2026-12345/some-title -> 2026-12345.
var frDocNumber = regexp.MustCompile(`/(\d{4}-\d+)(?:/|$)`)

// FederalRegister collects daily documents from the Federal Register
// RSS feed.
type FederalRegister struct {
	url    string
	client *http.Client
	parser *gofeed.Parser
}

// NewFederalRegister creates the collector. An empty url selects the
// documents-of-the-day feed.
func NewFederalRegister(url string) *FederalRegister {
	if url == "" {
		url = defaultFederalRegisterURL
	}
	return &FederalRegister{
		url:    url,
		client: &http.Client{Timeout: collectTimeout},
		parser: gofeed.NewParser(),
	}
}

func (f *FederalRegister) Name() string { return "federal-register" }

func (f *FederalRegister) Source() signal.Source { return signal.SourceFederalRegister }

func (f *FederalRegister) Collect(ctx context.Context) ([]signal.Signal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("federal register feed error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	sigs := make([]signal.Signal, 0, len(feed.Items))
	for _, entry := range feed.Items {
		sigs = append(sigs, convertFeedEntry(entry))
	}
	return sigs, nil
}

// convertFeedEntry maps one feed entry to a signal. Exposed to tests
// through the package boundary only.
func convertFeedEntry(entry *gofeed.Item) signal.Signal {
	sig := signal.Signal{
		Source:   signal.SourceFederalRegister,
		SourceID: feedEntryID(entry),
		Title:    entry.Title,
		Summary:  entry.Description,
		Link:     entry.Link,
	}

	if entry.PublishedParsed != nil {
		sig.Timestamp = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		sig.Timestamp = *entry.UpdatedParsed
	}

	// The FR feed carries the issuing agency as the first category.
	if len(entry.Categories) > 0 {
		sig.Agency = entry.Categories[0]
	} else if entry.Author != nil {
		sig.Agency = entry.Author.Name
	}

	if docType := documentType(entry); docType != "" {
		sig.SetMetric("document_type", docType)
	}
	if deadline, ok := commentDeadline(entry.Description); ok {
		sig.Deadline = &deadline
	}
	return sig
}

// feedEntryID prefers the FR document number embedded in the link and
// falls back to the feed GUID.
func feedEntryID(entry *gofeed.Item) string {
	if m := frDocNumber.FindStringSubmatch(entry.Link); m != nil {
		return m[1]
	}
	if entry.GUID != "" {
		return entry.GUID
	}
	return entry.Link
}

// documentType derives the FR document type from categories or, failing
// that, from the title text.
func documentType(entry *gofeed.Item) string {
	for _, c := range entry.Categories {
		switch strings.ToLower(c) {
		case "rule", "final rule":
			return "Rule"
		case "proposed rule":
			return "Proposed Rule"
		case "notice":
			return "Notice"
		case "presidential document":
			return "Presidential Document"
		}
	}

	title := strings.ToLower(entry.Title)
	switch {
	case strings.Contains(title, "proposed rule"):
		return "Proposed Rule"
	case strings.Contains(title, "final rule"):
		return "Rule"
	case strings.Contains(title, "notice"):
		return "Notice"
	}
	return ""
}

// commentDeadlinePattern matches the boilerplate FR summaries use for
// comment periods, e.g. "Comments must be received by March 15, 2026".
var commentDeadlinePattern = regexp.MustCompile(
	`[Cc]omments? (?:must be received|are due)(?: on or)? (?:by|before) (\w+ \d{1,2}, \d{4})`)

func commentDeadline(summary string) (time.Time, bool) {
	m := commentDeadlinePattern.FindStringSubmatch(summary)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("January 2, 2006", m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

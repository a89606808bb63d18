package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/abelbrown/govlens/internal/signal"
)

// defaultCongressURL is the public committee schedule page.
const defaultCongressURL = "https://www.congress.gov/committee-schedule"

// scheduleTimeLayout matches the schedule page's event timestamps,
// e.g. "08/26/2026 10:00 AM".
const scheduleTimeLayout = "01/02/2006 3:04 PM"

// Congress collects upcoming committee hearings and markups by scraping
// the committee schedule page. There is no feed or public API for the
// schedule, so HTML is what we get.
type Congress struct {
	url    string
	client *http.Client
}

// NewCongress creates the collector. An empty url selects the public
// schedule page.
func NewCongress(url string) *Congress {
	if url == "" {
		url = defaultCongressURL
	}
	return &Congress{
		url:    url,
		client: &http.Client{Timeout: collectTimeout},
	}
}

func (c *Congress) Name() string { return "congress" }

func (c *Congress) Source() signal.Source { return signal.SourceCongress }

func (c *Congress) Collect(ctx context.Context) ([]signal.Signal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("congress schedule error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule page: %w", err)
	}
	return parseSchedule(doc), nil
}

// parseSchedule walks the schedule page's event list. Events without a
// title are dropped; everything else degrades gracefully when fields
// are missing.
func parseSchedule(doc *goquery.Document) []signal.Signal {
	var sigs []signal.Signal

	doc.Find("div.committee-schedule-event").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(".event-title").Text())
		if title == "" {
			return
		}

		committee := strings.TrimSpace(sel.Find(".committee-name").Text())
		link, _ := sel.Find("a.event-link").Attr("href")
		if link != "" && strings.HasPrefix(link, "/") {
			link = "https://www.congress.gov" + link
		}

		id, ok := sel.Attr("data-event-id")
		if !ok || id == "" {
			id = fmt.Sprintf("schedule-%d", i)
		}

		sig := signal.Signal{
			Source:   signal.SourceCongress,
			SourceID: id,
			Title:    title,
			Summary:  strings.TrimSpace(sel.Find(".event-description").Text()),
			Link:     link,
			Agency:   committee,
		}

		kind := strings.ToLower(sel.Find(".event-type").Text())
		switch {
		case strings.Contains(kind, "markup"):
			sig.ActionType = "markup_scheduled"
			if !strings.Contains(strings.ToLower(title), "markup") {
				sig.Title = "Markup: " + title
			}
		case strings.Contains(kind, "hearing"):
			sig.ActionType = "hearing_scheduled"
		}

		when := strings.TrimSpace(sel.Find(".event-time").Text())
		if t, err := time.Parse(scheduleTimeLayout, when); err == nil {
			utc := t.UTC()
			sig.Timestamp = utc
			// The event date doubles as the deadline so the scheduled
			// slot shows up in the deadlines section.
			sig.Deadline = &utc
		}

		if bill := strings.TrimSpace(sel.Find(".event-bill").Text()); bill != "" {
			sig.BillID = normalizeBillID(bill)
		}

		sigs = append(sigs, sig)
	})

	return sigs
}

// normalizeBillID canonicalizes bill references like "H.R. 1234" to
// "hr1234" so actions on the same bill group together.
func normalizeBillID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// Package notify delivers composed digests to Slack via an incoming
// webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/abelbrown/govlens/internal/logging"
)

// retryDelay is the pause before the single 5xx retry. Variable so
// tests can shorten it.
var retryDelay = 2 * time.Second

// Slack posts digest text to an incoming webhook URL.
type Slack struct {
	webhookURL string
	client     *http.Client
}

// NewSlack creates a Slack notifier for the given webhook URL.
func NewSlack(webhookURL string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts one message. Transport failures and server errors get a
// single retry; a 4xx does not, since resending the same payload cannot
// help.
func (s *Slack) Send(ctx context.Context, text string) error {
	if s.webhookURL == "" {
		return fmt.Errorf("no webhook URL configured")
	}

	status, err := s.post(ctx, text)
	switch {
	case err == nil && status < 400:
		return nil
	case err == nil && status < 500:
		return fmt.Errorf("webhook rejected message: %d", status)
	case err == nil:
		err = fmt.Errorf("webhook returned %d", status)
	}

	logging.Warn("slack send failed, retrying once", "error", err)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(retryDelay):
	}

	status, err = s.post(ctx, text)
	switch {
	case err != nil:
		return fmt.Errorf("slack send failed after retry: %w", err)
	case status >= 400:
		return fmt.Errorf("slack send failed after retry: webhook returned %d", status)
	}
	return nil
}

// post performs one webhook request. The error covers marshal and
// transport failures only; HTTP status handling is the caller's.
func (s *Slack) post(ctx context.Context, text string) (int, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

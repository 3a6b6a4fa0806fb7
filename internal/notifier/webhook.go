package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// OKSentinel is the only response body the settings-save flow accepts as
// proof of delivery. Order-update deliveries only require a non-empty body.
const OKSentinel = "OK"

// WebhookSink posts JSON payloads to the external webhook endpoint.
// Deliver returns the response body, or an empty string when the payload
// did not arrive; callers must treat empty as "not delivered".
type WebhookSink struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// NewWebhookSink builds a sink for the configured endpoint.
func NewWebhookSink(endpoint string, timeout time.Duration, logger *slog.Logger) *WebhookSink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookSink{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// Deliver posts the payload. No retries: a missed delivery is accepted
// rather than risking a duplicate notification on the next poll.
func (s *WebhookSink) Deliver(ctx context.Context, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("webhook: read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("webhook: status %d", resp.StatusCode)
	}
	return string(respBody), nil
}

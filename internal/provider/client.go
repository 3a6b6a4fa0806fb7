// Package provider fetches the user's order list from the delivery
// provider over plain HTTP using the harvested session cookie.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/DiabolusGX/snack-track/internal/order"
)

var (
	// ErrUnauthenticated covers an expired session. The provider answers an
	// invalid cookie with an empty order list rather than a 401, so an
	// empty first page is reported the same way.
	ErrUnauthenticated = errors.New("provider: unauthenticated or no orders")
	// ErrUnavailable covers transport failures and server errors.
	ErrUnavailable = errors.New("provider: unavailable")
)

// ordersPath lists the user's orders; pagination is fixed at the first
// page, which always carries the in-flight orders.
const ordersPath = "/webroutes/user/orders?page=1"

// Config holds provider connection settings.
type Config struct {
	BaseURL    string
	Cookie     string
	Timeout    time.Duration
	MaxRetries uint64
}

// Client is an HTTP client for the provider's order-listing endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	maxRetries uint64
	logger     *slog.Logger
}

// NewClient builds a provider client. Transient transport failures are
// retried with capped exponential backoff before a fetch is declared
// failed.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 2
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		cookie:     cfg.Cookie,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// FetchOrders returns the normalized current order list. An empty list is
// ErrUnauthenticated: the original extension used exactly this signal to
// prompt a re-login, which also misfires for an account with no order
// history at all (preserved behavior, see DESIGN.md).
func (c *Client) FetchOrders(ctx context.Context) ([]order.Order, error) {
	var payload ordersResponse

	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ordersPath, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if c.cookie != "" {
			req.Header.Set("Cookie", c.cookie)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(ErrUnauthenticated)
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode))
		}

		payload = ordersResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: decode: %v", ErrUnavailable, err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.RetryNotify(fetch, policy, func(err error, wait time.Duration) {
		c.logger.Warn("order fetch retrying", "error", err, "wait", wait)
	}); err != nil {
		return nil, err
	}

	if len(payload.Orders) == 0 {
		return nil, ErrUnauthenticated
	}

	orders := make([]order.Order, 0, len(payload.Orders))
	for _, raw := range payload.Orders {
		orders = append(orders, raw.normalize())
	}
	return orders, nil
}

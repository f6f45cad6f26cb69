package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"badges/internal/config"
)

// Client talks to the ticketing platform's REST API. All list endpoints are
// paginated; results pages carry a "next" link until exhausted.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

type listPage struct {
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.PretixTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.PretixRateLimitRPS),
	}
}

// GetAll fetches every page of one event resource ("orders/", "items/", ...)
// and returns the accumulated results.
func (c *Client) GetAll(ctx context.Context, resource string) ([]json.RawMessage, error) {
	if err := c.cfg.Require("PRETIX_API_TOKEN", c.cfg.PretixAPIToken); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/organizers/%s/events/%s/%s",
		strings.TrimRight(c.cfg.PretixAPIBaseURL, "/"), c.cfg.PretixOrganizer, c.cfg.PretixEvent, resource)

	all := make([]json.RawMessage, 0)
	for url != "" {
		body, err := c.fetchJSON(ctx, url)
		if err != nil {
			return nil, err
		}

		var page listPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode page %s: %w", url, err)
		}
		all = append(all, page.Results...)

		url = ""
		if page.Next != nil {
			url = *page.Next
		}
	}
	return all, nil
}

func (c *Client) fetchJSON(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Token "+c.cfg.PretixAPIToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("pretix status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("pretix api error: status=%d url=%s body=%s", resp.StatusCode, url, string(body))
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("pretix request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

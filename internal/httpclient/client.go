// Package httpclient spaces and retries requests to the remote catalog.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mangaview/mangaview/internal/constants"
	"github.com/mangaview/mangaview/internal/metrics"
)

// Client spaces requests by minRequestInterval across all callers sharing it
// and retries transport errors, 429 and 503 responses.
type Client struct {
	httpClient *http.Client
	userAgent  string
	attempts   int
	retryBase  time.Duration

	mu                 sync.Mutex
	minRequestInterval time.Duration
	nextSlot           time.Time
}

func NewClient(httpClient *http.Client, minRequestInterval time.Duration, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	return &Client{
		httpClient:         httpClient,
		userAgent:          userAgent,
		attempts:           constants.DefaultRetryCount,
		retryBase:          constants.DefaultRetryBase,
		minRequestInterval: minRequestInterval,
	}
}

// Do sends req, waiting for a free slot before each attempt. Only requests
// without a body are safe to retry.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := sleep(ctx, c.reserve()); err != nil {
			return nil, err
		}

		backoff := time.Duration(attempt) * c.retryBase
		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			metrics.CatalogRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			lastErr = err
		case retryable(resp.StatusCode):
			metrics.CatalogRequestsTotal.WithLabelValues(metrics.OutcomeRateLimited).Inc()
			if retryAfter := parseRetryAfter(resp); retryAfter > 0 {
				c.delay(retryAfter)
				backoff = max(backoff, retryAfter)
			}
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("catalog throttled (status %d)", resp.StatusCode)
		default:
			metrics.CatalogRequestsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
			return resp, nil
		}

		if attempt == c.attempts {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", c.attempts, lastErr)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// reserve claims the next request slot and returns how long to wait for it.
func (c *Client) reserve() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	slot := c.nextSlot
	if slot.Before(now) {
		slot = now
	}
	c.nextSlot = slot.Add(c.minRequestInterval)
	return slot.Sub(now)
}

// delay pushes the next slot back after the server asked us to slow down.
func (c *Client) delay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if next := time.Now().Add(d); c.nextSlot.Before(next) {
		c.nextSlot = next
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter reads Retry-After as seconds or an HTTP date.
func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}

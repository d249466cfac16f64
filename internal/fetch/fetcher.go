// Package fetch provides the HTTP client used for watch pages, channel
// pages, and caption tracks: size-limited body reads, bounded redirects,
// retry on transient failures, and optional proxy routing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/versemeter/versemeter/internal/util"
)

const maxRetries = 3

// fetchSleepFunc is the sleep between retries (injectable for tests).
var fetchSleepFunc = time.Sleep

// Client fetches page content over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	timeout    time.Duration
}

// NewClient creates a fetch client. Proxy selection follows the standard
// environment variables unless httpProxy/httpsProxy override them.
func NewClient(timeout time.Duration, userAgent string, maxBytes int64, httpProxy, httpsProxy, noProxy string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		timeout:   timeout,
	}
}

// WithProxy returns a client identical to c but routing every request
// through the given proxy. Used for proxy-list rotation.
func (c *Client) WithProxy(proxyURL string) (*Client, error) {
	proxyFunc, err := util.FixedProxyFunc(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy %s: %w", proxyURL, err)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: c.timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
			CheckRedirect: c.httpClient.CheckRedirect,
		},
		userAgent: c.userAgent,
		maxBytes:  c.maxBytes,
		timeout:   c.timeout,
	}, nil
}

// Result is one fetched page.
type Result struct {
	Body       string
	StatusCode int
	FinalURL   string
}

// Get fetches a URL once.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Result{
		Body:       string(body),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}

// GetWithRetry fetches a URL, retrying transient failures (network errors,
// 429, 5xx) with linear backoff. Client errors like 404 fail immediately.
func (c *Client) GetWithRetry(ctx context.Context, rawURL string) (*Result, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := c.Get(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}
		if attempt < maxRetries {
			fetchSleepFunc(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}
	return nil, lastErr
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

func isTransient(err error) bool {
	if se, ok := err.(*StatusError); ok {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	// Network-level failures are worth a retry.
	return true
}

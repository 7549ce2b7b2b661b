// ABOUTME: HTTP document fetcher with bounded timeout and response size cap
// ABOUTME: Retrieves raw feed documents so one unresponsive source cannot stall a refresh

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxResponseSize caps feed documents at 10MB as DoS protection.
const MaxResponseSize = 10 * 1024 * 1024

// DefaultTimeout bounds a single feed fetch.
const DefaultTimeout = 10 * time.Second

const userAgent = "newsticker/1.0 (RSS reader)"

// Client fetches feed documents over HTTP. The zero value is not usable; use
// NewClient.
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client with the given per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the document at urlStr and returns its body.
// Returns an error for network failures, non-200 status codes, and responses
// exceeding MaxResponseSize.
func (c *Client) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return body, nil
}

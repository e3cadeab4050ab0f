// Package fetcher downloads and decodes one source feed per call.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thedittmer/mlb-wire/internal/feed"
	"github.com/thedittmer/mlb-wire/internal/models"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "mlb-wire/1.0 (+https://github.com/thedittmer/mlb-wire)"

	maxBodyBytes = 10 << 20
)

// SourceFetchError wraps a network, timeout or HTTP status failure.
type SourceFetchError struct {
	Source string
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// Client fetches feeds over HTTP, one blocking request at a time.
type Client struct {
	http      *http.Client
	userAgent string
}

// New returns a Client whose requests time out after timeout.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads src and decodes its entries. Transport failures return a
// *SourceFetchError; undecodable bodies return a *feed.FeedParseError.
func (c *Client) Fetch(ctx context.Context, src models.SourceSpec) ([]feed.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Endpoint, nil)
	if err != nil {
		return nil, &SourceFetchError{Source: src.Name, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &SourceFetchError{Source: src.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceFetchError{Source: src.Name, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	items, err := feed.Decode(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	return items, nil
}

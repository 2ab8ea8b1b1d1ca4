package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrFetch is returned when a feed could not be downloaded.
	ErrFetch = errors.New("feed fetch failed")
	// ErrParse is returned when a feed is not an RSS document with a channel
	// title and description.
	ErrParse = errors.New("feed parse failed")
)

const (
	defaultUserAgent = "pods/1.0 (+podcast subscriptions)"
	maxFeedSize      = 10 << 20
)

// Fetcher downloads the raw bytes of a feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches feeds with a plain HTTP GET.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		maxSize:   maxFeedSize,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrFetch, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if int64(len(body)) > f.maxSize {
		return nil, fmt.Errorf("%w: feed larger than %d bytes", ErrFetch, f.maxSize)
	}
	return body, nil
}

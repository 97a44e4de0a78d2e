// Package httpfetcher downloads chat attachments over HTTP.
package httpfetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/stickerframes/pkg/ports"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 32 << 20
)

// ErrTooLarge is returned when a response body exceeds the size limit.
var ErrTooLarge = errors.New("response too large")

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// Options configures a Fetcher. Zero values select the defaults.
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	Client    *http.Client // Overrides Timeout when set
}

// Fetcher implements ports.Fetcher with net/http.
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{
		client:    client,
		maxBytes:  maxBytes,
		userAgent: opts.UserAgent,
	}
}

// Fetch downloads url and returns its body with the declared Content-Type.
func (f *Fetcher) Fetch(ctx context.Context, url string) (ports.Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return ports.Download{}, fmt.Errorf("create request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return ports.Download{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Download{}, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if resp.ContentLength > f.maxBytes {
		return ports.Download{}, fmt.Errorf("%w: %s declares %d bytes, limit %d", ErrTooLarge, url, resp.ContentLength, f.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return ports.Download{}, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return ports.Download{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, f.maxBytes)
	}

	return ports.Download{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

var _ ports.Fetcher = (*Fetcher)(nil)

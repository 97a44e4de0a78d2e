package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/stickerframes/pkg/ports"
)

// Fetcher is a mock implementation of ports.Fetcher serving canned downloads by URL.
type Fetcher struct {
	mu        sync.Mutex
	downloads map[string]ports.Download

	FetchFunc func(ctx context.Context, url string) (ports.Download, error)

	// Recorded calls for verification
	Requests []string
}

// NewFetcher creates a new mock Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{downloads: make(map[string]ports.Download)}
}

// Serve registers the response for url.
func (m *Fetcher) Serve(url string, data []byte, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads[url] = ports.Download{Data: data, ContentType: contentType}
}

func (m *Fetcher) Fetch(ctx context.Context, url string) (ports.Download, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, url)
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.downloads[url]; ok {
		return d, nil
	}
	return ports.Download{}, fmt.Errorf("not found: %s", url)
}

// RequestCount returns how many times url was fetched.
func (m *Fetcher) RequestCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.Requests {
		if r == url {
			n++
		}
	}
	return n
}

var _ ports.Fetcher = (*Fetcher)(nil)

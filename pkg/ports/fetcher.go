package ports

import (
	"context"
)

// Download is a fetched attachment body with its declared content type.
type Download struct {
	Data        []byte
	ContentType string
}

// Fetcher downloads chat attachments and stickers.
type Fetcher interface {
	// Fetch retrieves the resource at url.
	Fetch(ctx context.Context, url string) (Download, error)
}

// Package attachment turns chat attachments and stickers into image parts for a
// multimodal completion request, expanding animations into keyframes.
package attachment

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"

	"github.com/user/stickerframes/pkg/adapters/formatsniff"
	"github.com/user/stickerframes/pkg/ports"
)

// Image detail levels understood by the completion API.
const (
	DetailHigh = "high"
	DetailLow  = "low"
)

// Defaults for Options.
const (
	DefaultHighDetailMessages = 10
	DefaultMaxImageMessages   = 30
)

// AnimatedNote is the developer message placed after a message whose images were expanded into keyframes.
const AnimatedNote = "Please note that the above message contains an animated GIF that is shown to you as multiple images of different frames, and to the user, it's just a GIF."

// ImagePart is one image entry of a chat message.
type ImagePart struct {
	URL    string // data: URL
	Detail string
}

// MessageParts holds the images built for one message.
type MessageParts struct {
	Attachments []ImagePart // Static attachment images
	Stickers    []ImagePart // Keyframes of any animation plus static stickers
	Animated    bool        // At least one image was expanded into keyframes
}

// Images returns attachments followed by stickers, the order they are sent in.
func (p MessageParts) Images() []ImagePart {
	out := make([]ImagePart, 0, len(p.Attachments)+len(p.Stickers))
	out = append(out, p.Attachments...)
	return append(out, p.Stickers...)
}

// Options controls which messages get images and at what detail.
type Options struct {
	HighDetailMessages int // Messages with a smaller history index use DetailHigh
	MaxImageMessages   int // Messages at or past this index get no images
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		HighDetailMessages: DefaultHighDetailMessages,
		MaxImageMessages:   DefaultMaxImageMessages,
	}
}

// Builder converts message attachments into ImageParts.
// Downloads are memoised per URL for the lifetime of the Builder.
type Builder struct {
	fetcher   ports.Fetcher
	extractor ports.KeyframeExtractor
	logger    ports.Logger
	opts      Options

	mu    sync.Mutex
	cache map[string]ports.Download
}

// New creates a Builder.
func New(fetcher ports.Fetcher, extractor ports.KeyframeExtractor, logger ports.Logger, opts Options) *Builder {
	return &Builder{
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger.WithComponent("attachment"),
		opts:      opts,
		cache:     make(map[string]ports.Download),
	}
}

// Detail returns the detail level for the message at index in history (0 = newest).
func (b *Builder) Detail(index int) string {
	if index < b.opts.HighDetailMessages {
		return DetailHigh
	}
	return DetailLow
}

// Build returns the image parts of msg, which sits at index in history.
// Failures on individual images are logged and skipped; they never fail the message.
func (b *Builder) Build(ctx context.Context, msg ports.ChatMessage, index int) MessageParts {
	var parts MessageParts
	if index >= b.opts.MaxImageMessages {
		return parts
	}

	detail := b.Detail(index)

	for _, a := range msg.Attachments {
		if !strings.HasPrefix(a.ContentType, "image/") {
			continue
		}
		dl, ok := b.download(ctx, a.URL)
		if !ok {
			continue
		}
		if frames, ok := b.keyframes(ctx, a.URL, dl); ok {
			parts.Stickers = append(parts.Stickers, framesToParts(frames, detail)...)
			parts.Animated = true
			continue
		}
		parts.Attachments = append(parts.Attachments, ImagePart{URL: DataURL(dl.ContentType, dl.Data), Detail: detail})
	}

	for _, s := range msg.Stickers {
		dl, ok := b.download(ctx, s.URL)
		if !ok {
			continue
		}
		if frames, ok := b.keyframes(ctx, s.URL, dl); ok {
			parts.Stickers = append(parts.Stickers, framesToParts(frames, detail)...)
			parts.Animated = true
			continue
		}
		parts.Stickers = append(parts.Stickers, ImagePart{URL: DataURL(dl.ContentType, dl.Data), Detail: detail})
	}

	return parts
}

// download fetches url once per Builder.
func (b *Builder) download(ctx context.Context, url string) (ports.Download, bool) {
	b.mu.Lock()
	dl, ok := b.cache[url]
	b.mu.Unlock()
	if ok {
		return dl, true
	}

	dl, err := b.fetcher.Fetch(ctx, url)
	if err != nil {
		b.logger.Warn("Skipping image %s: %s", url, err)
		return ports.Download{}, false
	}

	b.mu.Lock()
	b.cache[url] = dl
	b.mu.Unlock()
	return dl, true
}

// keyframes extracts keyframes when dl is an animation. ok is false for static
// images and for animations that could not be decoded.
func (b *Builder) keyframes(ctx context.Context, url string, dl ports.Download) ([][]byte, bool) {
	if !IsAnimated(dl) {
		return nil, false
	}

	frames, err := b.extractor.ExtractFrames(ctx, dl.Data)
	if err != nil {
		b.logger.Warn("Keyframe extraction failed for %s, sending as a static image: %s", url, err)
		return nil, false
	}

	b.logger.Debug("Extracted %d keyframes from %s", len(frames), url)
	return frames, true
}

// IsAnimated reports whether a download should be expanded into keyframes:
// a GIF by declared type, or a PNG carrying animation control.
func IsAnimated(dl ports.Download) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(dl.ContentType, ";", 2)[0]))
	if mediaType == "image/gif" {
		return true
	}
	return formatsniff.IsAnimatedPNG(dl.Data)
}

// DataURL encodes data as a base64 data: URL.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func framesToParts(frames [][]byte, detail string) []ImagePart {
	parts := make([]ImagePart, len(frames))
	for i, f := range frames {
		parts[i] = ImagePart{URL: DataURL("image/png", f), Detail: detail}
	}
	return parts
}

package ports

import "context"

// KeyframeExtractor turns an animated image into its representative stills.
type KeyframeExtractor interface {
	// ExtractFrames returns PNG keyframes in playback order.
	ExtractFrames(ctx context.Context, data []byte) ([][]byte, error)
}

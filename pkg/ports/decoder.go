package ports

import (
	"context"

	"github.com/user/stickerframes/pkg/pipeline"
)

// FrameDecoder abstracts decoding of an animated image into composited frames.
type FrameDecoder interface {
	// DecodeFrames decodes every frame of data in playback order.
	// Each returned frame holds PNG bytes of the fully composited picture.
	DecodeFrames(ctx context.Context, data []byte) (pipeline.FrameSequence, error)
}

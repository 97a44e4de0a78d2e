// Package smartdecoder provides a frame decoder that detects the container
// format and delegates to the matching GIF or APNG decoder.
package smartdecoder

import (
	"context"

	"github.com/user/stickerframes/pkg/adapters/formatsniff"
	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// Info contains information about the routing decision.
type Info struct {
	// Format is the detected container format.
	Format pipeline.Format
	// Animated is false for a PNG without animation control.
	Animated bool
}

// Decoder wraps the per-format ports.FrameDecoder implementations with format detection.
type Decoder struct {
	gif  ports.FrameDecoder
	apng ports.FrameDecoder
}

// New creates a decoder routing GIF buffers to gif and PNG buffers to apng.
func New(gif, apng ports.FrameDecoder) *Decoder {
	return &Decoder{gif: gif, apng: apng}
}

// Detect classifies data without decoding it.
func Detect(data []byte) (Info, error) {
	format, err := formatsniff.Classify(data)
	if err != nil {
		return Info{Format: format}, err
	}

	info := Info{Format: format, Animated: true}
	if format == pipeline.FormatPNG {
		info.Animated = formatsniff.IsAnimatedPNG(data)
	}
	return info, nil
}

// ForFormat returns the decoder that handles format.
func (d *Decoder) ForFormat(format pipeline.Format) (ports.FrameDecoder, error) {
	switch format {
	case pipeline.FormatGIF:
		return d.gif, nil
	case pipeline.FormatPNG:
		return d.apng, nil
	default:
		return nil, pipeline.ErrUnsupportedFormat
	}
}

// Decode detects the format of data and decodes it, reporting the routing decision.
func (d *Decoder) Decode(ctx context.Context, data []byte) (pipeline.FrameSequence, Info, error) {
	info, err := Detect(data)
	if err != nil {
		return nil, info, err
	}

	inner, err := d.ForFormat(info.Format)
	if err != nil {
		return nil, info, err
	}

	frames, err := inner.DecodeFrames(ctx, data)
	if err != nil {
		return nil, info, err
	}
	return frames, info, nil
}

// DecodeFrames implements ports.FrameDecoder.
func (d *Decoder) DecodeFrames(ctx context.Context, data []byte) (pipeline.FrameSequence, error) {
	frames, _, err := d.Decode(ctx, data)
	return frames, err
}

// Ensure Decoder implements ports.FrameDecoder
var _ ports.FrameDecoder = (*Decoder)(nil)

// Package gifdecoder decodes animated GIFs into fully composited PNG frames.
package gifdecoder

import (
	"bytes"
	"context"
	"image"
	"image/gif"

	"golang.org/x/image/draw"

	"github.com/user/stickerframes/pkg/adapters/framepool"
	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// delayUnitMs converts GIF delays (hundredths of a second) to milliseconds.
const delayUnitMs = 10

// Decoder implements ports.FrameDecoder for GIF87a/GIF89a.
type Decoder struct {
	pool   *framepool.Pool
	logger ports.Logger
}

// New creates a GIF decoder that encodes frames with the given pool.
func New(pool *framepool.Pool, logger ports.Logger) *Decoder {
	return &Decoder{
		pool:   pool,
		logger: logger.WithComponent("gif"),
	}
}

// DecodeFrames decodes every frame of a GIF in playback order.
// Delays are kept as declared: a zero delay stays zero.
func (d *Decoder) DecodeFrames(ctx context.Context, data []byte) (pipeline.FrameSequence, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, pipeline.NewDecodeError(pipeline.FormatGIF, -1, err)
	}

	d.logger.Debug("GIF has %d frames on a %dx%d screen", len(g.Image), g.Config.Width, g.Config.Height)

	images, err := Composite(ctx, g)
	if err != nil {
		return nil, err
	}

	encoded, err := d.pool.EncodeAll(ctx, images)
	if err != nil {
		return nil, pipeline.NewDecodeError(pipeline.FormatGIF, -1, err)
	}

	frames := make(pipeline.FrameSequence, len(encoded))
	for i := range encoded {
		frames[i] = pipeline.DecodedFrame{
			Image:   encoded[i],
			DelayMs: frameDelay(g, i) * delayUnitMs,
		}
	}

	return frames, nil
}

// Composite renders every frame of g onto the logical screen, applying each
// frame's disposal method before the next frame is drawn.
func Composite(ctx context.Context, g *gif.GIF) ([]image.Image, error) {
	screen := screenBounds(g)
	if err := pipeline.CheckCanvas(screen.Dx(), screen.Dy()); err != nil {
		return nil, pipeline.NewDecodeError(pipeline.FormatGIF, -1, err)
	}
	canvas := image.NewRGBA(screen)
	out := make([]image.Image, 0, len(g.Image))

	for i, frame := range g.Image {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		disposal := frameDisposal(g, i)

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		bounds := frame.Bounds().Intersect(screen)
		draw.Draw(canvas, bounds, frame, bounds.Min, draw.Over)
		out = append(out, cloneRGBA(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, bounds, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return out, nil
}

// screenBounds returns the logical screen; a zero-sized screen falls back to the union of frames.
func screenBounds(g *gif.GIF) image.Rectangle {
	if g.Config.Width > 0 && g.Config.Height > 0 {
		return image.Rect(0, 0, g.Config.Width, g.Config.Height)
	}
	var r image.Rectangle
	for _, frame := range g.Image {
		r = r.Union(frame.Bounds())
	}
	return image.Rect(0, 0, r.Max.X, r.Max.Y)
}

func frameDelay(g *gif.GIF, i int) int {
	if i < len(g.Delay) && g.Delay[i] > 0 {
		return g.Delay[i]
	}
	return 0
}

func frameDisposal(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return 0
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// Ensure Decoder implements ports.FrameDecoder
var _ ports.FrameDecoder = (*Decoder)(nil)

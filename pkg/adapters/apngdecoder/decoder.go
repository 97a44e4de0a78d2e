// Package apngdecoder decodes animated PNGs into fully composited PNG frames.
package apngdecoder

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/user/stickerframes/pkg/adapters/framepool"
	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// DefaultDelayMs replaces a missing or zero frame delay.
const DefaultDelayMs = 100

// fcTL dispose_op and blend_op values.
const (
	DisposeNone       byte = 0
	DisposeBackground byte = 1
	DisposePrevious   byte = 2

	BlendSource byte = 0
	BlendOver   byte = 1
)

// Decoder implements ports.FrameDecoder for APNG and plain PNG.
type Decoder struct {
	pool   *framepool.Pool
	logger ports.Logger
}

// New creates an APNG decoder that encodes frames with the given pool.
func New(pool *framepool.Pool, logger ports.Logger) *Decoder {
	return &Decoder{
		pool:   pool,
		logger: logger.WithComponent("apng"),
	}
}

// rawFrame is one animation frame before decoding.
type rawFrame struct {
	control frameControl
	data    [][]byte
}

// animation is a parsed chunk stream.
type animation struct {
	header   header
	shared   []chunk
	frames   []rawFrame
	animated bool
	declared int
}

// DecodeFrames decodes every animation frame of an APNG in playback order.
// A PNG without animation control decodes as a single frame.
func (d *Decoder) DecodeFrames(ctx context.Context, data []byte) (pipeline.FrameSequence, error) {
	anim, err := parse(data)
	if err != nil {
		return nil, asFrameError(-1, err)
	}

	if !anim.animated {
		d.logger.Debug("PNG has no animation control, using a single frame")
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, pipeline.NewDecodeError(pipeline.FormatPNG, 0, err)
		}
		encoded, err := d.pool.EncodeAll(ctx, []image.Image{img})
		if err != nil {
			return nil, pipeline.NewDecodeError(pipeline.FormatPNG, -1, err)
		}
		return pipeline.FrameSequence{{Image: encoded[0], DelayMs: DefaultDelayMs}}, nil
	}

	d.logger.Debug("APNG has %d frames on a %dx%d canvas", len(anim.frames), anim.header.width, anim.header.height)
	if anim.declared != len(anim.frames) {
		d.logger.Warn("APNG declares %d frames but contains %d", anim.declared, len(anim.frames))
	}

	images, err := composite(ctx, anim)
	if err != nil {
		return nil, err
	}

	encoded, err := d.pool.EncodeAll(ctx, images)
	if err != nil {
		return nil, pipeline.NewDecodeError(pipeline.FormatPNG, -1, err)
	}

	frames := make(pipeline.FrameSequence, len(encoded))
	for i := range encoded {
		frames[i] = pipeline.DecodedFrame{
			Image:   encoded[i],
			DelayMs: DelayMs(anim.frames[i].control.delayNum, anim.frames[i].control.delayDen),
		}
	}

	return frames, nil
}

// DelayMs converts an fcTL delay fraction to milliseconds.
// A zero denominator means hundredths of a second. A zero numerator becomes
// DefaultDelayMs; any other delay is at least 1 ms.
func DelayMs(num, den uint16) int {
	if num == 0 {
		return DefaultDelayMs
	}
	if den == 0 {
		den = 100
	}
	ms := int(math.Round(float64(num) * 1000 / float64(den)))
	if ms < 1 {
		return 1
	}
	return ms
}

// parse walks the chunk stream and groups image data by frame.
func parse(data []byte) (*animation, error) {
	chunks, err := readChunks(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 || chunks[0].typ != "IHDR" {
		return nil, errMissingIHDR
	}

	hdr, err := parseHeader(chunks[0].data)
	if err != nil {
		return nil, err
	}

	anim := &animation{header: hdr}
	var current *rawFrame
	seenIDAT := false

	for _, c := range chunks[1:] {
		switch c.typ {
		case "acTL":
			anim.animated = true
			anim.declared = frameCount(c.data)
		case "fcTL":
			fc, err := parseFrameControl(c.data)
			if err != nil {
				return nil, err
			}
			anim.frames = append(anim.frames, rawFrame{control: fc})
			current = &anim.frames[len(anim.frames)-1]
		case "IDAT":
			seenIDAT = true
			// IDAT without a preceding fcTL is a default image outside the animation.
			if current != nil {
				current.data = append(current.data, c.data)
			}
		case "fdAT":
			if len(c.data) < 4 {
				return nil, errShortControl
			}
			if current != nil {
				current.data = append(current.data, c.data[4:])
			}
		case "IEND":
		default:
			if !seenIDAT {
				anim.shared = append(anim.shared, c)
			}
		}
	}

	if !anim.animated {
		return anim, nil
	}
	if len(anim.frames) == 0 {
		return nil, errNoFrames
	}
	for i := range anim.frames {
		if len(anim.frames[i].data) == 0 {
			return nil, pipeline.NewDecodeError(pipeline.FormatPNG, i, errFrameNoData)
		}
		fc := anim.frames[i].control
		if fc.width <= 0 || fc.height <= 0 ||
			fc.xOffset+fc.width > hdr.width || fc.yOffset+fc.height > hdr.height {
			return nil, pipeline.NewDecodeError(pipeline.FormatPNG, i, errFrameBounds)
		}
	}

	return anim, nil
}

// composite renders every frame onto the canvas, honouring blend and dispose ops.
func composite(ctx context.Context, anim *animation) ([]image.Image, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, anim.header.width, anim.header.height))
	out := make([]image.Image, 0, len(anim.frames))

	for i, f := range anim.frames {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := decodeFrame(anim, f)
		if err != nil {
			return nil, asFrameError(i, err)
		}

		fc := f.control
		region := image.Rect(fc.xOffset, fc.yOffset, fc.xOffset+fc.width, fc.yOffset+fc.height)

		var previous *image.RGBA
		if fc.disposeOp == DisposePrevious {
			previous = cloneRGBA(canvas)
		}

		op := draw.Over
		if fc.blendOp == BlendSource {
			op = draw.Src
		}
		draw.Draw(canvas, region, img, img.Bounds().Min, op)
		out = append(out, cloneRGBA(canvas))

		switch fc.disposeOp {
		case DisposeBackground:
			draw.Draw(canvas, region, image.Transparent, image.Point{}, draw.Src)
		case DisposePrevious:
			canvas = previous
		}
	}

	return out, nil
}

// decodeFrame rebuilds a standalone PNG for one frame and decodes it.
func decodeFrame(anim *animation, f rawFrame) (image.Image, error) {
	var buf bytes.Buffer
	buf.Write(pngSignature)
	writeChunk(&buf, "IHDR", anim.header.withSize(f.control.width, f.control.height))
	for _, c := range anim.shared {
		writeChunk(&buf, c.typ, c.data)
	}
	for _, d := range f.data {
		writeChunk(&buf, "IDAT", d)
	}
	writeChunk(&buf, "IEND", nil)

	return png.Decode(&buf)
}

func asFrameError(i int, err error) error {
	var decodeErr *pipeline.DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}
	return pipeline.NewDecodeError(pipeline.FormatPNG, i, err)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// frameCount reads num_frames from an acTL payload.
func frameCount(data []byte) int {
	if len(data) < 8 {
		return 0
	}
	return int(binary.BigEndian.Uint32(data[0:4]))
}

// Ensure Decoder implements ports.FrameDecoder
var _ ports.FrameDecoder = (*Decoder)(nil)

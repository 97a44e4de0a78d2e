package gifdecoder

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/user/stickerframes/pkg/adapters/framepool"
	"github.com/user/stickerframes/pkg/adapters/ggrenderer"
	"github.com/user/stickerframes/pkg/adapters/logger"
	"github.com/user/stickerframes/pkg/mocks"
	"github.com/user/stickerframes/pkg/pipeline"
)

var (
	transparent = color.RGBA{}
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	green       = color.RGBA{G: 255, A: 255}
	palette     = color.Palette{transparent, red, blue, green}
)

// filled returns a paletted frame covering r with palette index idx.
func filled(r image.Rectangle, idx uint8) *image.Paletted {
	img := image.NewPaletted(r, palette)
	for i := range img.Pix {
		img.Pix[i] = idx
	}
	return img
}

func encodeGIF(t *testing.T, g *gif.GIF) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encode test GIF: %v", err)
	}
	return buf.Bytes()
}

func newDecoder() *Decoder {
	return New(framepool.New(ggrenderer.New(), 2), logger.NewNoop())
}

func decodePixel(t *testing.T, data []byte, x, y int) color.RGBA {
	t.Helper()
	img, err := ggrenderer.New().DecodePNG(data)
	if err != nil {
		t.Fatalf("decode frame PNG: %v", err)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestDecoder_DecodeFrames(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	data := encodeGIF(t, &gif.GIF{
		Image:  []*image.Paletted{filled(screen, 1), filled(screen, 2), filled(screen, 3)},
		Delay:  []int{5, 10, 0},
		Config: image.Config{Width: 8, Height: 8, ColorModel: palette},
	})

	frames, err := newDecoder().DecodeFrames(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}

	expectedDelays := []int{50, 100, 0}
	expectedColors := []color.RGBA{red, blue, green}
	for i, frame := range frames {
		if frame.DelayMs != expectedDelays[i] {
			t.Errorf("frame %d: expected delay %d, got %d", i, expectedDelays[i], frame.DelayMs)
		}
		if got := decodePixel(t, frame.Image, 4, 4); got != expectedColors[i] {
			t.Errorf("frame %d: expected %v, got %v", i, expectedColors[i], got)
		}
	}
}

func TestDecoder_DelayConversion(t *testing.T) {
	data := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 2, 2), 1)},
		Delay: []int{5},
	})

	frames, err := newDecoder().DecodeFrames(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frames[0].DelayMs != 50 {
		t.Errorf("expected 50ms, got %d", frames[0].DelayMs)
	}
}

func TestDecoder_ZeroDelayIsPreserved(t *testing.T) {
	data := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 2, 2), 1), filled(image.Rect(0, 0, 2, 2), 2)},
		Delay: []int{0, 0},
	})

	frames, err := newDecoder().DecodeFrames(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, f := range frames {
		if f.DelayMs != 0 {
			t.Errorf("frame %d: expected 0ms, got %d", i, f.DelayMs)
		}
	}
}

func TestDecoder_TransparentDeltaKeepsPreviousPixels(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	// Second frame only paints a 2x2 blue square; the rest of its rect is transparent.
	delta := filled(screen, 0)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			delta.SetColorIndex(x, y, 2)
		}
	}

	data := encodeGIF(t, &gif.GIF{
		Image:    []*image.Paletted{filled(screen, 1), delta},
		Delay:    []int{10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalNone},
		Config:   image.Config{Width: 8, Height: 8, ColorModel: palette},
	})

	frames, err := newDecoder().DecodeFrames(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := decodePixel(t, frames[1].Image, 0, 0); got != blue {
		t.Errorf("expected blue at delta pixel, got %v", got)
	}
	if got := decodePixel(t, frames[1].Image, 5, 5); got != red {
		t.Errorf("expected red carried over from frame 0, got %v", got)
	}
}

func TestDecoder_PartialFrameOffset(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	data := encodeGIF(t, &gif.GIF{
		Image:  []*image.Paletted{filled(screen, 1), filled(image.Rect(4, 4, 8, 8), 3)},
		Delay:  []int{10, 10},
		Config: image.Config{Width: 8, Height: 8, ColorModel: palette},
	})

	frames, err := newDecoder().DecodeFrames(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := decodePixel(t, frames[1].Image, 6, 6); got != green {
		t.Errorf("expected green inside sub-rectangle, got %v", got)
	}
	if got := decodePixel(t, frames[1].Image, 1, 1); got != red {
		t.Errorf("expected red outside sub-rectangle, got %v", got)
	}
}

func TestComposite_DisposalBackground(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	g := &gif.GIF{
		Image:    []*image.Paletted{filled(screen, 1), filled(image.Rect(0, 0, 2, 2), 2)},
		Delay:    []int{10, 10},
		Disposal: []byte{gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 8, Height: 8, ColorModel: palette},
	}

	images, err := Composite(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := color.RGBAModel.Convert(images[0].At(5, 5)); got != red {
		t.Errorf("frame 0: expected red, got %v", got)
	}
	if got := color.RGBAModel.Convert(images[1].At(5, 5)); got != transparent {
		t.Errorf("frame 1: expected cleared pixel, got %v", got)
	}
	if got := color.RGBAModel.Convert(images[1].At(1, 1)); got != blue {
		t.Errorf("frame 1: expected blue, got %v", got)
	}
}

func TestComposite_DisposalPrevious(t *testing.T) {
	screen := image.Rect(0, 0, 8, 8)
	g := &gif.GIF{
		Image: []*image.Paletted{
			filled(screen, 1),
			filled(image.Rect(0, 0, 4, 4), 2),
			filled(image.Rect(4, 4, 8, 8), 3),
		},
		Delay:    []int{10, 10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone},
		Config:   image.Config{Width: 8, Height: 8, ColorModel: palette},
	}

	images, err := Composite(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := color.RGBAModel.Convert(images[1].At(1, 1)); got != blue {
		t.Errorf("frame 1: expected blue, got %v", got)
	}
	// Frame 1 is restored away before frame 2 draws.
	if got := color.RGBAModel.Convert(images[2].At(1, 1)); got != red {
		t.Errorf("frame 2: expected red restored, got %v", got)
	}
	if got := color.RGBAModel.Convert(images[2].At(6, 6)); got != green {
		t.Errorf("frame 2: expected green, got %v", got)
	}
}

func TestComposite_FramesAreIndependent(t *testing.T) {
	screen := image.Rect(0, 0, 4, 4)
	g := &gif.GIF{
		Image:  []*image.Paletted{filled(screen, 1), filled(screen, 2)},
		Delay:  []int{10, 10},
		Config: image.Config{Width: 4, Height: 4, ColorModel: palette},
	}

	images, err := Composite(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := color.RGBAModel.Convert(images[0].At(0, 0)); got != red {
		t.Errorf("frame 0 was overwritten by a later frame: %v", got)
	}
}

func TestComposite_ZeroScreenUsesFrameBounds(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 3, 5), 1)},
		Delay: []int{1},
	}

	images, err := Composite(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := images[0].Bounds()
	if b.Dx() != 3 || b.Dy() != 5 {
		t.Errorf("expected 3x5, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestComposite_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &gif.GIF{Image: []*image.Paletted{filled(image.Rect(0, 0, 2, 2), 1)}, Delay: []int{1}}
	if _, err := Composite(ctx, g); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDecoder_CorruptInput(t *testing.T) {
	valid := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 16, 16), 1)},
		Delay: []int{10},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"signature only", []byte("GIF89a")},
		{"signature and garbage", append([]byte("GIF89a"), bytes.Repeat([]byte{0xAB}, 32)...)},
		{"truncated body", valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := newDecoder().DecodeFrames(context.Background(), tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, pipeline.ErrDecode) {
				t.Errorf("expected ErrDecode, got %v", err)
			}
			var decErr *pipeline.DecodeError
			if !errors.As(err, &decErr) || decErr.Format != pipeline.FormatGIF {
				t.Errorf("expected *DecodeError for gif, got %T", err)
			}
			if frames != nil {
				t.Error("expected no partial output")
			}
		})
	}
}

func TestDecoder_RejectsOversizedScreen(t *testing.T) {
	data := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 1, 1), 1)},
		Delay: []int{10},
	})
	// Logical screen width and height are little-endian at bytes 6:10.
	data[6], data[7] = 0xff, 0xff
	data[8], data[9] = 0xff, 0xff

	frames, err := newDecoder().DecodeFrames(context.Background(), data)
	if !errors.Is(err, pipeline.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if !errors.Is(err, pipeline.ErrCanvasSize) {
		t.Errorf("expected ErrCanvasSize in chain, got %v", err)
	}
	if frames != nil {
		t.Error("expected no partial output")
	}
}

func TestComposite_RejectsOversizedScreen(t *testing.T) {
	g := &gif.GIF{
		Image:  []*image.Paletted{filled(image.Rect(0, 0, 1, 1), 1)},
		Delay:  []int{10},
		Config: image.Config{Width: 8192, Height: 8192},
	}

	_, err := Composite(context.Background(), g)
	if !errors.Is(err, pipeline.ErrCanvasSize) {
		t.Errorf("expected ErrCanvasSize, got %v", err)
	}
}

func TestDecoder_EncodeFailure(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodePNGFunc: func(img image.Image) ([]byte, error) {
			return nil, errors.New("disk full")
		},
	}
	d := New(framepool.New(renderer, 1), logger.NewNoop())

	data := encodeGIF(t, &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 2, 2), 1)},
		Delay: []int{10},
	})

	if _, err := d.DecodeFrames(context.Background(), data); !errors.Is(err, pipeline.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

package mocks

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"

	"github.com/user/stickerframes/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Without overrides it round-trips real PNG bytes so pipelines stay decodable.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodePNGFunc    func(data []byte) (image.Image, error)
	EncodePNGFunc    func(img image.Image) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	EncodeCalls atomic.Int64
	ResizeCalls atomic.Int64
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) DecodePNG(data []byte) (image.Image, error) {
	if m.DecodePNGFunc != nil {
		return m.DecodePNGFunc(data)
	}
	return png.Decode(bytes.NewReader(data))
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	m.EncodeCalls.Add(1)
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeCalls.Add(1)
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	width  int
	height int
	img    *image.RGBA

	ImageDraws []image.Rectangle
	Texts      []string
	Styles     []ports.TextStyle
}

func (m *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	m.ImageDraws = append(m.ImageDraws, image.Rect(x, y, x+width, y+height))
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
	m.Styles = append(m.Styles, style)
}

func (m *Canvas) ToImage() image.Image {
	if m.img != nil {
		return m.img
	}
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)

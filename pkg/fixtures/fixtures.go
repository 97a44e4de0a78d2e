// Package fixtures synthesises small animated GIF and APNG buffers for tests.
package fixtures

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
)

// colorBase is the modulus used to pack a frame index into a colour.
const colorBase = 251

// FrameColor returns the opaque colour that identifies frame i.
func FrameColor(i int) color.RGBA {
	return color.RGBA{R: uint8(i % colorBase), G: uint8(i / colorBase), B: 200, A: 255}
}

// FrameIndex recovers the frame index from the top-left pixel of img.
func FrameIndex(img image.Image) int {
	c := color.RGBAModel.Convert(img.At(img.Bounds().Min.X, img.Bounds().Min.Y)).(color.RGBA)
	return int(c.R) + int(c.G)*colorBase
}

// FrameIndexPNG decodes a PNG and returns its FrameIndex, or -1 when it cannot be decoded.
func FrameIndexPNG(data []byte) int {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return -1
	}
	return FrameIndex(img)
}

// Solid returns a w×h image filled with c.
func Solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// SequenceGIF builds a GIF with one solid frame per delay (hundredths of a second).
// Frame i is filled with FrameColor(i).
func SequenceGIF(w, h int, delays []int) []byte {
	g := &gif.GIF{
		Config: image.Config{Width: w, Height: h},
	}
	for i, d := range delays {
		pal := color.Palette{FrameColor(i), color.RGBA{A: 255}}
		frame := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, d)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PNG encodes img as a plain PNG.
func PNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// APNGFrame describes one animation frame.
type APNGFrame struct {
	Image     image.Image // Drawn at (X, Y) with the image's own size
	X, Y      int
	DelayNum  uint16
	DelayDen  uint16
	DisposeOp byte
	BlendOp   byte
}

// APNG builds an animated PNG whose default image is the first frame.
func APNG(w, h int, frames []APNGFrame) []byte {
	return buildAPNG(w, h, nil, frames)
}

// APNGHiddenDefault builds an animated PNG whose default image is not part of the animation.
func APNGHiddenDefault(w, h int, def image.Image, frames []APNGFrame) []byte {
	return buildAPNG(w, h, def, frames)
}

// SequenceAPNG builds an APNG of n full-canvas solid frames, each FrameColor(i),
// all with the same delay fraction.
func SequenceAPNG(w, h, n int, delayNum, delayDen uint16) []byte {
	frames := make([]APNGFrame, n)
	for i := range frames {
		frames[i] = APNGFrame{
			Image:    Solid(w, h, FrameColor(i)),
			DelayNum: delayNum,
			DelayDen: delayDen,
		}
	}
	return APNG(w, h, frames)
}

func buildAPNG(w, h int, def image.Image, frames []APNGFrame) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'})

	WriteChunk(&buf, "IHDR", ihdr(w, h))

	actl := make([]byte, 8)
	binary.BigEndian.PutUint32(actl[0:4], uint32(len(frames)))
	WriteChunk(&buf, "acTL", actl)

	seq := uint32(0)
	if def != nil {
		WriteChunk(&buf, "IDAT", pixelData(def))
	}

	for i, f := range frames {
		b := f.Image.Bounds()
		fctl := make([]byte, 26)
		binary.BigEndian.PutUint32(fctl[0:4], seq)
		binary.BigEndian.PutUint32(fctl[4:8], uint32(b.Dx()))
		binary.BigEndian.PutUint32(fctl[8:12], uint32(b.Dy()))
		binary.BigEndian.PutUint32(fctl[12:16], uint32(f.X))
		binary.BigEndian.PutUint32(fctl[16:20], uint32(f.Y))
		binary.BigEndian.PutUint16(fctl[20:22], f.DelayNum)
		binary.BigEndian.PutUint16(fctl[22:24], f.DelayDen)
		fctl[24] = f.DisposeOp
		fctl[25] = f.BlendOp
		WriteChunk(&buf, "fcTL", fctl)
		seq++

		if i == 0 && def == nil {
			WriteChunk(&buf, "IDAT", pixelData(f.Image))
			continue
		}

		fdat := make([]byte, 4)
		binary.BigEndian.PutUint32(fdat, seq)
		fdat = append(fdat, pixelData(f.Image)...)
		WriteChunk(&buf, "fdAT", fdat)
		seq++
	}

	WriteChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

// WriteChunk appends a PNG chunk with its CRC.
func WriteChunk(buf *bytes.Buffer, typ string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.WriteString(typ)
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}

// ihdr returns an 8-bit RGBA, non-interlaced header.
func ihdr(w, h int) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], uint32(w))
	binary.BigEndian.PutUint32(data[4:8], uint32(h))
	data[8] = 8 // bit depth
	data[9] = 6 // truecolour with alpha
	return data
}

// pixelData returns zlib-compressed, unfiltered RGBA scanlines of img.
func pixelData(img image.Image) []byte {
	b := img.Bounds()
	var raw bytes.Buffer
	for y := b.Min.Y; y < b.Max.Y; y++ {
		raw.WriteByte(0)
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			raw.Write([]byte{c.R, c.G, c.B, c.A})
		}
	}

	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	zw.Write(raw.Bytes())
	zw.Close()
	return out.Bytes()
}

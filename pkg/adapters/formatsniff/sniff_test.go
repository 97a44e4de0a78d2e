package formatsniff

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/user/stickerframes/pkg/pipeline"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected pipeline.Format
	}{
		{"gif89a", append([]byte("GIF89a"), 0, 0, 0, 0), pipeline.FormatGIF},
		{"gif87a", append([]byte("GIF87a"), 1, 2), pipeline.FormatGIF},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, pipeline.FormatPNG},
		{"png with body", append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, 0, 0, 0, 13), pipeline.FormatPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short gif prefix", []byte("GIF89")},
		{"gif signature but only 7 bytes", []byte("GIF89a!")},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")},
		{"gif lowercase", []byte("gif89a00")},
		{"broken png signature", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0B}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := Classify(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, pipeline.ErrUnsupportedFormat) {
				t.Errorf("expected ErrUnsupportedFormat, got %v", err)
			}
			if format != pipeline.FormatUnknown {
				t.Errorf("expected unknown format, got %s", format)
			}
		})
	}
}

func TestClassify_RandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		data := make([]byte, 8+rng.Intn(64))
		rng.Read(data)
		// Force a non-matching first byte.
		data[0] = 0x00

		if _, err := Classify(data); !errors.Is(err, pipeline.ErrUnsupportedFormat) {
			t.Fatalf("iteration %d: expected ErrUnsupportedFormat, got %v", i, err)
		}
	}
}

func chunk(typ string, data []byte) []byte {
	out := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(out[:4], uint32(len(data)))
	copy(out[4:8], typ)
	out = append(out, data...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(out, crc.Sum32())
}

func TestIsAnimatedPNG(t *testing.T) {
	header := append([]byte{}, pngSignature...)
	ihdr := chunk("IHDR", make([]byte, 13))

	animated := append(append(append([]byte{}, header...), ihdr...), chunk("acTL", make([]byte, 8))...)
	animated = append(animated, chunk("IDAT", []byte{1})...)

	static := append(append(append([]byte{}, header...), ihdr...), chunk("IDAT", []byte{1})...)
	static = append(static, chunk("acTL", make([]byte, 8))...)

	if !IsAnimatedPNG(animated) {
		t.Error("expected acTL before IDAT to be animated")
	}
	if IsAnimatedPNG(static) {
		t.Error("expected acTL after IDAT to be ignored")
	}
	if IsAnimatedPNG([]byte("GIF89a0000")) {
		t.Error("expected GIF to be reported as not APNG")
	}

	truncated := append(append([]byte{}, header...), 0, 0, 0xFF, 0xFF, 'I', 'H', 'D', 'R')
	if IsAnimatedPNG(truncated) {
		t.Error("expected truncated stream to be reported as not APNG")
	}
}

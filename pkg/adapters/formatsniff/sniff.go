// Package formatsniff classifies encoded animations by their leading bytes.
package formatsniff

import (
	"bytes"
	"encoding/binary"

	"github.com/user/stickerframes/pkg/pipeline"
)

var (
	gif87Signature = []byte("GIF87a")
	gif89Signature = []byte("GIF89a")
	pngSignature   = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// signatureLength is the number of bytes Classify needs to make a decision.
const signatureLength = 8

// Classify detects the container format from the first 8 bytes of data.
// It does not tell static PNG from APNG; see IsAnimatedPNG.
func Classify(data []byte) (pipeline.Format, error) {
	if len(data) < signatureLength {
		return pipeline.FormatUnknown, &pipeline.UnsupportedFormatError{Length: len(data)}
	}

	switch {
	case bytes.HasPrefix(data, gif89Signature), bytes.HasPrefix(data, gif87Signature):
		return pipeline.FormatGIF, nil
	case bytes.HasPrefix(data, pngSignature):
		return pipeline.FormatPNG, nil
	}

	return pipeline.FormatUnknown, &pipeline.UnsupportedFormatError{Length: len(data)}
}

// IsAnimatedPNG reports whether data is a PNG carrying an acTL chunk ahead of its image data.
// Malformed chunk streams report false.
func IsAnimatedPNG(data []byte) bool {
	if !bytes.HasPrefix(data, pngSignature) {
		return false
	}

	offset := len(pngSignature)
	for offset+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		chunkType := string(data[offset+4 : offset+8])

		switch chunkType {
		case "acTL":
			return true
		case "IDAT", "IEND":
			return false
		}

		// length + type + data + crc
		next := offset + 12 + length
		if length < 0 || next <= offset || next > len(data) {
			return false
		}
		offset = next
	}

	return false
}

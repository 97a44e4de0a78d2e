package apngdecoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/user/stickerframes/pkg/pipeline"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

var (
	errNotPNG       = errors.New("missing PNG signature")
	errTruncated    = errors.New("truncated chunk stream")
	errMissingIHDR  = errors.New("first chunk is not IHDR")
	errMissingIEND  = errors.New("missing IEND")
	errNoFrames     = errors.New("animation has no frames")
	errFrameNoData  = errors.New("frame has no image data")
	errFrameBounds  = errors.New("frame region outside the canvas")
	errShortControl = errors.New("short control chunk")
)

// chunk is one raw PNG chunk.
type chunk struct {
	typ  string
	data []byte
}

// readChunks splits a PNG stream into chunks, verifying every CRC.
func readChunks(data []byte) ([]chunk, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errNotPNG
	}

	var chunks []chunk
	offset := len(pngSignature)
	for {
		if offset+8 > len(data) {
			return nil, errMissingIEND
		}

		length := binary.BigEndian.Uint32(data[offset : offset+4])
		typ := data[offset+4 : offset+8]
		start := offset + 8
		end := start + int(length)
		if length > uint32(len(data)) || end+4 > len(data) {
			return nil, errTruncated
		}

		body := data[start:end]
		want := binary.BigEndian.Uint32(data[end : end+4])
		crc := crc32.NewIEEE()
		crc.Write(typ)
		crc.Write(body)
		if crc.Sum32() != want {
			return nil, fmt.Errorf("chunk %s: checksum mismatch", typ)
		}

		chunks = append(chunks, chunk{typ: string(typ), data: body})
		offset = end + 4

		if string(typ) == "IEND" {
			return chunks, nil
		}
	}
}

// writeChunk appends a chunk with a freshly computed CRC to buf.
func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], typ)
	buf.Write(header[:])
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}

// frameControl is the content of an fcTL chunk.
type frameControl struct {
	width, height    int
	xOffset, yOffset int
	delayNum         uint16
	delayDen         uint16
	disposeOp        byte
	blendOp          byte
}

func parseFrameControl(data []byte) (frameControl, error) {
	if len(data) < 26 {
		return frameControl{}, errShortControl
	}
	return frameControl{
		width:     int(binary.BigEndian.Uint32(data[4:8])),
		height:    int(binary.BigEndian.Uint32(data[8:12])),
		xOffset:   int(binary.BigEndian.Uint32(data[12:16])),
		yOffset:   int(binary.BigEndian.Uint32(data[16:20])),
		delayNum:  binary.BigEndian.Uint16(data[20:22]),
		delayDen:  binary.BigEndian.Uint16(data[22:24]),
		disposeOp: data[24],
		blendOp:   data[25],
	}, nil
}

// header is the subset of IHDR needed for compositing.
type header struct {
	width, height int
	raw           []byte
}

func parseHeader(data []byte) (header, error) {
	if len(data) != 13 {
		return header{}, errShortControl
	}
	h := header{
		width:  int(binary.BigEndian.Uint32(data[0:4])),
		height: int(binary.BigEndian.Uint32(data[4:8])),
		raw:    data,
	}
	if err := pipeline.CheckCanvas(h.width, h.height); err != nil {
		return header{}, err
	}
	return h, nil
}

// withSize returns a copy of the IHDR payload with the dimensions replaced.
func (h header) withSize(width, height int) []byte {
	out := make([]byte, len(h.raw))
	copy(out, h.raw)
	binary.BigEndian.PutUint32(out[0:4], uint32(width))
	binary.BigEndian.PutUint32(out[4:8], uint32(height))
	return out
}

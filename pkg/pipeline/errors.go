package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the buffer is neither GIF nor PNG.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrDecode is returned when a recognised format has invalid content.
	ErrDecode = errors.New("decode failed")
	// ErrEmptySequence is returned when a decode produced no frames.
	ErrEmptySequence = errors.New("no frames extracted")
	// ErrCanvasSize is returned when an animation declares an empty or oversized canvas.
	ErrCanvasSize = errors.New("canvas size out of range")
)

// MaxCanvasPixels caps the canvas area a decoder will allocate.
// Stickers and chat GIFs are far smaller; one RGBA canvas at the cap is 64 MiB.
const MaxCanvasPixels = 4096 * 4096

// CheckCanvas rejects canvases with a zero side or an area above MaxCanvasPixels.
func CheckCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrCanvasSize, width, height)
	}
	if int64(width)*int64(height) > MaxCanvasPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrCanvasSize, width, height, MaxCanvasPixels)
	}
	return nil
}

// UnsupportedFormatError reports a buffer whose signature is not recognised.
type UnsupportedFormatError struct {
	Length int // Length of the inspected buffer
}

func (e *UnsupportedFormatError) Error() string {
	if e.Length < 8 {
		return fmt.Sprintf("%s: buffer too short (%d bytes)", ErrUnsupportedFormat, e.Length)
	}
	return ErrUnsupportedFormat.Error()
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// DecodeError reports a structurally invalid GIF or APNG.
type DecodeError struct {
	Format Format
	Frame  int // Frame being decoded, -1 when not frame specific
	Err    error
}

// NewDecodeError wraps err as a DecodeError for the given format.
func NewDecodeError(format Format, frame int, err error) *DecodeError {
	return &DecodeError{Format: format, Frame: frame, Err: err}
}

func (e *DecodeError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("decode %s frame %d: %v", e.Format, e.Frame, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

package pipeline

import (
	"image"
	"image/color"
)

// KeyframeCount is the number of stills produced for every animation.
const KeyframeCount = 10

// =============================================================================
// Common Types
// =============================================================================

// Format identifies the container of an encoded animation.
type Format string

const (
	FormatGIF     Format = "gif"
	FormatPNG     Format = "png" // static PNG or APNG
	FormatUnknown Format = "unknown"
)

// DecodedFrame is one fully composited frame of an animation.
type DecodedFrame struct {
	Image   []byte // PNG-encoded pixels
	DelayMs int    // Time on screen before the next frame
}

// FrameSequence is the ordered list of frames in playback order.
type FrameSequence []DecodedFrame

// TotalDurationMs returns the sum of all frame delays.
func (s FrameSequence) TotalDurationMs() int {
	total := 0
	for _, f := range s {
		total += f.DelayMs
	}
	return total
}

// =============================================================================
// Decode Stage Types
// =============================================================================

// DecodeInput contains the encoded animation to decode.
type DecodeInput struct {
	Data []byte // Borrowed read-only
}

// DecodeResult contains the decoded frame sequence.
type DecodeResult struct {
	Format   Format
	Animated bool // False for a PNG without animation control
	Frames   FrameSequence
}

// =============================================================================
// Select Stage Types
// =============================================================================

// SelectInput contains the frames to pick keyframes from.
type SelectInput struct {
	Frames FrameSequence
}

// KeyframeSet holds exactly KeyframeCount stills in time-ascending order.
type KeyframeSet struct {
	Images    [][]byte  // PNG buffers, one per target
	Indices   []int     // Source frame index chosen for each target
	TargetsMs []float64 // Target timestamp for each keyframe
	TotalMs   int       // Total playback duration
}

// =============================================================================
// Resize Stage Types
// =============================================================================

// ResizeInput contains keyframes to downscale.
type ResizeInput struct {
	Images       [][]byte
	MaxDimension int // Longest side in pixels (0 = keep original size)
}

// ResizeResult contains the (possibly) resized keyframes.
type ResizeResult struct {
	Images  [][]byte
	Resized int // Number of distinct images that were scaled down
}

// =============================================================================
// Sheet Stage Types
// =============================================================================

// SheetInput contains parameters for contact-sheet rendering.
type SheetInput struct {
	Keyframes KeyframeSet
	Columns   int // Cells per row (default: 5)
	CellWidth int // Width of one cell in pixels (default: 160)
	Captions  bool
	Theme     SheetTheme
}

// SheetTheme defines contact-sheet styling.
type SheetTheme struct {
	BackgroundColor color.Color
	TextColor       color.Color
	BorderColor     color.Color
	FontPath        string // TrueType font for captions; empty uses the built-in face
}

// DefaultSheetTheme returns a default sheet theme.
func DefaultSheetTheme() SheetTheme {
	return SheetTheme{
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		TextColor:       color.White,
		BorderColor:     color.RGBA{R: 80, G: 80, B: 80, A: 255},
	}
}

// SheetResult contains the rendered contact sheet.
type SheetResult struct {
	Image image.Image
}

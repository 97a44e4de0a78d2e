package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate extraction results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSourceFrame saves one decoded (composited) source frame as PNG.
	SaveSourceFrame(index int, data []byte) error

	// SaveKeyframe saves one selected keyframe as PNG.
	SaveKeyframe(index int, data []byte) error

	// SaveTimelineJSON saves the timeline and selection metadata as JSON.
	SaveTimelineJSON(data []byte) error

	// SaveSheet saves the rendered contact sheet.
	SaveSheet(img image.Image) error
}

// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/stickerframes/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSourceFrame does nothing.
func (s *Sink) SaveSourceFrame(index int, data []byte) error {
	return nil
}

// SaveKeyframe does nothing.
func (s *Sink) SaveKeyframe(index int, data []byte) error {
	return nil
}

// SaveTimelineJSON does nothing.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return nil
}

// SaveSheet does nothing.
func (s *Sink) SaveSheet(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

package mocks

import (
	"image"
	"sync"

	"github.com/user/stickerframes/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	TimelineJSON []byte
	SourceFrames map[int][]byte
	Keyframes    map[int][]byte
	Sheet        image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:      enabled,
		SourceFrames: make(map[int][]byte),
		Keyframes:    make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSourceFrame(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFrames[index] = data
	return nil
}

func (m *DebugSink) SaveKeyframe(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Keyframes[index] = data
	return nil
}

func (m *DebugSink) SaveTimelineJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimelineJSON = data
	return nil
}

func (m *DebugSink) SaveSheet(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sheet = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/stickerframes/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSourceFrame saves a decoded source frame.
func (s *Sink) SaveSourceFrame(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames", "source")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveKeyframe saves a selected keyframe.
func (s *Sink) SaveKeyframe(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames", "keyframes")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("keyframe-%02d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveTimelineJSON saves the timeline and selection metadata as JSON.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "timeline.json")
	return s.fs.WriteFile(path, data)
}

// SaveSheet saves the rendered contact sheet.
func (s *Sink) SaveSheet(img image.Image) error {
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	path := filepath.Join(s.baseDir, "sheet.png")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

// Package summarizer provides summary generation for extraction results.
package summarizer

import (
	"time"

	"github.com/user/stickerframes/pkg/orchestrator"
)

// Summary contains all data collected during one extraction.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `yaml:"generated_at"`

	// Input animation
	Source SourceInfo `yaml:"source"`

	// Extraction settings
	Settings Settings `yaml:"settings"`

	// Selected keyframes, in playback order
	Keyframes []KeyframeInfo `yaml:"keyframes"`

	// Number of distinct keyframes that were downscaled
	Resized int `yaml:"resized"`
}

// SourceInfo describes the decoded input.
type SourceInfo struct {
	Name       string `yaml:"name"`
	Format     string `yaml:"format"`
	Animated   bool   `yaml:"animated"`
	Bytes      int64  `yaml:"bytes"`
	FrameCount int    `yaml:"frame_count"`
	DurationMs int    `yaml:"duration_ms"`
}

// Settings contains the extraction configuration.
type Settings struct {
	MaxDimension int  `yaml:"max_dimension"` // 0 = original size
	Workers      int  `yaml:"workers"`       // 0 = number of CPUs
	Sheet        bool `yaml:"sheet"`
}

// KeyframeInfo describes one output still.
type KeyframeInfo struct {
	Index       int     `yaml:"index"`
	TargetMs    float64 `yaml:"target_ms"`
	SourceFrame int     `yaml:"source_frame"`
	Bytes       int64   `yaml:"bytes"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSourceName sets the file path or URL the animation was read from.
func (b *Builder) WithSourceName(name string) *Builder {
	b.summary.Source.Name = name
	return b
}

// WithSettings sets extraction settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResult copies source and keyframe details from an extraction run.
func (b *Builder) WithResult(result orchestrator.RunResult) *Builder {
	s := b.summary
	s.Source.Format = string(result.Format)
	s.Source.Animated = result.Animated
	s.Source.Bytes = int64(result.SourceBytes)
	s.Source.FrameCount = result.SourceFrames
	s.Source.DurationMs = result.TotalMs
	s.Resized = result.Resized

	s.Keyframes = make([]KeyframeInfo, len(result.Keyframes))
	for i, data := range result.Keyframes {
		k := KeyframeInfo{Index: i, Bytes: int64(len(data))}
		if i < len(result.TargetsMs) {
			k.TargetMs = result.TargetsMs[i]
		}
		if i < len(result.Indices) {
			k.SourceFrame = result.Indices[i]
		}
		s.Keyframes[i] = k
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

// DistinctFrames returns how many different source frames the keyframes show.
func (s *Summary) DistinctFrames() int {
	seen := make(map[int]struct{}, len(s.Keyframes))
	for _, k := range s.Keyframes {
		seen[k.SourceFrame] = struct{}{}
	}
	return len(seen)
}

// KeyframeBytes returns the combined size of all keyframes.
func (s *Summary) KeyframeBytes() int64 {
	var total int64
	for _, k := range s.Keyframes {
		total += k.Bytes
	}
	return total
}

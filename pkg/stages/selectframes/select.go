// Package selectframes picks a fixed number of keyframes spread evenly over playback time.
package selectframes

import (
	"context"

	"github.com/user/stickerframes/pkg/pipeline"
)

// Select returns exactly pipeline.KeyframeCount frames, time-ascending.
//
// Target i sits at i/(KeyframeCount-1) of the total duration; each target maps
// to the first frame whose cumulative end time is after it, or the last frame
// when none is. Consecutive targets may share a frame.
func Select(frames pipeline.FrameSequence) (pipeline.KeyframeSet, error) {
	if len(frames) == 0 {
		return pipeline.KeyframeSet{}, pipeline.ErrEmptySequence
	}

	timeline := pipeline.BuildTimeline(frames)
	targets := timeline.Targets(pipeline.KeyframeCount)

	set := pipeline.KeyframeSet{
		Images:    make([][]byte, 0, pipeline.KeyframeCount),
		Indices:   make([]int, 0, pipeline.KeyframeCount),
		TargetsMs: targets,
		TotalMs:   timeline.TotalMs,
	}

	for _, t := range targets {
		idx := timeline.FrameAt(t)
		set.Images = append(set.Images, frames[idx].Image)
		set.Indices = append(set.Indices, idx)
	}

	pad(&set)
	return set, nil
}

// pad repeats the last keyframe until the set holds KeyframeCount entries.
func pad(set *pipeline.KeyframeSet) {
	if len(set.Images) == 0 {
		return
	}
	last := len(set.Images) - 1
	for len(set.Images) < pipeline.KeyframeCount {
		set.Images = append(set.Images, set.Images[last])
		set.Indices = append(set.Indices, set.Indices[last])
	}
	if n := len(set.TargetsMs); n > 0 {
		for len(set.TargetsMs) < len(set.Images) {
			set.TargetsMs = append(set.TargetsMs, set.TargetsMs[n-1])
		}
	}
}

// Stage wraps Select as a pipeline stage.
type Stage struct{}

// NewStage creates a new select stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute selects keyframes from input.Frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.SelectInput) (pipeline.KeyframeSet, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.KeyframeSet{}, err
	}
	return Select(input.Frames)
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.SelectInput, pipeline.KeyframeSet] = (*Stage)(nil)

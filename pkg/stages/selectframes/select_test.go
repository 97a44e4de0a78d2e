package selectframes

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/user/stickerframes/pkg/pipeline"
)

// framesWithDelays builds a sequence whose image bytes identify the frame index.
func framesWithDelays(delays ...int) pipeline.FrameSequence {
	frames := make(pipeline.FrameSequence, len(delays))
	for i, d := range delays {
		frames[i] = pipeline.DecodedFrame{Image: []byte{byte(i), byte(i >> 8)}, DelayMs: d}
	}
	return frames
}

func uniform(n, delay int) pipeline.FrameSequence {
	delays := make([]int, n)
	for i := range delays {
		delays[i] = delay
	}
	return framesWithDelays(delays...)
}

func TestSelect_UniformTenFrames(t *testing.T) {
	set, err := Select(uniform(10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(set.Indices, expected) {
		t.Errorf("expected %v, got %v", expected, set.Indices)
	}
	if set.TotalMs != 1000 {
		t.Errorf("expected total 1000, got %d", set.TotalMs)
	}
}

func TestSelect_UniformTwentyFrames(t *testing.T) {
	set, err := Select(uniform(20, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Targets are 0, 111.1, 222.2, ... 1000 over cumulative ends 50, 100, ... 1000.
	expected := []int{0, 2, 4, 6, 8, 11, 13, 15, 17, 19}
	if !reflect.DeepEqual(set.Indices, expected) {
		t.Errorf("expected %v, got %v", expected, set.Indices)
	}
}

func TestSelect_SingleFrame(t *testing.T) {
	set, err := Select(framesWithDelays(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(set.Images) != pipeline.KeyframeCount {
		t.Fatalf("expected %d images, got %d", pipeline.KeyframeCount, len(set.Images))
	}
	for i, img := range set.Images {
		if !bytes.Equal(img, []byte{0, 0}) {
			t.Errorf("keyframe %d is not the only frame", i)
		}
	}
}

func TestSelect_ZeroTotalDuration(t *testing.T) {
	set, err := Select(framesWithDelays(0, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every target is 0 and no cumulative end exceeds it.
	for i, idx := range set.Indices {
		if idx != 2 {
			t.Errorf("keyframe %d: expected last frame, got %d", i, idx)
		}
	}
}

func TestSelect_LongHeadFrame(t *testing.T) {
	set, err := Select(framesWithDelays(900, 50, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Targets below 900ms land on frame 0; 1000ms is the end and maps to the last frame.
	expected := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 2}
	if !reflect.DeepEqual(set.Indices, expected) {
		t.Errorf("expected %v, got %v", expected, set.Indices)
	}
}

func TestSelect_FewerFramesThanTargets(t *testing.T) {
	set, err := Select(framesWithDelays(100, 100, 110))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(set.Images) != pipeline.KeyframeCount {
		t.Fatalf("expected %d images, got %d", pipeline.KeyframeCount, len(set.Images))
	}
	expected := []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 2}
	if !reflect.DeepEqual(set.Indices, expected) {
		t.Errorf("expected %v, got %v", expected, set.Indices)
	}
}

func TestSelect_ManyFrames(t *testing.T) {
	set, err := Select(uniform(500, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(set.Images) != pipeline.KeyframeCount {
		t.Fatalf("expected %d images, got %d", pipeline.KeyframeCount, len(set.Images))
	}
	if set.Indices[0] != 0 || set.Indices[9] != 499 {
		t.Errorf("expected first 0 and last 499, got %d and %d", set.Indices[0], set.Indices[9])
	}
}

func TestSelect_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(60)
		delays := make([]int, n)
		for i := range delays {
			delays[i] = rng.Intn(300)
		}
		frames := framesWithDelays(delays...)

		set, err := Select(frames)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		if len(set.Images) != pipeline.KeyframeCount || len(set.Indices) != pipeline.KeyframeCount {
			t.Fatalf("trial %d: expected %d keyframes, got %d", trial, pipeline.KeyframeCount, len(set.Images))
		}
		if set.Indices[0] != firstNonZero(delays) {
			t.Errorf("trial %d: first keyframe %d, expected %d", trial, set.Indices[0], firstNonZero(delays))
		}
		if set.Indices[9] != n-1 {
			t.Errorf("trial %d: last keyframe %d, expected %d", trial, set.Indices[9], n-1)
		}
		for i := 1; i < len(set.Indices); i++ {
			if set.Indices[i] < set.Indices[i-1] {
				t.Errorf("trial %d: indices not ascending: %v", trial, set.Indices)
				break
			}
		}
		for i, idx := range set.Indices {
			if !bytes.Equal(set.Images[i], frames[idx].Image) {
				t.Errorf("trial %d: image %d does not match frame %d", trial, i, idx)
			}
		}
	}
}

// firstNonZero returns the frame selected at t=0: the first with a positive delay, else the last.
func firstNonZero(delays []int) int {
	for i, d := range delays {
		if d > 0 {
			return i
		}
	}
	return len(delays) - 1
}

func TestSelect_Deterministic(t *testing.T) {
	frames := framesWithDelays(30, 0, 70, 10, 10, 200, 40)

	first, err := Select(frames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Select(frames)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("selection changed between runs: %v vs %v", first.Indices, again.Indices)
		}
	}
}

func TestSelect_Empty(t *testing.T) {
	if _, err := Select(nil); !errors.Is(err, pipeline.ErrEmptySequence) {
		t.Errorf("expected ErrEmptySequence, got %v", err)
	}
}

func TestPad_KeepsParallelSlicesAligned(t *testing.T) {
	tests := []struct {
		name    string
		targets []float64
	}{
		{"full targets", []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"short targets", []float64{0, 10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := pipeline.KeyframeSet{
				Images:    [][]byte{{0}, {1}, {2}},
				Indices:   []int{0, 1, 2},
				TargetsMs: append([]float64(nil), tt.targets...),
			}
			pad(&set)

			if len(set.Images) != pipeline.KeyframeCount {
				t.Errorf("expected %d images, got %d", pipeline.KeyframeCount, len(set.Images))
			}
			if len(set.Indices) != pipeline.KeyframeCount {
				t.Errorf("expected %d indices, got %d", pipeline.KeyframeCount, len(set.Indices))
			}
			if len(set.TargetsMs) != pipeline.KeyframeCount {
				t.Errorf("expected %d targets, got %d", pipeline.KeyframeCount, len(set.TargetsMs))
			}
		})
	}
}

func TestSelect_TargetsMatchKeyframeCount(t *testing.T) {
	set, err := Select(uniform(3, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.TargetsMs) != pipeline.KeyframeCount {
		t.Errorf("expected %d targets, got %d", pipeline.KeyframeCount, len(set.TargetsMs))
	}
}

func TestStage_Execute(t *testing.T) {
	set, err := NewStage().Execute(context.Background(), pipeline.SelectInput{Frames: uniform(10, 100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Images) != pipeline.KeyframeCount {
		t.Errorf("expected %d images, got %d", pipeline.KeyframeCount, len(set.Images))
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewStage().Execute(ctx, pipeline.SelectInput{Frames: uniform(2, 10)}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

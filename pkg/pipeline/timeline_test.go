package pipeline

import (
	"reflect"
	"testing"
)

func TestBuildTimeline(t *testing.T) {
	tl := BuildTimeline(FrameSequence{{DelayMs: 30}, {DelayMs: 0}, {DelayMs: 70}})

	if !reflect.DeepEqual(tl.Cumulative, []int{30, 30, 100}) {
		t.Errorf("unexpected cumulative: %v", tl.Cumulative)
	}
	if tl.TotalMs != 100 {
		t.Errorf("expected total 100, got %d", tl.TotalMs)
	}
}

func TestTimeline_FrameAt(t *testing.T) {
	tl := BuildTimeline(FrameSequence{{DelayMs: 30}, {DelayMs: 0}, {DelayMs: 70}})

	tests := []struct {
		t    float64
		want int
	}{
		{0, 0},
		{29.9, 0},
		{30, 2}, // zero-delay frame 1 is never reached
		{99, 2},
		{100, 2},
		{1000, 2},
	}

	for _, tt := range tests {
		if got := tl.FrameAt(tt.t); got != tt.want {
			t.Errorf("FrameAt(%v) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestTimeline_Targets(t *testing.T) {
	tl := Timeline{TotalMs: 900}

	got := tl.Targets(KeyframeCount)
	want := []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900}
	if len(got) != len(want) {
		t.Fatalf("expected %d targets, got %d", len(want), len(got))
	}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("target %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if single := tl.Targets(1); len(single) != 1 || single[0] != 0 {
		t.Errorf("expected [0], got %v", single)
	}
}

func TestFrameSequence_TotalDurationMs(t *testing.T) {
	if got := (FrameSequence{}).TotalDurationMs(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := (FrameSequence{{DelayMs: 40}, {DelayMs: 60}}).TotalDurationMs(); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

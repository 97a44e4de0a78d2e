package pipeline

// Timeline maps playback time to frame indices.
// It is derived from a FrameSequence for the duration of one selection.
type Timeline struct {
	Cumulative []int // Elapsed time at the end of each frame
	TotalMs    int
}

// BuildTimeline computes cumulative end times for every frame.
func BuildTimeline(frames FrameSequence) Timeline {
	cumulative := make([]int, len(frames))
	elapsed := 0
	for i, f := range frames {
		elapsed += f.DelayMs
		cumulative[i] = elapsed
	}
	return Timeline{Cumulative: cumulative, TotalMs: elapsed}
}

// FrameAt returns the smallest frame index whose end time lies after t.
// Times at or past the end of the animation map to the last frame.
func (tl Timeline) FrameAt(t float64) int {
	for i, end := range tl.Cumulative {
		if t < float64(end) {
			return i
		}
	}
	return len(tl.Cumulative) - 1
}

// Targets returns n timestamps evenly spaced over [0, TotalMs], both ends included.
func (tl Timeline) Targets(n int) []float64 {
	targets := make([]float64, n)
	if n == 1 {
		return targets
	}
	for i := range targets {
		targets[i] = float64(i) / float64(n-1) * float64(tl.TotalMs)
	}
	return targets
}

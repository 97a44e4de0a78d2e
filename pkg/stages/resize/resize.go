// Package resize implements the optional keyframe downscaling stage.
package resize

import (
	"context"
	"fmt"
	"image"

	"github.com/user/stickerframes/pkg/adapters/framepool"
	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// Stage scales keyframes down so their longest side fits MaxDimension.
type Stage struct {
	renderer ports.Renderer
	pool     *framepool.Pool
	logger   ports.Logger
}

// NewStage creates a new resize stage.
func NewStage(renderer ports.Renderer, pool *framepool.Pool, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		pool:     pool,
		logger:   logger.WithComponent("resize"),
	}
}

// Execute resizes input.Images. Identical buffers are processed once and
// images already within bounds are returned unchanged.
func (s *Stage) Execute(ctx context.Context, input pipeline.ResizeInput) (pipeline.ResizeResult, error) {
	if input.MaxDimension <= 0 {
		return pipeline.ResizeResult{Images: input.Images}, nil
	}

	// Keyframes repeat when the animation has fewer frames than targets.
	firstSeen := make(map[string]int, len(input.Images))
	var (
		pending []image.Image
		slots   []int // input index for each pending image
	)

	for i, data := range input.Images {
		if _, ok := firstSeen[string(data)]; ok {
			continue
		}
		firstSeen[string(data)] = i

		img, err := s.renderer.DecodePNG(data)
		if err != nil {
			return pipeline.ResizeResult{}, fmt.Errorf("decode keyframe %d: %w", i, err)
		}

		w, h, ok := Fit(img.Bounds().Dx(), img.Bounds().Dy(), input.MaxDimension)
		if !ok {
			continue
		}
		pending = append(pending, s.renderer.ResizeImage(img, w, h))
		slots = append(slots, i)
	}

	if len(pending) == 0 {
		return pipeline.ResizeResult{Images: input.Images}, nil
	}

	s.logger.Debug("Resizing %d distinct keyframes to fit %dpx", len(pending), input.MaxDimension)

	encoded, err := s.pool.EncodeAll(ctx, pending)
	if err != nil {
		return pipeline.ResizeResult{}, err
	}

	replaced := make(map[int][]byte, len(slots))
	for j, i := range slots {
		replaced[i] = encoded[j]
	}

	out := make([][]byte, len(input.Images))
	for i, data := range input.Images {
		if r, ok := replaced[firstSeen[string(data)]]; ok {
			out[i] = r
			continue
		}
		out[i] = data
	}

	return pipeline.ResizeResult{Images: out, Resized: len(pending)}, nil
}

// Fit returns the size of a w×h image scaled to fit within max on both sides.
// ok is false when the image already fits.
func Fit(w, h, max int) (int, int, bool) {
	if w <= max && h <= max {
		return w, h, false
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh, true
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max, true
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ResizeInput, pipeline.ResizeResult] = (*Stage)(nil)

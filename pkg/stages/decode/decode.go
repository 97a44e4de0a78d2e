// Package decode implements the frame decoding stage.
package decode

import (
	"context"
	"fmt"

	"github.com/user/stickerframes/pkg/adapters/smartdecoder"
	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// Stage sniffs the container, routes to the matching decoder and returns every frame.
type Stage struct {
	decoder *smartdecoder.Decoder
	logger  ports.Logger
}

// NewStage creates a new decode stage.
func NewStage(decoder *smartdecoder.Decoder, logger ports.Logger) *Stage {
	return &Stage{
		decoder: decoder,
		logger:  logger.WithComponent("decode"),
	}
}

// Execute decodes input.Data into a frame sequence.
func (s *Stage) Execute(ctx context.Context, input pipeline.DecodeInput) (pipeline.DecodeResult, error) {
	result := pipeline.DecodeResult{Format: pipeline.FormatUnknown}

	frames, info, err := s.decoder.Decode(ctx, input.Data)
	result.Format = info.Format
	result.Animated = info.Animated
	if err != nil {
		return result, err
	}

	if len(frames) == 0 {
		return result, fmt.Errorf("%s: %w", info.Format, pipeline.ErrEmptySequence)
	}

	s.logger.Debug("Decoded %d %s frames, %dms total", len(frames), info.Format, frames.TotalDurationMs())

	result.Frames = frames
	return result, nil
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult] = (*Stage)(nil)

// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder.
type FrameDecoder struct {
	DecodeFramesFunc func(ctx context.Context, data []byte) (pipeline.FrameSequence, error)

	// Recorded calls for verification
	Calls int
}

func (m *FrameDecoder) DecodeFrames(ctx context.Context, data []byte) (pipeline.FrameSequence, error) {
	m.Calls++
	if m.DecodeFramesFunc != nil {
		return m.DecodeFramesFunc(ctx, data)
	}
	return nil, nil
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)

package stickerframes

import (
	"context"
	"sync"

	"github.com/user/stickerframes/pkg/adapters/apngdecoder"
	"github.com/user/stickerframes/pkg/adapters/framepool"
	"github.com/user/stickerframes/pkg/adapters/ggrenderer"
	"github.com/user/stickerframes/pkg/adapters/gifdecoder"
	"github.com/user/stickerframes/pkg/adapters/logger"
	"github.com/user/stickerframes/pkg/adapters/nullsink"
	"github.com/user/stickerframes/pkg/adapters/smartdecoder"
	"github.com/user/stickerframes/pkg/orchestrator"
	"github.com/user/stickerframes/pkg/ports"
	"github.com/user/stickerframes/pkg/stages/decode"
	"github.com/user/stickerframes/pkg/stages/resize"
	"github.com/user/stickerframes/pkg/stages/selectframes"
	"github.com/user/stickerframes/pkg/stages/sheet"
)

// Extractor turns animated GIF and APNG buffers into keyframes.
// It is safe for concurrent use.
type Extractor struct {
	orch   *orchestrator.Orchestrator
	config orchestrator.Config
}

// Option customises an Extractor.
type Option func(*options)

type options struct {
	logger ports.Logger
	sink   ports.DebugSink
}

// WithLogger sets the logger. The default discards all messages.
func WithLogger(l ports.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDebugSink sets where intermediate results are written.
func WithDebugSink(s ports.DebugSink) Option {
	return func(o *options) { o.sink = s }
}

// New creates an Extractor wired with the default adapters.
func New(cfg Config, opts ...Option) *Extractor {
	o := options{
		logger: logger.NewNoop(),
		sink:   nullsink.New(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	renderer := ggrenderer.New()
	pool := framepool.New(renderer, cfg.Workers)
	// Every source frame is encoded but only ten survive selection.
	framePool := framepool.New(ggrenderer.NewFast(), cfg.Workers)
	decoder := smartdecoder.New(
		gifdecoder.New(framePool, o.logger),
		apngdecoder.New(framePool, o.logger),
	)

	orch := orchestrator.New(
		decode.NewStage(decoder, o.logger),
		selectframes.NewStage(),
		resize.NewStage(renderer, pool, o.logger),
		sheet.NewStage(renderer, o.sink, o.logger),
		o.sink,
		o.logger,
	)

	return &Extractor{orch: orch, config: cfg.ToOrchestratorConfig()}
}

// Extract runs the full pipeline and returns keyframes with run metadata.
func (e *Extractor) Extract(ctx context.Context, data []byte) (orchestrator.RunResult, error) {
	return e.orch.Run(ctx, data, e.config)
}

// ExtractFrames returns exactly ten PNG keyframes spread over the playback of data.
func (e *Extractor) ExtractFrames(ctx context.Context, data []byte) ([][]byte, error) {
	result, err := e.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	return result.Keyframes, nil
}

var (
	defaultOnce      sync.Once
	defaultExtractor *Extractor
)

// ExtractFrames extracts keyframes with the default configuration.
func ExtractFrames(ctx context.Context, data []byte) ([][]byte, error) {
	defaultOnce.Do(func() {
		defaultExtractor = New(NewConfigBuilder().Build())
	})
	return defaultExtractor.ExtractFrames(ctx, data)
}

// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

// Config contains all configuration for one extraction run.
type Config struct {
	// Resize (0 = keep decoded size)
	MaxDimension int

	// Contact sheet
	SheetEnabled   bool
	SheetColumns   int
	SheetCellWidth int
	SheetCaptions  bool
	SheetFontPath  string

	// Style
	BackgroundColor [4]uint8 // RGBA
	BorderColor     [4]uint8 // RGBA
	TextColor       [4]uint8 // RGBA
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MaxDimension:   0,
		SheetEnabled:   false,
		SheetColumns:   5,
		SheetCellWidth: 160,
		SheetCaptions:  true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
// It holds no per-run state and may be shared by concurrent callers.
type Orchestrator struct {
	decodeStage pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult]
	selectStage pipeline.Stage[pipeline.SelectInput, pipeline.KeyframeSet]
	resizeStage pipeline.Stage[pipeline.ResizeInput, pipeline.ResizeResult]
	sheetStage  pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult]
	sink        ports.DebugSink
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	decodeStage pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult],
	selectStage pipeline.Stage[pipeline.SelectInput, pipeline.KeyframeSet],
	resizeStage pipeline.Stage[pipeline.ResizeInput, pipeline.ResizeResult],
	sheetStage pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		decodeStage: decodeStage,
		selectStage: selectStage,
		resizeStage: resizeStage,
		sheetStage:  sheetStage,
		sink:        sink,
		logger:      logger,
	}
}

// Run extracts keyframes from one encoded animation.
func (o *Orchestrator) Run(ctx context.Context, data []byte, config Config) (RunResult, error) {
	o.logger.Info("Starting extraction of %d bytes", len(data))

	// 1. Sniff and decode
	decoded, err := o.decodeStage.Execute(ctx, pipeline.DecodeInput{Data: data})
	if err != nil {
		o.logger.Error("Failed to decode animation: %s", err)
		return RunResult{}, fmt.Errorf("decode stage: %w", err)
	}
	o.logger.Info("Decoded %s: %d frames, %dms total", decoded.Format, len(decoded.Frames), decoded.Frames.TotalDurationMs())

	if o.sink.Enabled() {
		for i, f := range decoded.Frames {
			o.sink.SaveSourceFrame(i, f.Image)
		}
	}

	// 2. Select keyframes
	keyframes, err := o.selectStage.Execute(ctx, pipeline.SelectInput{Frames: decoded.Frames})
	if err != nil {
		o.logger.Error("Failed to select keyframes: %s", err)
		return RunResult{}, fmt.Errorf("select stage: %w", err)
	}
	o.logger.Info("Selected keyframes from frames %v", keyframes.Indices)

	if o.sink.Enabled() {
		if dump, err := json.MarshalIndent(newTimelineDump(decoded, keyframes), "", "  "); err == nil {
			o.sink.SaveTimelineJSON(dump)
		}
	}

	// 3. Resize (optional)
	resized := 0
	if config.MaxDimension > 0 {
		r, err := o.resizeStage.Execute(ctx, pipeline.ResizeInput{
			Images:       keyframes.Images,
			MaxDimension: config.MaxDimension,
		})
		if err != nil {
			o.logger.Error("Failed to resize keyframes: %s", err)
			return RunResult{}, fmt.Errorf("resize stage: %w", err)
		}
		keyframes.Images = r.Images
		resized = r.Resized
		o.logger.Info("Resized %d keyframes to fit %dpx", r.Resized, config.MaxDimension)
	}

	if o.sink.Enabled() {
		for i, img := range keyframes.Images {
			o.sink.SaveKeyframe(i, img)
		}
	}

	// 4. Contact sheet (optional)
	var sheet image.Image
	if config.SheetEnabled {
		o.logger.Info("Rendering contact sheet")
		s, err := o.sheetStage.Execute(ctx, o.buildSheetInput(config, keyframes))
		if err != nil {
			o.logger.Error("Failed to render contact sheet: %s", err)
			return RunResult{}, fmt.Errorf("sheet stage: %w", err)
		}
		sheet = s.Image
	}

	o.logger.Info("Extraction completed")

	return RunResult{
		Format:       decoded.Format,
		Animated:     decoded.Animated,
		SourceFrames: len(decoded.Frames),
		TotalMs:      keyframes.TotalMs,
		SourceBytes:  len(data),
		Keyframes:    keyframes.Images,
		Indices:      keyframes.Indices,
		TargetsMs:    keyframes.TargetsMs,
		Resized:      resized,
		Sheet:        sheet,
	}, nil
}

func (o *Orchestrator) buildSheetInput(config Config, keyframes pipeline.KeyframeSet) pipeline.SheetInput {
	theme := pipeline.DefaultSheetTheme()
	// Override theme colors if specified
	if config.BackgroundColor != [4]uint8{} {
		theme.BackgroundColor = rgbaFromArray(config.BackgroundColor)
	}
	if config.BorderColor != [4]uint8{} {
		theme.BorderColor = rgbaFromArray(config.BorderColor)
	}
	if config.TextColor != [4]uint8{} {
		theme.TextColor = rgbaFromArray(config.TextColor)
	}
	theme.FontPath = config.SheetFontPath

	return pipeline.SheetInput{
		Keyframes: keyframes,
		Columns:   config.SheetColumns,
		CellWidth: config.SheetCellWidth,
		Captions:  config.SheetCaptions,
		Theme:     theme,
	}
}

func rgbaFromArray(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// timelineDump is the debug view of one selection.
type timelineDump struct {
	Format     pipeline.Format `json:"format"`
	Delays     []int           `json:"delays_ms"`
	Cumulative []int           `json:"cumulative_ms"`
	TotalMs    int             `json:"total_ms"`
	TargetsMs  []float64       `json:"targets_ms"`
	Indices    []int           `json:"indices"`
}

func newTimelineDump(decoded pipeline.DecodeResult, keyframes pipeline.KeyframeSet) timelineDump {
	tl := pipeline.BuildTimeline(decoded.Frames)
	delays := make([]int, len(decoded.Frames))
	for i, f := range decoded.Frames {
		delays[i] = f.DelayMs
	}
	return timelineDump{
		Format:     decoded.Format,
		Delays:     delays,
		Cumulative: tl.Cumulative,
		TotalMs:    tl.TotalMs,
		TargetsMs:  keyframes.TargetsMs,
		Indices:    keyframes.Indices,
	}
}

// RunResult contains the results of an extraction run for callers and summary generation.
type RunResult struct {
	// Source information
	Format       pipeline.Format
	Animated     bool
	SourceFrames int
	SourceBytes  int
	TotalMs      int

	// Keyframes, always pipeline.KeyframeCount entries
	Keyframes [][]byte
	Indices   []int
	TargetsMs []float64
	Resized   int

	// Contact sheet, nil unless enabled
	Sheet image.Image
}

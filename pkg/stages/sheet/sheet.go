// Package sheet implements the contact-sheet stage that tiles keyframes into one image.
package sheet

import (
	"context"
	"fmt"

	"github.com/user/stickerframes/pkg/pipeline"
	"github.com/user/stickerframes/pkg/ports"
)

const (
	// DefaultColumns is the number of cells per row.
	DefaultColumns = 5
	// DefaultCellWidth is the width of one cell in pixels.
	DefaultCellWidth = 160

	padding       = 6
	captionHeight = 22
	captionSize   = 12
)

// Stage renders keyframes into a grid with optional timestamp captions.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new sheet stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("sheet"),
	}
}

// Layout describes the geometry of a contact sheet.
type Layout struct {
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int // Image area only
	RowHeight  int // Image area plus caption band
	Width      int
	Height     int
}

// ComputeLayout sizes a sheet for n images of srcW×srcH.
func ComputeLayout(n, srcW, srcH, columns, cellWidth int, captions bool) Layout {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if columns > n && n > 0 {
		columns = n
	}

	cellHeight := cellWidth
	if srcW > 0 && srcH > 0 {
		cellHeight = cellWidth * srcH / srcW
		if cellHeight < 1 {
			cellHeight = 1
		}
	}

	rowHeight := cellHeight
	if captions {
		rowHeight += captionHeight
	}

	rows := (n + columns - 1) / columns
	return Layout{
		Columns:    columns,
		Rows:       rows,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		RowHeight:  rowHeight,
		Width:      columns*(cellWidth+padding) + padding,
		Height:     rows*(rowHeight+padding) + padding,
	}
}

// Caption returns the label drawn under keyframe i.
func Caption(i int, targetMs float64, frameIndex int) string {
	return fmt.Sprintf("#%d %.0fms f%d", i, targetMs, frameIndex)
}

// Execute renders the contact sheet.
func (s *Stage) Execute(ctx context.Context, input pipeline.SheetInput) (pipeline.SheetResult, error) {
	set := input.Keyframes
	if len(set.Images) == 0 {
		return pipeline.SheetResult{}, pipeline.ErrEmptySequence
	}

	first, err := s.renderer.DecodePNG(set.Images[0])
	if err != nil {
		return pipeline.SheetResult{}, fmt.Errorf("decode keyframe 0: %w", err)
	}

	layout := ComputeLayout(len(set.Images), first.Bounds().Dx(), first.Bounds().Dy(),
		input.Columns, input.CellWidth, input.Captions)

	s.logger.Debug("Rendering %dx%d sheet, %d columns", layout.Width, layout.Height, layout.Columns)

	theme := withDefaults(input.Theme)
	canvas := s.renderer.CreateCanvas(layout.Width, layout.Height, theme.BackgroundColor)

	for i, data := range set.Images {
		select {
		case <-ctx.Done():
			return pipeline.SheetResult{}, ctx.Err()
		default:
		}

		img := first
		if i > 0 {
			img, err = s.renderer.DecodePNG(data)
			if err != nil {
				return pipeline.SheetResult{}, fmt.Errorf("decode keyframe %d: %w", i, err)
			}
		}

		col := i % layout.Columns
		row := i / layout.Columns
		x := padding + col*(layout.CellWidth+padding)
		y := padding + row*(layout.RowHeight+padding)

		canvas.DrawImageScaled(img, x, y, layout.CellWidth, layout.CellHeight)
		canvas.DrawRectStroke(x, y, layout.CellWidth, layout.CellHeight, theme.BorderColor, 1)

		if input.Captions && i < len(set.TargetsMs) && i < len(set.Indices) {
			canvas.DrawText(Caption(i, set.TargetsMs[i], set.Indices[i]),
				x+layout.CellWidth/2, y+layout.CellHeight+captionHeight/2,
				ports.TextStyle{
					FontSize: captionSize,
					FontPath: theme.FontPath,
					Color:    theme.TextColor,
					Align:    ports.AlignCenter,
				})
		}
	}

	result := pipeline.SheetResult{Image: canvas.ToImage()}

	if s.sink.Enabled() {
		s.sink.SaveSheet(result.Image)
	}

	return result, nil
}

// withDefaults fills unset theme colours from pipeline.DefaultSheetTheme.
func withDefaults(theme pipeline.SheetTheme) pipeline.SheetTheme {
	def := pipeline.DefaultSheetTheme()
	if theme.BackgroundColor == nil {
		theme.BackgroundColor = def.BackgroundColor
	}
	if theme.TextColor == nil {
		theme.TextColor = def.TextColor
	}
	if theme.BorderColor == nil {
		theme.BorderColor = def.BorderColor
	}
	return theme
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult] = (*Stage)(nil)

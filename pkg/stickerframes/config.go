// Package stickerframes provides a high-level API for extracting keyframes from animated stickers.
package stickerframes

import (
	"image/color"

	"github.com/user/stickerframes/pkg/orchestrator"
)

// Config represents the configuration for keyframe extraction.
type Config struct {
	// Concurrency
	Workers int // PNG encoding workers (0 = number of CPUs)

	// Output
	MaxDimension int // Longest keyframe side in pixels (0 = keep decoded size)

	// Contact sheet
	Sheet          bool   // Render a contact sheet alongside the keyframes
	SheetColumns   int    // Cells per row
	SheetCellWidth int    // Cell width in pixels
	SheetCaptions  bool   // Draw timestamp captions under each cell
	SheetFontPath  string // TrueType caption font (empty = built-in face)

	// Style
	BackgroundColor color.Color // Sheet background color
	BorderColor     color.Color // Cell border color
	TextColor       color.Color // Caption color
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: defaults(),
	}
}

// defaults returns the default configuration.
func defaults() Config {
	return Config{
		Workers:      0,
		MaxDimension: 0,

		Sheet:          false,
		SheetColumns:   5,
		SheetCellWidth: 160,
		SheetCaptions:  true,

		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},    // #1e1e1e
		BorderColor:     color.RGBA{R: 80, G: 80, B: 80, A: 255},    // #505050
		TextColor:       color.RGBA{R: 255, G: 255, B: 255, A: 255}, // #ffffff
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	if cfg.MaxDimension < 0 {
		cfg.MaxDimension = 0
	}

	// Enforce minimum columns of 1
	if cfg.SheetColumns < 1 {
		cfg.SheetColumns = 1
	}

	if cfg.SheetCellWidth < 16 {
		cfg.SheetCellWidth = 16
	}

	return cfg
}

// WithWorkers sets the number of PNG encoding workers.
func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.config.Workers = workers
	return b
}

// WithMaxDimension sets the longest keyframe side. Use 0 to keep decoded size.
func (b *ConfigBuilder) WithMaxDimension(px int) *ConfigBuilder {
	b.config.MaxDimension = px
	return b
}

// WithSheet enables or disables the contact sheet.
func (b *ConfigBuilder) WithSheet(enabled bool) *ConfigBuilder {
	b.config.Sheet = enabled
	return b
}

// WithSheetColumns sets the number of cells per sheet row.
// Values below 1 will be forced to 1.
func (b *ConfigBuilder) WithSheetColumns(columns int) *ConfigBuilder {
	b.config.SheetColumns = columns
	return b
}

// WithSheetCellWidth sets the sheet cell width in pixels.
// Values below 16 will be forced to 16.
func (b *ConfigBuilder) WithSheetCellWidth(width int) *ConfigBuilder {
	b.config.SheetCellWidth = width
	return b
}

// WithSheetCaptions enables or disables timestamp captions.
func (b *ConfigBuilder) WithSheetCaptions(enabled bool) *ConfigBuilder {
	b.config.SheetCaptions = enabled
	return b
}

// WithSheetFontPath sets the TrueType font used for captions.
func (b *ConfigBuilder) WithSheetFontPath(path string) *ConfigBuilder {
	b.config.SheetFontPath = path
	return b
}

// WithBackgroundColor sets the sheet background color.
func (b *ConfigBuilder) WithBackgroundColor(c color.Color) *ConfigBuilder {
	b.config.BackgroundColor = c
	return b
}

// WithBorderColor sets the cell border color.
func (b *ConfigBuilder) WithBorderColor(c color.Color) *ConfigBuilder {
	b.config.BorderColor = c
	return b
}

// WithTextColor sets the caption color.
func (b *ConfigBuilder) WithTextColor(c color.Color) *ConfigBuilder {
	b.config.TextColor = c
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		MaxDimension: c.MaxDimension,

		SheetEnabled:   c.Sheet,
		SheetColumns:   c.SheetColumns,
		SheetCellWidth: c.SheetCellWidth,
		SheetCaptions:  c.SheetCaptions,
		SheetFontPath:  c.SheetFontPath,

		BackgroundColor: colorToArray(c.BackgroundColor),
		BorderColor:     colorToArray(c.BorderColor),
		TextColor:       colorToArray(c.TextColor),
	}
}

// colorToArray converts color.Color to [4]uint8 array. A nil color maps to the zero array.
func colorToArray(c color.Color) [4]uint8 {
	if c == nil {
		return [4]uint8{}
	}
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

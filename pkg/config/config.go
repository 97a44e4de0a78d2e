// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/stickerframes/pkg/attachment"
	"github.com/user/stickerframes/pkg/stickerframes"
)

// Config represents the full configuration for stickerframes.
type Config struct {
	// Extraction
	Workers      int `yaml:"workers"`
	MaxDimension int `yaml:"max_dimension"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Contact sheet
	Sheet SheetConfig `yaml:"sheet"`

	// Chat attachments
	Attachments AttachmentConfig `yaml:"attachments"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// SheetConfig represents contact sheet options.
type SheetConfig struct {
	Enabled   bool        `yaml:"enabled"`
	Columns   int         `yaml:"columns"`
	CellWidth int         `yaml:"cell_width"`
	Captions  bool        `yaml:"captions"`
	Theme     ThemeConfig `yaml:"theme"`
}

// ThemeConfig represents theming options.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	BorderColor     string `yaml:"border_color"`
	TextColor       string `yaml:"text_color"`
	FontPath        string `yaml:"font_path"`
}

// AttachmentConfig controls how chat attachments are downloaded and attached.
type AttachmentConfig struct {
	HighDetailMessages int   `yaml:"high_detail_messages"`
	MaxImageMessages   int   `yaml:"max_image_messages"`
	FetchTimeoutSec    int   `yaml:"fetch_timeout_sec"`
	MaxDownloadBytes   int64 `yaml:"max_download_bytes"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Workers:      0,
		MaxDimension: 0,
		LogLevel:     "info",

		Sheet: SheetConfig{
			Columns:   5,
			CellWidth: 160,
			Captions:  true,
			Theme: ThemeConfig{
				BackgroundColor: "#1e1e1e",
				BorderColor:     "#505050",
				TextColor:       "#ffffff",
			},
		},

		Attachments: AttachmentConfig{
			HighDetailMessages: attachment.DefaultHighDetailMessages,
			MaxImageMessages:   attachment.DefaultMaxImageMessages,
			FetchTimeoutSec:    30,
			MaxDownloadBytes:   32 << 20,
		},

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative: %d", c.Workers))
	}
	if c.MaxDimension < 0 {
		errs = append(errs, fmt.Errorf("max_dimension must not be negative: %d", c.MaxDimension))
	}
	if c.Sheet.Columns < 1 {
		errs = append(errs, fmt.Errorf("sheet.columns must be at least 1: %d", c.Sheet.Columns))
	}
	for name, hex := range map[string]string{
		"sheet.theme.background_color": c.Sheet.Theme.BackgroundColor,
		"sheet.theme.border_color":     c.Sheet.Theme.BorderColor,
		"sheet.theme.text_color":       c.Sheet.Theme.TextColor,
	} {
		if _, ok := parseHex(hex); hex != "" && !ok {
			errs = append(errs, fmt.Errorf("%s is not a hex colour: %q", name, hex))
		}
	}
	if c.Attachments.MaxImageMessages < 0 || c.Attachments.HighDetailMessages < 0 {
		errs = append(errs, errors.New("attachment message limits must not be negative"))
	}
	if c.Attachments.FetchTimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("attachments.fetch_timeout_sec must not be negative: %d", c.Attachments.FetchTimeoutSec))
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". Invalid input yields black.
func ParseColor(hex string) color.Color {
	c, ok := parseHex(hex)
	if !ok {
		return color.Black
	}
	return c
}

func parseHex(hex string) (color.RGBA, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	digits := make([]uint8, len(hex))
	for i := 0; i < len(hex); i++ {
		v, ok := hexValue(hex[i])
		if !ok {
			return color.RGBA{}, false
		}
		digits[i] = v
	}

	switch len(digits) {
	case 3:
		return color.RGBA{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 255}, true
	case 6:
		return color.RGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: 255}, true
	case 8:
		return color.RGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: digits[6]<<4 | digits[7]}, true
	default:
		return color.RGBA{}, false
	}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ToExtractorConfig converts Config to stickerframes.Config.
func (c Config) ToExtractorConfig() stickerframes.Config {
	return stickerframes.NewConfigBuilder().
		WithWorkers(c.Workers).
		WithMaxDimension(c.MaxDimension).
		WithSheet(c.Sheet.Enabled).
		WithSheetColumns(c.Sheet.Columns).
		WithSheetCellWidth(c.Sheet.CellWidth).
		WithSheetCaptions(c.Sheet.Captions).
		WithSheetFontPath(c.Sheet.Theme.FontPath).
		WithBackgroundColor(ParseColor(c.Sheet.Theme.BackgroundColor)).
		WithBorderColor(ParseColor(c.Sheet.Theme.BorderColor)).
		WithTextColor(ParseColor(c.Sheet.Theme.TextColor)).
		Build()
}

// ToAttachmentOptions converts Config to attachment.Options.
func (c Config) ToAttachmentOptions() attachment.Options {
	return attachment.Options{
		HighDetailMessages: c.Attachments.HighDetailMessages,
		MaxImageMessages:   c.Attachments.MaxImageMessages,
	}
}

// FetchTimeout returns the per-download timeout. Zero disables it.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Attachments.FetchTimeoutSec) * time.Second
}

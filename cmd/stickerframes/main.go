// Package main provides the CLI entry point for stickerframes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/stickerframes/pkg/adapters/filesink"
	"github.com/user/stickerframes/pkg/adapters/ggrenderer"
	"github.com/user/stickerframes/pkg/adapters/httpfetcher"
	"github.com/user/stickerframes/pkg/adapters/logger"
	"github.com/user/stickerframes/pkg/adapters/nullsink"
	"github.com/user/stickerframes/pkg/adapters/osfilesystem"
	"github.com/user/stickerframes/pkg/config"
	"github.com/user/stickerframes/pkg/orchestrator"
	"github.com/user/stickerframes/pkg/ports"
	"github.com/user/stickerframes/pkg/stickerframes"
	"github.com/user/stickerframes/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "stickerframes",
		Usage:       l10n.T("Extract keyframes from animated GIF and APNG stickers"),
		Description: l10n.T("stickerframes decodes an animation and picks ten stills spread evenly over its playback time."),
		Version:     version,
		Commands: []*cli.Command{
			extractCommand(),
			inspectCommand(),
			versionCommand(),
		},
	}
}

// commonFlags are shared by extract and inspect.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Configuration")},
		&cli.IntFlag{Name: "max-dimension", Usage: l10n.T("Longest keyframe side in pixels (0 = original size)"), Category: l10n.T("Keyframes")},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("PNG encoding workers (0 = number of CPUs)"), Category: l10n.T("Keyframes")},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T("Debug")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output"), Category: l10n.T("Debug")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
	}
}

func extractCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output directory for keyframe PNGs (required)"), Category: l10n.T("Output")},
		&cli.BoolFlag{Name: "sheet", Usage: l10n.T("Also write a contact sheet (sheet.png)"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Output execution summary to file (Markdown format)"), Category: l10n.T("Output")},
	}, commonFlags()...)

	return &cli.Command{
		Name:        "extract",
		Usage:       l10n.T("Extract ten keyframes as PNG files"),
		Description: l10n.T("Read an animated GIF or APNG from a file or URL and write keyframe-00.png to keyframe-09.png."),
		ArgsUsage:   "<file|url>",
		Flags:       flags,
		Action:      runExtract,
	}
}

func inspectCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "markdown", Usage: l10n.T("Report format (markdown, yaml)"), Category: l10n.T("Output")},
	}, commonFlags()...)

	return &cli.Command{
		Name:        "inspect",
		Usage:       l10n.T("Print which frames would be selected"),
		Description: l10n.T("Decode an animation and print the keyframe report without writing any image."),
		ArgsUsage:   "<file|url>",
		Flags:       flags,
		Action:      runInspect,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("stickerframes version %s", version))
			return nil
		},
	}
}

// session bundles what both commands need after flag parsing.
type session struct {
	cfg    config.Config
	log    ports.Logger
	fs     *osfilesystem.FileSystem
	input  string
	ctx    context.Context
	cancel context.CancelFunc
}

func newSession(c *cli.Context) (*session, error) {
	input := c.Args().First()
	if input == "" {
		return nil, errors.New(l10n.T("Input argument is required"))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(c.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return &session{
		cfg:    cfg,
		log:    log,
		fs:     osfilesystem.NewWithLimit(cfg.Attachments.MaxDownloadBytes),
		input:  input,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// loadConfig reads --config over the defaults and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", l10n.T("Failed to load config"), err)
		}
		cfg = loaded
	}

	if c.IsSet("max-dimension") {
		cfg.MaxDimension = c.Int("max-dimension")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("sheet") {
		cfg.Sheet.Enabled = c.Bool("sheet")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", l10n.T("Invalid configuration"), err)
	}
	return cfg, nil
}

// readInput loads the animation from a local path or an http(s) URL.
func (s *session) readInput() ([]byte, error) {
	if strings.HasPrefix(s.input, "http://") || strings.HasPrefix(s.input, "https://") {
		f := httpfetcher.New(httpfetcher.Options{
			Timeout:   s.cfg.FetchTimeout(),
			MaxBytes:  s.cfg.Attachments.MaxDownloadBytes,
			UserAgent: "stickerframes/" + version,
		})
		dl, err := f.Fetch(s.ctx, s.input)
		if err != nil {
			return nil, err
		}
		return dl.Data, nil
	}
	return s.fs.ReadFile(s.input)
}

// extract runs the pipeline with the session's configuration.
func (s *session) extract(extra func(*config.Config)) (orchestrator.RunResult, error) {
	cfg := s.cfg
	if extra != nil {
		extra(&cfg)
	}

	var sink ports.DebugSink = nullsink.New()
	if cfg.Debug {
		if err := s.fs.MkdirAll(cfg.DebugDir); err != nil {
			return orchestrator.RunResult{}, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, s.fs, ggrenderer.New())
	}

	data, err := s.readInput()
	if err != nil {
		return orchestrator.RunResult{}, fmt.Errorf("%s: %w", l10n.F("Failed to read %s", s.input), err)
	}

	s.log.Info("Extracting keyframes from %s", s.input)

	ext := stickerframes.New(cfg.ToExtractorConfig(),
		stickerframes.WithLogger(s.log),
		stickerframes.WithDebugSink(sink),
	)
	return ext.Extract(s.ctx, data)
}

func (s *session) summary(result orchestrator.RunResult) *summarizer.Summary {
	return summarizer.NewBuilder().
		WithSourceName(s.input).
		WithSettings(summarizer.Settings{
			MaxDimension: s.cfg.MaxDimension,
			Workers:      s.cfg.Workers,
			Sheet:        s.cfg.Sheet.Enabled,
		}).
		WithResult(result).
		Build()
}

func translate(key string) string {
	return l10n.T(key)
}

func runExtract(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.cancel()

	result, err := s.extract(nil)
	if err != nil {
		return err
	}

	outDir := c.String("output")
	if err := s.fs.MkdirAll(outDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for i, data := range result.Keyframes {
		if err := s.fs.WriteFile(filepath.Join(outDir, fmt.Sprintf("keyframe-%02d.png", i)), data); err != nil {
			return err
		}
	}
	if result.Sheet != nil {
		png, err := ggrenderer.New().EncodePNG(result.Sheet)
		if err != nil {
			return err
		}
		if err := s.fs.WriteFile(filepath.Join(outDir, "sheet.png"), png); err != nil {
			return err
		}
	}
	s.log.Info("Output saved to %s", outDir)

	if path := c.String("summary"); path != "" {
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(translate),
			summarizer.WithVersion(version),
		), s.fs)
		if err := w.Write(path, s.summary(result)); err != nil {
			s.log.Warn("Failed to write summary: %s", err)
		} else {
			s.log.Info("Summary saved to %s", path)
		}
	}

	return nil
}

func runInspect(c *cli.Context) error {
	formatter, err := summarizer.FormatterFor(c.String("format"),
		summarizer.WithTranslator(translate),
		summarizer.WithVersion(version),
	)
	if err != nil {
		return err
	}

	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.cancel()

	result, err := s.extract(func(cfg *config.Config) { cfg.Sheet.Enabled = false })
	if err != nil {
		return err
	}

	return summarizer.NewWriter(formatter, s.fs).WriteTo(c.App.Writer, s.summary(result))
}

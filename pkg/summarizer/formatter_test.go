package summarizer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/stickerframes/pkg/mocks"
)

func fixedSummary() *Summary {
	s := NewBuilder().
		WithSourceName("https://cdn.example.com/wave.png").
		WithSettings(Settings{MaxDimension: 0, Workers: 0, Sheet: true}).
		WithResult(sampleResult()).
		Build()
	s.GeneratedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return s
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(fixedSummary())

	checks := []string{
		"# Keyframe Summary",
		"https://cdn.example.com/wave.png",
		"| Format | GIF |",
		"4.00 KB",
		"| Frames | 3 |",
		"900 ms",
		"| Max Dimension | Original |",
		"| Workers | Auto |",
		"| 9 | 900 ms | 2 | 109 B |",
		"Distinct source frames: 3 / 10",
		"Resized keyframes: 2",
		"2024-01-15 10:30:00 UTC",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translations := map[string]string{
		"Keyframe Summary": "キーフレームサマリー",
		"Frames":           "フレーム数",
	}
	translator := func(key string) string {
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(fixedSummary())

	for _, want := range translations {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(fixedSummary())
	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	original := fixedSummary()
	out := NewYAMLFormatter().Format(original)

	if !strings.Contains(out, "frame_count: 3") {
		t.Errorf("expected snake_case keys, got:\n%s", out)
	}

	parsed, err := ParseYAML([]byte(out))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if parsed.Source != original.Source || len(parsed.Keyframes) != len(original.Keyframes) {
		t.Errorf("summary changed after parsing: %+v", parsed.Source)
	}
	if !parsed.GeneratedAt.Equal(original.GeneratedAt) {
		t.Errorf("GeneratedAt changed: %v", parsed.GeneratedAt)
	}
}

func TestFormatterFor(t *testing.T) {
	for _, name := range []string{"", "markdown", "MD"} {
		if f, err := FormatterFor(name); err != nil {
			t.Errorf("%q: %v", name, err)
		} else if _, ok := f.(*MarkdownFormatter); !ok {
			t.Errorf("%q: expected MarkdownFormatter, got %T", name, f)
		}
	}
	if f, _ := FormatterFor("yaml"); f == nil {
		t.Error("expected a YAML formatter")
	}
	if _, err := FormatterFor("html"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Source.Format })
	if got := f.Format(fixedSummary()); got != "gif" {
		t.Errorf("FormatFunc returned %q", got)
	}
}

func TestWriter(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report" }), fs)

	if err := w.Write("out/summary.md", fixedSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := fs.ReadFile("out/summary.md")
	if err != nil || string(data) != "report" {
		t.Errorf("unexpected file content %q (%v)", data, err)
	}

	var buf bytes.Buffer
	if err := w.WriteTo(&buf, fixedSummary()); err != nil || buf.String() != "report" {
		t.Errorf("WriteTo wrote %q (%v)", buf.String(), err)
	}
}

func TestWriter_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("disk full") }

	if err := NewWriter(NewYAMLFormatter(), fs).Write("s.yaml", fixedSummary()); err == nil {
		t.Error("expected write error")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

package summarizer

import (
	"fmt"
	"io"
	"strings"

	"github.com/user/stickerframes/pkg/ports"
)

// FormatterFor returns the formatter registered under name ("markdown" or "yaml").
func FormatterFor(name string, opts ...MarkdownOption) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "markdown", "md":
		return NewMarkdownFormatter(opts...), nil
	case "yaml", "yml":
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown summary format %q", name)
	}
}

// Writer writes formatted summaries to files.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Write formats the summary and writes it to the specified path.
// The file system creates parent directories as needed.
func (w *Writer) Write(path string, summary *Summary) error {
	if err := w.fs.WriteFile(path, []byte(w.formatter.Format(summary))); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// WriteTo formats the summary to out.
func (w *Writer) WriteTo(out io.Writer, summary *Summary) error {
	if _, err := io.WriteString(out, w.formatter.Format(summary)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

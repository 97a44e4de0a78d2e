package summarizer

import (
	"fmt"
	"strings"
)

// Translator maps an English label to the output language.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) { f.translate = t }
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.version = v }
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Keyframe Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Source.Name != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Input"), s.Source.Name)
	}
	fmt.Fprintf(&b, "| %s | %s |\n", t("Format"), strings.ToUpper(s.Source.Format))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Animated"), t(yesNo(s.Source.Animated)))
	fmt.Fprintf(&b, "| %s | %s |\n", t("File Size"), formatBytes(s.Source.Bytes))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Frames"), s.Source.FrameCount)
	fmt.Fprintf(&b, "| %s | %d ms |\n\n", t("Duration"), s.Source.DurationMs)

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.MaxDimension > 0 {
		fmt.Fprintf(&b, "| %s | %d px |\n", t("Max Dimension"), s.Settings.MaxDimension)
	} else {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Max Dimension"), t("Original"))
	}
	if s.Settings.Workers > 0 {
		fmt.Fprintf(&b, "| %s | %d |\n", t("Workers"), s.Settings.Workers)
	} else {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Workers"), t("Auto"))
	}
	fmt.Fprintf(&b, "| %s | %s |\n\n", t("Contact Sheet"), t(yesNo(s.Settings.Sheet)))

	fmt.Fprintf(&b, "## %s\n\n", t("Keyframes"))
	fmt.Fprintf(&b, "| # | %s | %s | %s |\n|---|---|---|---|\n", t("Target"), t("Source Frame"), t("Size"))
	for _, k := range s.Keyframes {
		fmt.Fprintf(&b, "| %d | %.0f ms | %d | %s |\n", k.Index, k.TargetMs, k.SourceFrame, formatBytes(k.Bytes))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %d / %d\n\n", t("Distinct source frames"), s.DistinctFrames(), len(s.Keyframes))
	if s.Resized > 0 {
		fmt.Fprintf(&b, "%s: %d\n\n", t("Resized keyframes"), s.Resized)
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		footer += fmt.Sprintf(" (stickerframes %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)

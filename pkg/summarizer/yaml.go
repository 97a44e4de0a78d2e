package summarizer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats a Summary as YAML for machine consumption.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format implements Formatter.
func (f *YAMLFormatter) Format(s *Summary) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("error: %q\n", err.Error())
	}
	return string(out)
}

// ParseYAML reads a Summary previously written by YAMLFormatter.
func ParseYAML(data []byte) (*Summary, error) {
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return &s, nil
}

var _ Formatter = (*YAMLFormatter)(nil)

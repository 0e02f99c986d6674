package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nao1215/vidsense/internal/model"
)

// JSONFormatter renders the report JSON itself.
// This format is designed for tool integration and for showing the backend
// response exactly as received, key order included.
//
// Design decision: We reformat the raw bytes with json.Indent instead of
// decoding and re-encoding. Decoding into a map would sort the keys and
// could change number formatting.
type JSONFormatter struct {
	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONFormatterOption configures a JSONFormatter.
type JSONFormatterOption func(*JSONFormatter)

// WithIndent sets the line prefix and indentation string.
func WithIndent(prefix, indent string) JSONFormatterOption {
	return func(f *JSONFormatter) {
		f.indent = true
		f.indentPrefix = prefix
		f.indentString = indent
	}
}

// WithCompact disables indentation.
func WithCompact() JSONFormatterOption {
	return func(f *JSONFormatter) {
		f.indent = false
	}
}

// NewJSONFormatter creates a JSONFormatter. By default the output is
// indented with two spaces and no prefix.
func NewJSONFormatter(opts ...JSONFormatterOption) *JSONFormatter {
	f := &JSONFormatter{
		indent:       true,
		indentPrefix: "",
		indentString: "  ",
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format implements Formatter.
func (f *JSONFormatter) Format(report model.Report) (string, error) {
	// json.Indent keeps trailing whitespace, and many servers end the body
	// with a newline.
	trimmed := bytes.TrimSpace(report)
	if len(trimmed) == 0 {
		return "", model.ErrEmptyReport
	}

	var buf bytes.Buffer
	var err error
	if f.indent {
		err = json.Indent(&buf, trimmed, f.indentPrefix, f.indentString)
	} else {
		err = json.Compact(&buf, trimmed)
	}
	if err != nil {
		return "", fmt.Errorf("failed to format report: %w", err)
	}

	return buf.String(), nil
}

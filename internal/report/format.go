package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/vidsense/internal/model"
)

// Formatter turns a report into display text.
// It has the same method set as form.Formatter, so every formatter in this
// package can be handed to a form.Handler directly.
type Formatter interface {
	Format(report model.Report) (string, error)
}

// Format names an output format.
type Format string

const (
	// FormatJSON is the pretty-printed report JSON.
	FormatJSON Format = "json"

	// FormatMarkdown is a Markdown document.
	FormatMarkdown Format = "markdown"

	// FormatText is a plain text summary.
	FormatText Format = "text"
)

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatMarkdown, FormatText}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// ParseFormat returns the Format named s.
// Matching is case-insensitive and accepts "md" and "simple" as aliases.
// An empty string selects FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "simple":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// NewFormatter returns the formatter for f.
func NewFormatter(f Format) (Formatter, error) {
	switch f {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case FormatText:
		return NewSimpleFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// label returns a display label for a sentiment, for example
// "positive" becomes "Positive". Empty labels become "-".
//
// A new Caser is created per call because cases.Caser keeps state and is
// not safe for concurrent use.
func label(sentiment string) string {
	sentiment = strings.TrimSpace(sentiment)
	if sentiment == "" {
		return "-"
	}
	return cases.Title(language.English).String(sentiment)
}

// percent formats a share in [0, 1] as a percentage.
func percent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// singleLine collapses line breaks so that text fits a table cell.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

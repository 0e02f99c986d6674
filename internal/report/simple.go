package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/vidsense/internal/model"
)

// SimpleFormatter renders human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. The error region already uses the terminal's styling
type SimpleFormatter struct {
	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables the full comment list and topic details.
	verbose bool
}

// SimpleFormatterOption configures a SimpleFormatter.
type SimpleFormatterOption func(*SimpleFormatter)

// WithShowEmpty configures the formatter to show empty sections.
func WithShowEmpty(show bool) SimpleFormatterOption {
	return func(f *SimpleFormatter) {
		f.showEmpty = show
	}
}

// WithVerbose enables verbose output with every comment.
func WithVerbose(verbose bool) SimpleFormatterOption {
	return func(f *SimpleFormatter) {
		f.verbose = verbose
	}
}

// NewSimpleFormatter creates a SimpleFormatter.
func NewSimpleFormatter(opts ...SimpleFormatterOption) *SimpleFormatter {
	f := &SimpleFormatter{
		showEmpty: false,
		verbose:   false,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format implements Formatter.
func (f *SimpleFormatter) Format(report model.Report) (string, error) {
	ar, err := model.ParseAnalysisReport(report)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	f.writeHeader(&sb, ar)
	f.writeStatistics(&sb, ar)
	f.writeWarnings(&sb, ar)
	f.writeKeywords(&sb, ar)
	f.writeTopics(&sb, ar)
	f.writeComments(&sb, ar)
	f.writeFooter(&sb)

	return sb.String(), nil
}

// writeSection writes a section title between rules.
func (f *SimpleFormatter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeHeader writes the report header with video information.
func (f *SimpleFormatter) writeHeader(sb *strings.Builder, ar *model.AnalysisReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     VIDEO SENTIMENT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Video:             %s\n", orDash(ar.Video.URL))
	if ar.Video.DerivedSentiment != nil {
		fmt.Fprintf(sb, "Content Sentiment: %s\n", label(*ar.Video.DerivedSentiment))
	} else {
		sb.WriteString("Content Sentiment: not analyzed\n")
	}
	fmt.Fprintf(sb, "Comments:          %d\n", len(ar.Comments))
	if ar.Conclusion != "" {
		fmt.Fprintf(sb, "Conclusion:        %s\n", ar.Conclusion)
	}
	sb.WriteString("\n")

	if ar.Video.ContentSummary != nil && *ar.Video.ContentSummary != "" {
		f.writeSection(sb, "CONTENT SUMMARY")
		fmt.Fprintf(sb, "  %s\n\n", singleLine(*ar.Video.ContentSummary))
	}
}

// writeStatistics writes the sentiment shares with a bar per label.
func (f *SimpleFormatter) writeStatistics(sb *strings.Builder, ar *model.AnalysisReport) {
	f.writeSection(sb, "SENTIMENT STATISTICS")

	stats := ar.SentimentStatistics
	counts := ar.CountBySentiment()
	rows := []struct {
		name  string
		share float64
	}{
		{"POSITIVE", stats.Positive},
		{"NEGATIVE", stats.Negative},
		{"NEUTRAL", stats.Neutral},
	}
	for _, r := range rows {
		fmt.Fprintf(sb, "  %-9s %6s  %-20s %d comment(s)\n",
			r.name+":", percent(r.share), bar(r.share, 20), counts[strings.ToLower(r.name)])
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  DOMINANT: %s\n\n", label(stats.Dominant()))
}

// writeWarnings writes backend warnings.
func (f *SimpleFormatter) writeWarnings(sb *strings.Builder, ar *model.AnalysisReport) {
	if !ar.HasWarnings() && !f.showEmpty {
		return
	}

	f.writeSection(sb, "WARNINGS")
	if !ar.HasWarnings() {
		sb.WriteString("  No warnings\n\n")
		return
	}
	for _, w := range ar.Warnings {
		fmt.Fprintf(sb, "  [!] %s\n", w)
	}
	sb.WriteString("\n")
}

// writeKeywords writes the keyword cloud.
func (f *SimpleFormatter) writeKeywords(sb *strings.Builder, ar *model.AnalysisReport) {
	if len(ar.KeywordCloud) == 0 && !f.showEmpty {
		return
	}

	f.writeSection(sb, "KEYWORDS")
	if len(ar.KeywordCloud) == 0 {
		sb.WriteString("  No keywords\n\n")
		return
	}
	for _, k := range ar.KeywordCloud {
		fmt.Fprintf(sb, "  %-20s %d\n", k.Text, k.Value)
	}
	sb.WriteString("\n")
}

// writeTopics writes topic names, with details when verbose.
func (f *SimpleFormatter) writeTopics(sb *strings.Builder, ar *model.AnalysisReport) {
	names := ar.TopicNames()
	if len(names) == 0 && !f.showEmpty {
		return
	}

	f.writeSection(sb, "TOPICS")
	if len(names) == 0 {
		sb.WriteString("  No topics\n\n")
		return
	}
	for _, name := range names {
		if f.verbose {
			fmt.Fprintf(sb, "  * %s: %s\n", name, compactJSON(ar.TopicSentiments[name]))
		} else {
			fmt.Fprintf(sb, "  * %s\n", name)
		}
	}
	sb.WriteString("\n")
}

// writeComments writes a per-label sample of comments, or all of them when
// verbose.
func (f *SimpleFormatter) writeComments(sb *strings.Builder, ar *model.AnalysisReport) {
	if len(ar.Comments) == 0 && !f.showEmpty {
		return
	}

	f.writeSection(sb, "COMMENTS")
	if len(ar.Comments) == 0 {
		sb.WriteString("  No comments\n\n")
		return
	}

	shown := 0
	for _, c := range ar.Comments {
		if !f.verbose && shown == 10 {
			break
		}
		fmt.Fprintf(sb, "  [%s] %s\n",
			sentimentIndicator(c.AnalyzedSentiment),
			truncateString(singleLine(c.Text), maxCommentLen))
		shown++
	}
	if rest := len(ar.Comments) - shown; rest > 0 {
		fmt.Fprintf(sb, "  ... and %d more\n", rest)
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (f *SimpleFormatter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by vidsense\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// sentimentIndicator returns a short visual indicator for a label.
func sentimentIndicator(sentiment string) string {
	switch strings.ToLower(sentiment) {
	case model.SentimentPositive:
		return "+"
	case model.SentimentNegative:
		return "-"
	case model.SentimentNeutral:
		return "="
	default:
		return "?"
	}
}

// bar draws share as a bar of at most width characters.
func bar(share float64, width int) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	n := int(share*float64(width) + 0.5)
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package report

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/vidsense/internal/model"
)

// maxCommentLen is the number of runes of a comment shown in a table cell.
const maxCommentLen = 80

// MarkdownFormatter renders reports as Markdown.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownFormatter struct {
	// maxComments limits the comments table. Zero means no limit.
	maxComments int
}

// MarkdownFormatterOption configures a MarkdownFormatter.
type MarkdownFormatterOption func(*MarkdownFormatter)

// WithMaxComments limits the number of comments listed.
func WithMaxComments(n int) MarkdownFormatterOption {
	return func(f *MarkdownFormatter) {
		if n >= 0 {
			f.maxComments = n
		}
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownFormatterOption) *MarkdownFormatter {
	f := &MarkdownFormatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(report model.Report) (string, error) {
	ar, err := model.ParseAnalysisReport(report)
	if err != nil {
		return "", err
	}

	md := markdown.NewMarkdown(io.Discard)

	f.writeHeader(md, ar)
	f.writeSummary(md, ar)
	f.writeStatistics(md, ar)
	f.writeWarnings(md, ar)
	f.writeKeywords(md, ar)
	f.writeTopics(md, ar)
	f.writeComments(md, ar)
	f.writeFooter(md)

	return md.String(), nil
}

// writeHeader writes the title and the video table.
func (f *MarkdownFormatter) writeHeader(md *markdown.Markdown, ar *model.AnalysisReport) {
	md.H1("Video Sentiment Report")
	md.PlainText("")

	url := "-"
	if ar.Video.URL != "" {
		url = "`" + ar.Video.URL + "`"
	}
	derived := "-"
	if ar.Video.DerivedSentiment != nil {
		derived = label(*ar.Video.DerivedSentiment)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Video", url},
			{"Content Sentiment", derived},
			{"Comments Analyzed", strconv.Itoa(len(ar.Comments))},
			{"Dominant Comment Sentiment", label(ar.SentimentStatistics.Dominant())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the conclusion and the content summary.
func (f *MarkdownFormatter) writeSummary(md *markdown.Markdown, ar *model.AnalysisReport) {
	if ar.Conclusion != "" {
		md.H2("Conclusion")
		md.PlainText("")
		md.PlainText(ar.Conclusion)
		md.PlainText("")
	}

	if ar.Video.ContentSummary != nil && *ar.Video.ContentSummary != "" {
		md.H2("Content Summary")
		md.PlainText("")
		md.PlainText(*ar.Video.ContentSummary)
		md.PlainText("")
	}
}

// writeStatistics writes the sentiment table and a pie chart.
func (f *MarkdownFormatter) writeStatistics(md *markdown.Markdown, ar *model.AnalysisReport) {
	md.H2("Sentiment Statistics")
	md.PlainText("")

	stats := ar.SentimentStatistics
	counts := ar.CountBySentiment()
	md.Table(markdown.TableSet{
		Header: []string{"Sentiment", "Share", "Comments"},
		Rows: [][]string{
			{label(model.SentimentPositive), percent(stats.Positive), strconv.Itoa(counts[model.SentimentPositive])},
			{label(model.SentimentNegative), percent(stats.Negative), strconv.Itoa(counts[model.SentimentNegative])},
			{label(model.SentimentNeutral), percent(stats.Neutral), strconv.Itoa(counts[model.SentimentNeutral])},
		},
	})
	md.PlainText("")

	if stats.Positive > 0 || stats.Negative > 0 || stats.Neutral > 0 {
		f.writePieChart(md, stats)
	}
}

// writePieChart writes a mermaid pie chart of the sentiment shares in
// whole percent.
func (f *MarkdownFormatter) writePieChart(md *markdown.Markdown, stats model.SentimentStatistics) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Comment Sentiment Distribution"),
		piechart.WithShowData(true),
	)

	shares := []struct {
		sentiment string
		share     float64
	}{
		{model.SentimentPositive, stats.Positive},
		{model.SentimentNegative, stats.Negative},
		{model.SentimentNeutral, stats.Neutral},
	}
	for _, s := range shares {
		if s.share > 0 {
			chart.LabelAndIntValue(label(s.sentiment), uint64(math.Round(s.share*100)))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeWarnings writes one alert per backend warning.
func (f *MarkdownFormatter) writeWarnings(md *markdown.Markdown, ar *model.AnalysisReport) {
	if !ar.HasWarnings() {
		return
	}

	md.H2("Warnings")
	md.PlainText("")
	for _, w := range ar.Warnings {
		md.Warningf("%s", w)
		md.PlainText("")
	}
}

// writeKeywords writes the keyword cloud table.
func (f *MarkdownFormatter) writeKeywords(md *markdown.Markdown, ar *model.AnalysisReport) {
	md.H2("Keywords")
	md.PlainText("")

	if len(ar.KeywordCloud) == 0 {
		md.PlainText("No keywords extracted.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(ar.KeywordCloud))
	for i, k := range ar.KeywordCloud {
		rows[i] = []string{escapeCell(k.Text), strconv.Itoa(k.Value)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTopics writes topic sentiments with their raw details.
func (f *MarkdownFormatter) writeTopics(md *markdown.Markdown, ar *model.AnalysisReport) {
	names := ar.TopicNames()
	if len(names) == 0 {
		return
	}

	md.H2("Topics")
	md.PlainText("")

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{escapeCell(name), "`" + compactJSON(ar.TopicSentiments[name]) + "`"}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Topic", "Details"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeComments writes the analyzed comments table.
func (f *MarkdownFormatter) writeComments(md *markdown.Markdown, ar *model.AnalysisReport) {
	md.H2("Comments")
	md.PlainText("")

	if len(ar.Comments) == 0 {
		md.PlainText("No comments analyzed.")
		md.PlainText("")
		return
	}

	comments := ar.Comments
	if f.maxComments > 0 && len(comments) > f.maxComments {
		comments = comments[:f.maxComments]
	}

	rows := make([][]string, len(comments))
	for i, c := range comments {
		id := c.ID
		if id == "" {
			id = "-"
		}
		rows[i] = []string{
			escapeCell(id),
			label(c.AnalyzedSentiment),
			escapeCell(truncateString(singleLine(c.Text), maxCommentLen)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Sentiment", "Comment"},
		Rows:   rows,
	})
	md.PlainText("")

	if rest := len(ar.Comments) - len(comments); rest > 0 {
		md.PlainTextf("*%d more comment(s) not shown.*", rest)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (f *MarkdownFormatter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [vidsense](https://github.com/nao1215/vidsense)*")
}

// escapeCell escapes pipes so that text does not break a table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// compactJSON returns raw as compact JSON, or as-is if it does not parse.
func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

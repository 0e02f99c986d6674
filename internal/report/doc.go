// Package report renders analysis reports as text.
//
// This package contains formatters for different output formats:
//   - JSONFormatter: the report JSON, pretty-printed (the default)
//   - MarkdownFormatter: a Markdown document for sharing
//   - SimpleFormatter: a plain text summary for terminal display
//
// Design decision: We separate rendering from the report data structures
// (which are in the model package) so that the submission handler only
// depends on the Formatter interface. The JSON formatter works on any
// report. The Markdown and text formatters decode the report into
// model.AnalysisReport first and fail if it is not a JSON object.
package report

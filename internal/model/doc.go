// Package model defines the data exchanged with the video sentiment
// analysis backend.
//
// This package contains the following main types:
//   - AnalyzeRequest: The body posted to the analyze endpoint
//   - Report: The raw JSON report returned on success
//   - ErrorBody: The JSON body returned on failure
//   - AnalysisReport: A typed, best-effort view of a Report
//
// Design decision: The report is kept as raw JSON because the backend owns
// its schema. Rendering the report verbatim never depends on the typed view;
// only the markdown and text formatters decode it into AnalysisReport.
package model

// Package console binds the analysis form to a terminal.
//
// Each element type implements one of the form element interfaces:
//   - Input and Checkbox hold the values given on the command line or
//     typed at the prompt
//   - Button records whether a new submission may start
//   - Spinner shows a spinner on stderr while a request is pending
//   - Region prints error or report text to a writer
//   - FileRegion replaces the contents of a report file
//
// Prompt reads URLs line by line and submits them one at a time.
package console

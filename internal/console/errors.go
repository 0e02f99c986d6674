package console

import "errors"

var (
	// ErrBusy is returned when the prompt is asked to read while a
	// submission is still running.
	ErrBusy = errors.New("a submission is already running")

	// ErrNoReportPath is returned when a FileRegion has no path.
	ErrNoReportPath = errors.New("report file path is empty")
)

package report

import "errors"

// ErrUnknownFormat is returned when a format name is not recognized.
var ErrUnknownFormat = errors.New("unknown report format: expected json, markdown or text")

package form

import "errors"

var (
	// ErrMissingElement is returned by New when an element handle is nil.
	ErrMissingElement = errors.New("form: every element handle must be set")

	// ErrNoAnalyzer is returned by New when no Analyzer is given.
	ErrNoAnalyzer = errors.New("form: analyzer is required")
)

package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// DefaultErrorMessage is shown when a failed response carries no usable detail.
const DefaultErrorMessage = "Analysis failed."

// ErrEmptyReport is returned when a report holds no JSON value at all.
var ErrEmptyReport = errors.New("empty report")

// AnalyzeRequest is the JSON body posted to the analyze endpoint.
// A new value is built for every submission and never persisted.
type AnalyzeRequest struct {
	// URL is the video URL exactly as entered by the user.
	URL string `json:"url"`

	// ContentAnalysis asks the backend to transcribe and analyze the video
	// itself in addition to its comments.
	ContentAnalysis bool `json:"content_analysis"`
}

// Report is the JSON document returned by a successful analysis.
// It is opaque to the client: the bytes are kept as received so that
// rendering preserves key order and number formatting.
type Report json.RawMessage

// MarshalJSON returns the report bytes unchanged.
func (r Report) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data.
func (r *Report) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// Valid reports whether the report holds a single well-formed JSON value.
func (r Report) Valid() bool {
	return len(bytes.TrimSpace(r)) > 0 && json.Valid(r)
}

// Indent returns the report as JSON text indented with two spaces,
// with no trailing newline.
func (r Report) Indent() (string, error) {
	trimmed := bytes.TrimSpace(r)
	if len(trimmed) == 0 {
		return "", ErrEmptyReport
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ErrorBody is the JSON object returned by the backend on failure.
//
// Detail is kept raw because FastAPI-style backends send a string for
// application errors but an array of objects for request validation errors.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail,omitempty"`
}

// Message returns the detail as display text, or DefaultErrorMessage when the
// detail is missing or empty. Detail values that are not strings are
// returned as compact JSON.
func (b ErrorBody) Message() string {
	raw := bytes.TrimSpace(b.Detail)
	if len(raw) == 0 {
		return DefaultErrorMessage
	}

	switch string(raw) {
	case "null", "false", "0", `""`:
		return DefaultErrorMessage
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return DefaultErrorMessage
		}
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

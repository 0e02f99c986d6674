package form

import (
	"errors"
	"testing"
)

// silentError is an error whose message is empty.
type silentError struct {
	Code int `json:"code"`
}

func (silentError) Error() string { return "" }

// nilPanicError panics when Error is called on a nil receiver.
type nilPanicError struct {
	msg string
}

func (e *nilPanicError) Error() string { return e.msg }

func TestDisplayError(t *testing.T) {
	t.Parallel()

	var typedNil *nilPanicError

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "error with message", input: errors.New("bad url"), want: "Error: bad url"},
		{name: "error without message falls back to JSON", input: silentError{Code: 7}, want: "Error: {\n  \"code\": 7\n}"},
		{name: "structured value", input: map[string]int{"status": 500}, want: "Error: {\n  \"status\": 500\n}"},
		{name: "string value", input: "plain", want: "Error: \"plain\""},
		{name: "unencodable value", input: func() {}, want: ""},
		{name: "nil", input: nil, want: "Error: <nil>"},
		{name: "typed nil error", input: typedNil, want: "Error: null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DisplayError(tt.input)
			if tt.want == "" {
				if len(got) <= len("Error: ") {
					t.Errorf("expected string coercion after prefix, got %q", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("DisplayError() = %q, want %q", got, tt.want)
			}
		})
	}
}

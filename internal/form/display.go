package form

import (
	"encoding/json"
	"fmt"
)

const errorPrefix = "Error: "

// DisplayError converts a failure into the text shown in the error region.
//
// The first rule that applies wins:
//  1. an error with a non-empty message shows "Error: <message>"
//  2. any other non-nil value that encodes to JSON shows the indented JSON
//  3. anything else shows its default string form
func DisplayError(v any) string {
	if err, ok := v.(error); ok {
		if msg := errorMessage(err); msg != "" {
			return errorPrefix + msg
		}
	}

	if v != nil {
		if data, err := json.MarshalIndent(v, "", "  "); err == nil {
			return errorPrefix + string(data)
		}
	}

	return errorPrefix + fmt.Sprint(v)
}

// errorMessage returns err.Error(), or "" when a typed nil error panics.
func errorMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return err.Error()
}

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/vidsense/internal/form"
)

// DefaultPromptText is written before each line is read.
const DefaultPromptText = "video url> "

// Submitter runs one submission. *form.Handler implements it.
type Submitter interface {
	Submit(ctx context.Context) form.Outcome
}

// Summary counts the outcomes of a prompt session.
type Summary struct {
	Reports int
	Errors  int
	Invalid int
}

// Total returns the number of submissions.
func (s Summary) Total() int {
	return s.Reports + s.Errors + s.Invalid
}

// Prompt reads video URLs line by line.
type Prompt struct {
	scanner *bufio.Scanner
	out     io.Writer
	text    string
}

// NewPrompt creates a Prompt reading from in and writing prompts to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		scanner: bufio.NewScanner(in),
		out:     out,
		text:    DefaultPromptText,
	}
}

// Run submits each line as a video URL until input ends, the user types
// "quit" or "exit", or ctx is cancelled. Blank lines are submitted as well
// and produce the validation message.
//
// Submissions never overlap: a line is read only after the previous
// submission returned, and Run fails with ErrBusy if the form's submit
// button is still disabled. Cancellation is checked between lines, so a
// blocked read ends only when the input does.
func (p *Prompt) Run(ctx context.Context, f *Form, s Submitter) (Summary, error) {
	var sum Summary

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if f.Submit.Disabled() {
			return sum, ErrBusy
		}

		if _, err := fmt.Fprint(p.out, p.text); err != nil {
			return sum, err
		}
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return sum, fmt.Errorf("failed to read input: %w", err)
			}
			return sum, nil
		}

		line := strings.TrimSpace(p.scanner.Text())
		if line == "quit" || line == "exit" {
			return sum, nil
		}
		if err := f.URL.Set(line); err != nil {
			return sum, err
		}

		switch s.Submit(ctx) {
		case form.OutcomeReport:
			sum.Reports++
		case form.OutcomeError:
			sum.Errors++
		case form.OutcomeInvalid:
			sum.Invalid++
		}
	}
}

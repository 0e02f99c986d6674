package console

import (
	"io"

	"github.com/nao1215/vidsense/internal/form"
)

// ReportRegion is a text region whose writes can fail.
type ReportRegion interface {
	form.TextRegion
	Err() error
}

// Options describes the terminal the form is bound to.
type Options struct {
	// URL is the initial video URL. It may be empty in interactive mode.
	URL string

	// ContentAnalysis is the initial checkbox state.
	ContentAnalysis bool

	// Stdout receives the report unless ReportFile is set.
	Stdout io.Writer

	// Stderr receives errors and the spinner.
	Stderr io.Writer

	// ReportFile, when set, receives the report instead of Stdout.
	ReportFile string
}

// Form is the set of terminal elements a form.Handler operates on.
type Form struct {
	URL             *Input
	ContentAnalysis *Checkbox
	Submit          *Button
	Spinner         *Spinner
	Error           *Region
	Report          ReportRegion
}

// NewForm creates a Form from opts.
func NewForm(opts Options) (*Form, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	var report ReportRegion = NewRegion(stdout)
	if opts.ReportFile != "" {
		fr, err := NewFileRegion(opts.ReportFile)
		if err != nil {
			return nil, err
		}
		report = fr
	}

	return &Form{
		URL:             NewInput(opts.URL),
		ContentAnalysis: NewCheckbox(opts.ContentAnalysis),
		Submit:          NewButton(),
		Spinner:         NewSpinner(stderr),
		Error:           NewRegion(stderr),
		Report:          report,
	}, nil
}

// Elements returns the handles for form.New.
func (f *Form) Elements() form.Elements {
	return form.Elements{
		URL:             f.URL,
		ContentAnalysis: f.ContentAnalysis,
		Submit:          f.Submit,
		Spinner:         f.Spinner,
		Error:           f.Error,
		Report:          f.Report,
	}
}

// Err returns the first output error of the error or report region.
func (f *Form) Err() error {
	if err := f.Report.Err(); err != nil {
		return err
	}
	return f.Error.Err()
}

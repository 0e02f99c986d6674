package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Input is a text value set by the command line or the prompt.
type Input struct {
	mu       sync.Mutex
	value    string
	disabled bool
}

// NewInput creates an Input holding value.
func NewInput(value string) *Input {
	return &Input{value: value}
}

// Value returns the current value.
func (i *Input) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

// Set replaces the value. It fails with ErrBusy while the input is disabled.
func (i *Input) Set(value string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.disabled {
		return ErrBusy
	}
	i.value = value
	return nil
}

// SetDisabled implements form.TextInput.
func (i *Input) SetDisabled(disabled bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.disabled = disabled
}

// Disabled reports whether the input is disabled.
func (i *Input) Disabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.disabled
}

// Checkbox is a boolean option set by a command line flag.
type Checkbox struct {
	mu       sync.Mutex
	checked  bool
	disabled bool
}

// NewCheckbox creates a Checkbox.
func NewCheckbox(checked bool) *Checkbox {
	return &Checkbox{checked: checked}
}

// Checked implements form.Checkbox.
func (c *Checkbox) Checked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checked
}

// SetDisabled implements form.Checkbox.
func (c *Checkbox) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
}

// Button records whether a submission may be started.
type Button struct {
	mu       sync.Mutex
	disabled bool
}

// NewButton creates an enabled Button.
func NewButton() *Button {
	return &Button{}
}

// SetDisabled implements form.Control.
func (b *Button) SetDisabled(disabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = disabled
}

// Disabled reports whether the button is disabled.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// Spinner is a loading indicator.
// When the output is not a terminal it only records visibility, so that
// piped output stays free of control characters.
type Spinner struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	visible bool
}

// NewSpinner creates a Spinner writing to w. The animation is enabled only
// when w is a terminal.
func NewSpinner(w io.Writer) *Spinner {
	s := &Spinner{}
	if IsTerminal(w) {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
		s.spinner.Suffix = " Analyzing video..."
	}
	return s
}

// SetVisible implements form.Indicator.
func (s *Spinner) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.visible == visible {
		return
	}
	s.visible = visible

	if s.spinner == nil {
		return
	}
	if visible {
		s.spinner.Start()
	} else {
		s.spinner.Stop()
	}
}

// Visible reports whether the spinner is shown.
func (s *Spinner) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Region prints text to a writer.
// Clearing a region prints nothing, since text already written to a
// terminal cannot be taken back.
type Region struct {
	mu   sync.Mutex
	w    io.Writer
	text string
	err  error
}

// NewRegion creates a Region writing to w.
func NewRegion(w io.Writer) *Region {
	return &Region{w: w}
}

// SetText implements form.TextRegion.
func (r *Region) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.text = text
	if text == "" {
		return
	}
	if _, err := fmt.Fprintln(r.w, text); err != nil && r.err == nil {
		r.err = err
	}
}

// Text returns the last text set.
func (r *Region) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Err returns the first write error, if any.
func (r *Region) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// FileRegion replaces the contents of a file with every non-empty text.
// Clearing leaves the file untouched, so a failed submission does not
// overwrite the previous report.
type FileRegion struct {
	mu   sync.Mutex
	path string
	text string
	err  error
}

// NewFileRegion creates a FileRegion for path. Parent directories are
// created on the first write.
func NewFileRegion(path string) (*FileRegion, error) {
	if path == "" {
		return nil, ErrNoReportPath
	}
	return &FileRegion{path: path}, nil
}

// SetText implements form.TextRegion.
func (r *FileRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.text = text
	if text == "" {
		return
	}
	if err := r.write(text); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *FileRegion) write(text string) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(r.path, []byte(text+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// Path returns the report file path.
func (r *FileRegion) Path() string {
	return r.path
}

// Text returns the last text set.
func (r *FileRegion) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Err returns the first write error, if any.
func (r *FileRegion) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS2
// terminals on Windows).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

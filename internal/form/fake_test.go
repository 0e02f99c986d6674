package form

import (
	"context"
	"sync"

	"github.com/nao1215/vidsense/internal/model"
)

// fakeInput is an in-memory TextInput.
type fakeInput struct {
	value    string
	disabled bool
}

func (f *fakeInput) Value() string             { return f.value }
func (f *fakeInput) SetDisabled(disabled bool) { f.disabled = disabled }

// fakeCheckbox is an in-memory Checkbox.
type fakeCheckbox struct {
	checked  bool
	disabled bool
}

func (f *fakeCheckbox) Checked() bool             { return f.checked }
func (f *fakeCheckbox) SetDisabled(disabled bool) { f.disabled = disabled }

// fakeControl is an in-memory Control.
type fakeControl struct {
	disabled bool
	toggles  int
}

func (f *fakeControl) SetDisabled(disabled bool) {
	f.disabled = disabled
	f.toggles++
}

// fakeIndicator is an in-memory Indicator.
type fakeIndicator struct {
	visible bool
	toggles int
}

func (f *fakeIndicator) SetVisible(visible bool) {
	f.visible = visible
	f.toggles++
}

// fakeRegion is an in-memory TextRegion that keeps every write.
type fakeRegion struct {
	text    string
	history []string
}

func (f *fakeRegion) SetText(text string) {
	f.text = text
	f.history = append(f.history, text)
}

// fakeForm bundles a full set of fake elements.
type fakeForm struct {
	url      *fakeInput
	checkbox *fakeCheckbox
	button   *fakeControl
	spinner  *fakeIndicator
	errorOut *fakeRegion
	report   *fakeRegion
}

func newFakeForm(url string, contentAnalysis bool) *fakeForm {
	return &fakeForm{
		url:      &fakeInput{value: url},
		checkbox: &fakeCheckbox{checked: contentAnalysis},
		button:   &fakeControl{},
		spinner:  &fakeIndicator{},
		errorOut: &fakeRegion{},
		report:   &fakeRegion{},
	}
}

func (f *fakeForm) elements() Elements {
	return Elements{
		URL:             f.url,
		ContentAnalysis: f.checkbox,
		Submit:          f.button,
		Spinner:         f.spinner,
		Error:           f.errorOut,
		Report:          f.report,
	}
}

// busy reports whether every element is in the busy configuration.
func (f *fakeForm) busy() bool {
	return f.url.disabled && f.checkbox.disabled && f.button.disabled && f.spinner.visible
}

// idle reports whether every element is in the idle configuration.
func (f *fakeForm) idle() bool {
	return !f.url.disabled && !f.checkbox.disabled && !f.button.disabled && !f.spinner.visible
}

// fakeAnalyzer records requests and delegates to fn.
type fakeAnalyzer struct {
	mu       sync.Mutex
	calls    int
	requests []model.AnalyzeRequest
	fn       func(ctx context.Context, req model.AnalyzeRequest) (model.Report, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) (model.Report, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.fn == nil {
		return model.Report(`{}`), nil
	}
	return f.fn(ctx, req)
}

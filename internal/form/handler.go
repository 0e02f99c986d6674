package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nao1215/vidsense/internal/model"
)

// ValidationMessage is shown when the URL input is empty.
const ValidationMessage = "Please enter a video URL."

// Analyzer sends one analysis request and returns the raw report.
// Implementations report server-side failures as errors whose message is
// the text to show the user.
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalyzeRequest) (model.Report, error)
}

// Formatter turns a report into the text written to the report region.
type Formatter interface {
	Format(report model.Report) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(report model.Report) (string, error)

// Format calls f(report).
func (f FormatterFunc) Format(report model.Report) (string, error) {
	return f(report)
}

// IndentFormatter renders the report as JSON indented with two spaces.
// It is the default Formatter.
var IndentFormatter Formatter = FormatterFunc(func(report model.Report) (string, error) {
	return report.Indent()
})

// Handler runs submissions against a fixed set of elements.
type Handler struct {
	elements  Elements
	analyzer  Analyzer
	formatter Formatter
	logger    *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures a Handler.
type Option func(*Handler)

// WithFormatter replaces the default IndentFormatter.
func WithFormatter(f Formatter) Option {
	return func(h *Handler) {
		if f != nil {
			h.formatter = f
		}
	}
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Handler in the idle state.
// The elements are not touched until the first Submit.
func New(elements Elements, analyzer Analyzer, opts ...Option) (*Handler, error) {
	if err := elements.validate(); err != nil {
		return nil, err
	}
	if analyzer == nil {
		return nil, ErrNoAnalyzer
	}

	h := &Handler{
		elements:  elements,
		analyzer:  analyzer,
		formatter: IndentFormatter,
		logger:    slog.Default(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// State returns the current UI state. It is safe to call from any goroutine.
func (h *Handler) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Submit runs one submission and reports which path it took.
//
// An empty URL shows ValidationMessage and returns OutcomeInvalid without
// entering the busy state. Otherwise the elements are switched to busy before
// the request is sent, the report or the error message is rendered, and the
// elements are switched back to idle on every path.
func (h *Handler) Submit(ctx context.Context) Outcome {
	h.elements.Error.SetText("")
	h.elements.Report.SetText("")

	url := h.elements.URL.Value()
	contentAnalysis := h.elements.ContentAnalysis.Checked()

	if url == "" {
		h.elements.Error.SetText(ValidationMessage)
		return OutcomeInvalid
	}

	h.setState(StateBusy)
	defer h.setState(StateIdle)

	text, err := h.analyze(ctx, model.AnalyzeRequest{
		URL:             url,
		ContentAnalysis: contentAnalysis,
	})
	if err != nil {
		h.logger.Error("analysis failed",
			"url", url,
			"contentAnalysis", contentAnalysis,
			"error", err,
		)
		h.elements.Error.SetText(DisplayError(err))
		return OutcomeError
	}

	h.elements.Report.SetText(text)
	return OutcomeReport
}

// analyze sends the request and formats the report.
func (h *Handler) analyze(ctx context.Context, req model.AnalyzeRequest) (string, error) {
	h.logger.Debug("sending analysis request",
		"url", req.URL,
		"contentAnalysis", req.ContentAnalysis,
	)

	report, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		return "", err
	}
	return h.formatter.Format(report)
}

// setState applies s to every element and records it.
func (h *Handler) setState(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	busy := s == StateBusy
	h.elements.URL.SetDisabled(busy)
	h.elements.ContentAnalysis.SetDisabled(busy)
	h.elements.Submit.SetDisabled(busy)
	h.elements.Spinner.SetVisible(busy)
	h.state = s
}

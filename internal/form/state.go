package form

// State is the UI condition of a Handler.
type State int

const (
	// StateIdle means inputs and the submit control are enabled and the
	// loading indicator is hidden.
	StateIdle State = iota

	// StateBusy means a request is in flight: inputs and the submit control
	// are disabled and the loading indicator is visible.
	StateBusy
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Outcome tells which path a submission took.
type Outcome int

const (
	// OutcomeInvalid means the URL was empty and nothing was sent.
	OutcomeInvalid Outcome = iota

	// OutcomeReport means a report was rendered.
	OutcomeReport

	// OutcomeError means the request or the rendering failed and an error
	// message was shown.
	OutcomeError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeReport:
		return "report"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

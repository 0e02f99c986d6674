package form

// TextInput is a single-line text field.
type TextInput interface {
	Value() string
	SetDisabled(disabled bool)
}

// Checkbox is a boolean option.
type Checkbox interface {
	Checked() bool
	SetDisabled(disabled bool)
}

// Control is an element that can only be enabled or disabled, such as the
// submit button.
type Control interface {
	SetDisabled(disabled bool)
}

// Indicator is a loading indicator that can be shown or hidden.
type Indicator interface {
	SetVisible(visible bool)
}

// TextRegion is an output area whose whole text is replaced on every write.
type TextRegion interface {
	SetText(text string)
}

// Elements groups the handles a Handler operates on.
// All fields are required.
type Elements struct {
	URL             TextInput
	ContentAnalysis Checkbox
	Submit          Control
	Spinner         Indicator
	Error           TextRegion
	Report          TextRegion
}

// validate returns ErrMissingElement if any handle is nil.
func (e Elements) validate() error {
	if e.URL == nil || e.ContentAnalysis == nil || e.Submit == nil ||
		e.Spinner == nil || e.Error == nil || e.Report == nil {
		return ErrMissingElement
	}
	return nil
}

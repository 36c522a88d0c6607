package uistate

import "fmt"

// EditableField pairs the last saved value of a text field with what the
// user currently has typed.
type EditableField struct {
	Saved   string
	Current string
}

// NewEditableField starts a field whose current value equals saved.
func NewEditableField(saved string) EditableField {
	return EditableField{Saved: saved, Current: saved}
}

// Changed reports whether the field differs from its saved value.
func (f EditableField) Changed() bool {
	return f.Current != f.Saved
}

// Edit replaces the current value.
func (f EditableField) Edit(value string) EditableField {
	f.Current = value
	return f
}

// Commit makes value the new saved baseline.
func (f EditableField) Commit(value string) EditableField {
	f.Saved = value
	return f
}

// Revert drops unsaved edits.
func (f EditableField) Revert() EditableField {
	f.Current = f.Saved
	return f
}

func (f EditableField) String() string {
	if f.Changed() {
		return fmt.Sprintf("%q (saved %q)", f.Current, f.Saved)
	}
	return fmt.Sprintf("%q", f.Current)
}

// LeaveOutcome is the result of asking to leave a screen.
type LeaveOutcome int

const (
	// LeaveNow means the screen may close immediately.
	LeaveNow LeaveOutcome = iota
	// LeaveConfirm means a discard confirmation was requested.
	LeaveConfirm
	// LeaveIgnored means a confirmation is already showing, or the screen
	// has already been left.
	LeaveIgnored
)

func (o LeaveOutcome) String() string {
	switch o {
	case LeaveNow:
		return "leave"
	case LeaveConfirm:
		return "confirm"
	case LeaveIgnored:
		return "ignored"
	default:
		return fmt.Sprintf("LeaveOutcome(%d)", int(o))
	}
}

// DiscardGate stops the user from leaving a screen with unsaved edits
// without confirming first.
type DiscardGate struct {
	Confirming bool
	Left       bool
}

// RequestLeave asks to leave. Without unsaved changes the screen is left
// at once; otherwise one confirmation is requested. Repeated requests while
// the confirmation is showing do not request another.
func (g DiscardGate) RequestLeave(changed bool) (DiscardGate, LeaveOutcome) {
	switch {
	case g.Left, g.Confirming:
		return g, LeaveIgnored
	case changed:
		g.Confirming = true
		return g, LeaveConfirm
	default:
		g.Left = true
		return g, LeaveNow
	}
}

// Confirm discards the edits and leaves.
func (g DiscardGate) Confirm() DiscardGate {
	return DiscardGate{Left: true}
}

// Cancel dismisses the confirmation and stays on the screen.
func (g DiscardGate) Cancel() DiscardGate {
	g.Confirming = false
	return g
}

func (g DiscardGate) String() string {
	switch {
	case g.Left:
		return "left"
	case g.Confirming:
		return "confirming"
	default:
		return "open"
	}
}

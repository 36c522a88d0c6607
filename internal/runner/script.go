package runner

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/screens"
	"github.com/muurk/uistate/internal/uistate"
)

// Script describes one headless run of a screen: it is opened, its first
// load is awaited, then the screen's action is performed once.
type Script struct {
	// Screen is the screen to open.
	Screen screens.Kind

	// OrderID is the order shown by the order screen.
	OrderID backend.OrderID

	// Text is typed into an editor before submitting. Empty submits the
	// text as loaded or restored.
	Text string

	// Toggles are issued together on the settings screen, so they overlap.
	Toggles []Toggle

	// Next is how many further pages the paging screen requests.
	Next int

	// Restored is passed to editor screens as their saved draft.
	Restored uistate.Snapshot
}

// Toggle sets one setting to a value.
type Toggle struct {
	ID    string
	Value bool
}

func (t Toggle) String() string {
	return fmt.Sprintf("%s=%t", t.ID, t.Value)
}

// ParseToggle parses "id=bool".
func ParseToggle(s string) (Toggle, error) {
	id, value, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return Toggle{}, fmt.Errorf("invalid toggle %q: want id=true|false", s)
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return Toggle{}, fmt.Errorf("invalid toggle %q: %w", s, err)
	}
	return Toggle{ID: id, Value: b}, nil
}

// Step status values
const (
	StepSuccess = "success"
	StepFailed  = "failed"
	StepSkipped = "skipped"
)

// Step is one action the runner took and how it ended.
type Step struct {
	// Name is the action, e.g. "load", "submit", "next page 2".
	Name string

	// Status is one of StepSuccess, StepFailed or StepSkipped.
	Status string

	// Message is the screen state after the step, or the reason it failed
	// or was skipped.
	Message string
}

// Result is the outcome of a run.
type Result struct {
	// Success is true when no step failed.
	Success bool

	// Screen is the screen that ran.
	Screen screens.Kind

	// Final is the screen's state when the run ended.
	Final string

	// Steps lists the actions in order.
	Steps []Step

	// Duration is the wall time of the run.
	Duration time.Duration

	// Draft is unsaved editor text to keep for the next run. Nil when
	// there is nothing to keep.
	Draft uistate.Snapshot

	// Finished is true when an editor screen completed its submit.
	Finished bool
}

func (r *Result) addStep(name string, err error, message string) {
	step := Step{Name: name, Status: StepSuccess, Message: message}
	if err != nil {
		step.Status = StepFailed
		step.Message = err.Error()
	}
	r.Steps = append(r.Steps, step)
}

func (r *Result) skip(name, reason string) {
	r.Steps = append(r.Steps, Step{Name: name, Status: StepSkipped, Message: reason})
}

// Failed returns the steps that failed.
func (r *Result) Failed() []Step {
	var failed []Step
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

package uistate

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/result"
)

// SubmitPhase is the phase of a SubmitState.
type SubmitPhase int

const (
	SubmitIdle SubmitPhase = iota
	Submitting
	SubmitError
	Submitted
)

func (p SubmitPhase) String() string {
	switch p {
	case SubmitIdle:
		return "Idle"
	case Submitting:
		return "Submitting"
	case SubmitError:
		return "Error"
	case Submitted:
		return "Submitted"
	default:
		return fmt.Sprintf("SubmitPhase(%d)", int(p))
	}
}

// SubmitState tracks a one-shot action such as cancel or save.
type SubmitState struct {
	Phase SubmitPhase
	Err   error
}

func (s SubmitState) IsIdle() bool       { return s.Phase == SubmitIdle }
func (s SubmitState) IsSubmitting() bool { return s.Phase == Submitting }
func (s SubmitState) IsError() bool      { return s.Phase == SubmitError }
func (s SubmitState) IsSubmitted() bool  { return s.Phase == Submitted }

// Busy reports whether the action's input should be disabled. Anything
// other than Idle counts, so a finished action stays locked until it is
// acknowledged or the screen is left.
func (s SubmitState) Busy() bool {
	return s.Phase != SubmitIdle
}

// Begin moves Idle to Submitting. Any other phase returns false.
func (s SubmitState) Begin() (SubmitState, bool) {
	if !s.IsIdle() {
		return s, false
	}
	return SubmitState{Phase: Submitting}, true
}

// Resolve maps a call outcome to Submitted or Error.
func (s SubmitState) Resolve(err error) SubmitState {
	if err != nil {
		return SubmitState{Phase: SubmitError, Err: err}
	}
	return SubmitState{Phase: Submitted}
}

// Acknowledge dismisses an error, returning to Idle so the action can be
// retried. Other phases are unchanged.
func (s SubmitState) Acknowledge() SubmitState {
	if !s.IsError() {
		return s
	}
	return SubmitState{}
}

func (s SubmitState) String() string {
	if s.Phase == SubmitError {
		return fmt.Sprintf("Error(%v)", s.Err)
	}
	return s.Phase.String()
}

// SubmitSpec describes a submit slot inside a controller's state S.
type SubmitSpec[S any] struct {
	Op string

	// Get returns the slot, or false when the surrounding state is not
	// eligible for submitting (for example not loaded).
	Get  func(S) (SubmitState, bool)
	Set  func(S, SubmitState) S
	Call func(ctx context.Context) result.Result[struct{}]

	// OnSubmitted runs on the loop after the slot moves to Submitted.
	OnSubmitted func(S) S
}

// Submit starts the call if the slot is eligible and Idle. Repeated calls
// while the first is in flight are no-ops. Returns whether a call started.
func Submit[S any](c *Controller[S], spec SubmitSpec[S]) bool {
	cur := c.State()
	slot, ok := spec.Get(cur)
	if !ok {
		return false
	}
	next, ok := slot.Begin()
	if !ok {
		return false
	}
	c.Set(spec.Set(cur, next))

	c.Launch(spec.Op, func(ctx context.Context) Reducer[S] {
		res := spec.Call(ctx)
		return func(s S) (S, bool) {
			slot, ok := spec.Get(s)
			if !ok || !slot.IsSubmitting() {
				return s, false
			}
			s = spec.Set(s, slot.Resolve(res.Err()))
			if res.IsSuccess() && spec.OnSubmitted != nil {
				s = spec.OnSubmitted(s)
			}
			return s, true
		}
	})
	return true
}

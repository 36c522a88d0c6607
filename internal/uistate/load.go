package uistate

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/result"
)

// Phase is the phase of a LoadState.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseLoading
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "Initial"
	case PhaseLoading:
		return "Loading"
	case PhaseError:
		return "Error"
	case PhaseSuccess:
		return "Success"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// LoadState tracks one fetch of T. Data is meaningful only in PhaseSuccess
// and Err only in PhaseError.
type LoadState[T any] struct {
	Phase Phase
	Data  T
	Err   error
}

// Initial returns a state where nothing has been requested yet.
func Initial[T any]() LoadState[T] {
	return LoadState[T]{Phase: PhaseInitial}
}

// Loading returns a state with a fetch in flight.
func Loading[T any]() LoadState[T] {
	return LoadState[T]{Phase: PhaseLoading}
}

// Loaded returns a successful state holding data.
func Loaded[T any](data T) LoadState[T] {
	return LoadState[T]{Phase: PhaseSuccess, Data: data}
}

// Failed returns an error state.
func Failed[T any](err error) LoadState[T] {
	if err == nil {
		err = result.ErrUnknown
	}
	return LoadState[T]{Phase: PhaseError, Err: err}
}

func (s LoadState[T]) IsInitial() bool { return s.Phase == PhaseInitial }
func (s LoadState[T]) IsLoading() bool { return s.Phase == PhaseLoading }
func (s LoadState[T]) IsError() bool   { return s.Phase == PhaseError }
func (s LoadState[T]) IsSuccess() bool { return s.Phase == PhaseSuccess }

// Begin moves to Loading. Returns false, and s unchanged, if a fetch is
// already in flight.
func (s LoadState[T]) Begin() (LoadState[T], bool) {
	if s.IsLoading() {
		return s, false
	}
	return Loading[T](), true
}

// Resolve maps a fetch outcome to Success or Error.
func (s LoadState[T]) Resolve(r result.Result[T]) LoadState[T] {
	v, err := r.Get()
	if err != nil {
		return Failed[T](err)
	}
	return Loaded(v)
}

// WithData replaces the payload of a Success state. Other phases are
// returned unchanged.
func (s LoadState[T]) WithData(data T) LoadState[T] {
	if !s.IsSuccess() {
		return s
	}
	s.Data = data
	return s
}

func (s LoadState[T]) String() string {
	switch s.Phase {
	case PhaseError:
		return fmt.Sprintf("Error(%v)", s.Err)
	case PhaseSuccess:
		if str, ok := any(s.Data).(fmt.Stringer); ok {
			return "Success(" + str.String() + ")"
		}
		return fmt.Sprintf("Success(%T)", s.Data)
	default:
		return s.Phase.String()
	}
}

// Self is a LoadSpec.Get for controllers whose whole state is a LoadState.
func Self[T any](s LoadState[T]) LoadState[T] { return s }

// Replace is the matching LoadSpec.Set.
func Replace[T any](_ LoadState[T], next LoadState[T]) LoadState[T] { return next }

// LoadSpec describes one loadable slot inside a controller's state S.
type LoadSpec[S, T any] struct {
	Op    string
	Get   func(S) LoadState[T]
	Set   func(S, LoadState[T]) S
	Fetch func(ctx context.Context) result.Result[T]

	// OnSuccess runs on the loop right after the slot moves to Success.
	OnSuccess func(S, T) S
}

// Load starts a fetch unless one is already in flight. Valid from any phase;
// from Success or Error it is a reload or retry. Returns whether a fetch
// was started.
func Load[S, T any](c *Controller[S], spec LoadSpec[S, T]) bool {
	cur := c.State()
	next, ok := spec.Get(cur).Begin()
	if !ok {
		return false
	}
	c.Set(spec.Set(cur, next))

	c.Launch(spec.Op, func(ctx context.Context) Reducer[S] {
		res := spec.Fetch(ctx)
		return func(s S) (S, bool) {
			slot := spec.Get(s)
			if !slot.IsLoading() {
				return s, false
			}
			s = spec.Set(s, slot.Resolve(res))
			if res.IsSuccess() && spec.OnSuccess != nil {
				s = spec.OnSuccess(s, res.Value())
			}
			return s, true
		}
	})
	return true
}

package result

import (
	"errors"
	"fmt"
)

// ErrUnknown stands in for a nil cause passed to Failure.
var ErrUnknown = errors.New("result: failure without cause")

// Result is the outcome of a backend call.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Success wraps value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure wraps err in a failed Result.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{err: err}
}

// From converts a (value, error) pair into a Result.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

// FromErr converts an error-only return into a Result with no value.
func FromErr(err error) Result[struct{}] {
	return From(struct{}{}, err)
}

// Catch runs fn and converts its outcome into a Result. A panic inside fn
// becomes a failure instead of crashing the caller's loop.
func Catch[T any](fn func() (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure[T](fmt.Errorf("panic: %v", r))
		}
	}()
	return From(fn())
}

// IsSuccess reports whether the Result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value returns the success value, or the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure cause, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Get unpacks the Result back into Go's (value, error) form.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// String implements fmt.Stringer
func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Success(%v)", r.value)
	}
	return fmt.Sprintf("Error(%v)", r.err)
}

// Map transforms a successful value and passes failures through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Failure[U](r.err)
	}
	return Success(fn(r.value))
}

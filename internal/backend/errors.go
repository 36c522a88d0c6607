package backend

import (
	"errors"
	"fmt"
)

// ErrUnavailable is the transient failure the mock backend reports.
var ErrUnavailable = errors.New("backend unavailable")

// OperationError is the single failure kind seen by controllers. It records
// which operation failed and wraps the underlying cause.
type OperationError struct {
	Op  Op    // Operation that failed
	Err error // Underlying cause (opaque to controllers)
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsOperationError checks if an error is an OperationError
func IsOperationError(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr)
}

// OpOf returns the operation that produced err, if err is an OperationError.
func OpOf(err error) (Op, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Op, true
	}
	return "", false
}

// IsTransient reports whether err is the mock's transient failure. The
// controllers never branch on this; it exists for display and tests.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

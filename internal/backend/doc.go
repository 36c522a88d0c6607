// Package backend defines the asynchronous service boundary the screen
// controllers call through, plus an in-memory mock implementation.
//
// # Layers
//
//   - API: raw operations in Go's (value, error) form. Mock implements it.
//   - Service: wraps an API and returns result.Result values, one method per
//     operation. Every failure, whatever its origin, becomes an
//     *OperationError carrying the operation name and the opaque cause.
//
// Controllers only ever see Service. They never inspect failure causes;
// the cause is carried for display and logging.
//
// # Mock Backend
//
// Mock models the sample app's fake network: each call sleeps for a fixed
// delay (honouring context cancellation) and then either succeeds or fails
// with ErrUnavailable depending on a per-operation switch. Switches can be
// flipped while the program runs:
//
//	mock := backend.NewMock(backend.DefaultMockOptions())
//	mock.SetFailing(backend.OpUpdateSetting, true)
//	svc := backend.NewService(mock, logging.Named("backend"))
//
//	res := svc.UpdateSetting(ctx, "1", false)
//	// res.IsSuccess() == false, errors.Is(res.Err(), backend.ErrUnavailable)
//
// The mock keeps its own settings and nickname values. Their consistency is
// the mock's concern, not the controllers'.
//
// # Thread Safety
//
// Mock and Service are safe for concurrent use.
package backend

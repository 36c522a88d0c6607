package backend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/uistate/internal/logging"
	"github.com/muurk/uistate/internal/result"
)

// Service wraps an API and converts every call into a result.Result.
type Service struct {
	api API
	log *zap.Logger
}

// NewService creates a service over api. A nil logger means silent.
func NewService(api API, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

// FetchItems returns the full item list.
func (s *Service) FetchItems(ctx context.Context) result.Result[[]Item] {
	return call(s, OpFetchItems, func() ([]Item, error) {
		return s.api.Items(ctx)
	})
}

// FetchPage returns the page after cursor; an empty cursor means the first page.
func (s *Service) FetchPage(ctx context.Context, cursor ItemID) result.Result[Page] {
	return call(s, pageOp(cursor), func() (Page, error) {
		return s.api.ItemsAfter(ctx, cursor)
	})
}

// FetchOrder returns one order.
func (s *Service) FetchOrder(ctx context.Context, id OrderID) result.Result[Order] {
	return call(s, OpFetchOrder, func() (Order, error) {
		return s.api.Order(ctx, id)
	})
}

// CancelOrder cancels one order.
func (s *Service) CancelOrder(ctx context.Context, id OrderID) result.Result[struct{}] {
	return call(s, OpCancelOrder, func() (struct{}, error) {
		return struct{}{}, s.api.CancelOrder(ctx, id)
	})
}

// FetchSettings returns the settings list in display order.
func (s *Service) FetchSettings(ctx context.Context) result.Result[[]Setting] {
	return call(s, OpFetchSettings, func() ([]Setting, error) {
		return s.api.Settings(ctx)
	})
}

// UpdateSetting stores a new value for one setting.
func (s *Service) UpdateSetting(ctx context.Context, id SettingID, checked bool) result.Result[struct{}] {
	return call(s, OpUpdateSetting, func() (struct{}, error) {
		return struct{}{}, s.api.UpdateSetting(ctx, id, checked)
	})
}

// AddNote stores a note.
func (s *Service) AddNote(ctx context.Context, text string) result.Result[struct{}] {
	return call(s, OpAddNote, func() (struct{}, error) {
		return struct{}{}, s.api.AddNote(ctx, text)
	})
}

// FetchNickname returns the stored nickname.
func (s *Service) FetchNickname(ctx context.Context) result.Result[string] {
	return call(s, OpFetchNickname, func() (string, error) {
		return s.api.Nickname(ctx)
	})
}

// UpdateNickname stores a new nickname.
func (s *Service) UpdateNickname(ctx context.Context, nickname string) result.Result[struct{}] {
	return call(s, OpUpdateNickname, func() (struct{}, error) {
		return struct{}{}, s.api.UpdateNickname(ctx, nickname)
	})
}

// call runs fn, wraps any failure (including a panic) in an OperationError
// and logs the call.
func call[T any](s *Service, op Op, fn func() (T, error)) result.Result[T] {
	start := time.Now()

	res := result.Catch(fn)
	if !res.IsSuccess() {
		res = result.Failure[T](&OperationError{Op: op, Err: res.Err()})
	}

	logging.LogBackendCall(s.log, string(op), time.Since(start), res.Err())
	return res
}

package backend

import "context"

// API is the raw asynchronous backend. Implementations block until the
// operation completes or ctx is done.
type API interface {
	// Items returns the full item list.
	Items(ctx context.Context) ([]Item, error)

	// ItemsAfter returns the page following cursor. An empty cursor
	// requests the first page.
	ItemsAfter(ctx context.Context, cursor ItemID) (Page, error)

	Order(ctx context.Context, id OrderID) (Order, error)
	CancelOrder(ctx context.Context, id OrderID) error

	Settings(ctx context.Context) ([]Setting, error)
	UpdateSetting(ctx context.Context, id SettingID, checked bool) error

	AddNote(ctx context.Context, text string) error

	Nickname(ctx context.Context) (string, error)
	UpdateNickname(ctx context.Context, nickname string) error
}

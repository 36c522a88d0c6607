package screens

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// Items is a loaded item list.
type Items []backend.Item

func (i Items) String() string {
	return fmt.Sprintf("%d items", len(i))
}

// ItemListState is the state of the plain list screen.
type ItemListState = uistate.LoadState[Items]

// ItemList loads a fixed list of items and allows reloading it.
type ItemList struct {
	base[ItemListState]
}

// NewItemList creates the screen and starts the first load.
func NewItemList(deps Deps) *ItemList {
	s := &ItemList{base: newBase(KindItems, deps, uistate.Initial[Items]())}
	s.Load()
	return s
}

// Load fetches the list. No-op while a fetch is in flight.
func (s *ItemList) Load() bool {
	return uistate.Load(s.Controller, uistate.LoadSpec[ItemListState, Items]{
		Op:  string(backend.OpFetchItems),
		Get: uistate.Self[Items],
		Set: uistate.Replace[Items],
		Fetch: func(ctx context.Context) result.Result[Items] {
			return result.Map(s.svc.FetchItems(ctx), func(v []backend.Item) Items { return Items(v) })
		},
	})
}

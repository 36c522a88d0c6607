package screens

import (
	"context"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// ItemPages is the accumulated paged list.
type ItemPages = uistate.PagedList[backend.Item]

// PagedItemListState is the state of the paging screen. Notice is raised
// when a next-page request fails and stays up until acknowledged.
type PagedItemListState struct {
	List   uistate.LoadState[ItemPages]
	Notice bool
}

func (s PagedItemListState) String() string {
	if s.Notice {
		return s.List.String() + " notice"
	}
	return s.List.String()
}

// PagedItemList loads items page by page, using the last item's ID as
// the cursor.
type PagedItemList struct {
	base[PagedItemListState]
}

// NewPagedItemList creates the screen and starts loading the first page.
func NewPagedItemList(deps Deps) *PagedItemList {
	s := &PagedItemList{base: newBase(KindPaging, deps, PagedItemListState{
		List: uistate.Initial[ItemPages](),
	})}
	s.Load()
	return s
}

func toPage(p backend.Page) uistate.Page[backend.Item] {
	return uistate.Page[backend.Item]{Items: p.Items, HasMore: p.HasMore}
}

// Load fetches the first page, replacing anything loaded so far. A notice
// left from the previous list is cleared when the load starts.
func (s *PagedItemList) Load() bool {
	return uistate.Load(s.Controller, uistate.LoadSpec[PagedItemListState, ItemPages]{
		Op:  string(backend.OpFetchPage),
		Get: func(st PagedItemListState) uistate.LoadState[ItemPages] { return st.List },
		Set: func(st PagedItemListState, l uistate.LoadState[ItemPages]) PagedItemListState {
			st.List = l
			if l.IsLoading() {
				st.Notice = false
			}
			return st
		},
		Fetch: func(ctx context.Context) result.Result[ItemPages] {
			return result.Map(s.svc.FetchPage(ctx, ""), func(p backend.Page) ItemPages {
				return uistate.NewPagedList(toPage(p))
			})
		},
	})
}

// LoadNext fetches the page after the last loaded item. Safe to call on
// every scroll to the end of the list; it only fires when a next page is
// available or the previous attempt failed.
func (s *PagedItemList) LoadNext() bool {
	return uistate.LoadNext(s.Controller, uistate.NextSpec[PagedItemListState, backend.Item, backend.ItemID]{
		Op: string(backend.OpFetchNextPage),
		Get: func(st PagedItemListState) (ItemPages, bool) {
			return st.List.Data, st.List.IsSuccess()
		},
		Set: func(st PagedItemListState, l ItemPages) PagedItemListState {
			st.List = st.List.WithData(l)
			return st
		},
		Cursor: func(last backend.Item) backend.ItemID { return last.ID },
		Fetch: func(ctx context.Context, cursor backend.ItemID) result.Result[uistate.Page[backend.Item]] {
			return result.Map(s.svc.FetchPage(ctx, cursor), toPage)
		},
		OnError: func(st PagedItemListState, err error) PagedItemListState {
			st.Notice = true
			return st
		},
	})
}

// AcknowledgeNotice clears the failed-page notice once it has been shown.
func (s *PagedItemList) AcknowledgeNotice() {
	if !s.State().Notice {
		return
	}
	s.Update(func(st PagedItemListState) PagedItemListState {
		st.Notice = false
		return st
	})
}

// Len returns the number of loaded items.
func (s *PagedItemList) Len() int {
	st := s.State()
	if !st.List.IsSuccess() {
		return 0
	}
	return len(st.List.Data.Items)
}

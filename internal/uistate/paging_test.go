package uistate

import (
	"context"
	"errors"
	"testing"

	"github.com/muurk/uistate/internal/result"
)

type pagedState struct {
	List   LoadState[PagedList[int]]
	Notice bool
}

// pager serves scripted pages and records the cursors it was asked for.
type pager struct {
	cursors []int
	next    result.Result[Page[int]]
}

func (p *pager) fetch(ctx context.Context, cursor int) result.Result[Page[int]] {
	p.cursors = append(p.cursors, cursor)
	return p.next
}

func seq(from, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i
	}
	return out
}

func nextSpec(p *pager) NextSpec[pagedState, int, int] {
	return NextSpec[pagedState, int, int]{
		Op: "fetch_next_page",
		Get: func(s pagedState) (PagedList[int], bool) {
			return s.List.Data, s.List.IsSuccess()
		},
		Set: func(s pagedState, l PagedList[int]) pagedState {
			s.List = s.List.WithData(l)
			return s
		},
		Cursor: func(last int) int { return last },
		Fetch:  p.fetch,
		OnError: func(s pagedState, err error) pagedState {
			s.Notice = true
			return s
		},
	}
}

func loadedPaged(items []int, hasMore bool) pagedState {
	return pagedState{List: Loaded(NewPagedList(Page[int]{Items: items, HasMore: hasMore}))}
}

func TestPagedList_AppendPage(t *testing.T) {
	tests := []struct {
		name    string
		page    Page[int]
		wantLen int
		want    NextPhase
	}{
		{"full page with more", Page[int]{Items: seq(21, 20), HasMore: true}, 40, NextAvailable},
		{"short last page", Page[int]{Items: seq(21, 5), HasMore: false}, 25, NextNone},
		{"empty page claiming more", Page[int]{HasMore: true}, 20, NextNone},
		{"empty page", Page[int]{}, 20, NextNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := NewPagedList(Page[int]{Items: seq(1, 20), HasMore: true})
			got := base.AppendPage(tt.page)

			if len(got.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(got.Items), tt.wantLen)
			}
			if got.Next.Phase != tt.want {
				t.Errorf("Next = %v, want %v", got.Next, tt.want)
			}
			if len(base.Items) != 20 {
				t.Error("AppendPage modified the receiver")
			}
		})
	}
}

func TestNewPagedList_Empty(t *testing.T) {
	l := NewPagedList(Page[int]{HasMore: true})
	if l.Next.Phase != NextNone || l.CanLoadNext() {
		t.Errorf("empty first page: %v, want NoNext", l)
	}
}

func TestLoadNext_NoOps(t *testing.T) {
	withNext := func(n NextState) pagedState {
		s := loadedPaged(seq(1, 20), true)
		s.List.Data.Next = n
		return s
	}

	tests := []struct {
		name  string
		state pagedState
	}{
		{"initial", pagedState{List: Initial[PagedList[int]]()}},
		{"loading", pagedState{List: Loading[PagedList[int]]()}},
		{"error", pagedState{List: Failed[PagedList[int]](errBoom)}},
		{"no next", loadedPaged(seq(1, 5), false)},
		{"next loading", withNext(NextLoading())},
		{"empty list", pagedState{List: Loaded(PagedList[int]{Next: HasNext()})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, exec := newTestController(tt.state)
			p := &pager{}

			if LoadNext(c, nextSpec(p)) {
				t.Error("LoadNext() = true, want no-op")
			}
			if exec.Pending() != 0 {
				t.Errorf("Pending() = %d, want 0", exec.Pending())
			}
		})
	}
}

func TestLoadNext_AppendsInOrder(t *testing.T) {
	c, exec := newTestController(loadedPaged(seq(1, 20), true))
	p := &pager{}

	pages := []Page[int]{
		{Items: seq(21, 20), HasMore: true},
		{Items: seq(41, 20), HasMore: true},
		{Items: seq(61, 5), HasMore: false},
	}
	for _, page := range pages {
		p.next = result.Success(page)
		if !LoadNext(c, nextSpec(p)) {
			t.Fatalf("LoadNext() = false at %v", c.State().List)
		}
		if LoadNext(c, nextSpec(p)) {
			t.Fatal("LoadNext() while next is Loading started a second request")
		}
		exec.RunAll()
	}

	list := c.State().List.Data
	if len(list.Items) != 65 {
		t.Fatalf("len(Items) = %d, want 65", len(list.Items))
	}
	for i, v := range list.Items {
		if v != i+1 {
			t.Fatalf("Items[%d] = %d, want %d", i, v, i+1)
		}
	}
	if list.Next.Phase != NextNone {
		t.Errorf("Next = %v, want NoNext", list.Next)
	}

	wantCursors := []int{20, 40, 60}
	if len(p.cursors) != len(wantCursors) {
		t.Fatalf("cursors = %v, want %v", p.cursors, wantCursors)
	}
	for i := range wantCursors {
		if p.cursors[i] != wantCursors[i] {
			t.Errorf("cursors = %v, want %v", p.cursors, wantCursors)
		}
	}

	if LoadNext(c, nextSpec(p)) {
		t.Error("LoadNext() after NoNext = true")
	}
}

func TestLoadNext_ErrorThenRetry(t *testing.T) {
	c, exec := newTestController(loadedPaged(seq(1, 20), true))
	p := &pager{next: result.Failure[Page[int]](errBoom)}

	LoadNext(c, nextSpec(p))
	exec.RunAll()

	s := c.State()
	if len(s.List.Data.Items) != 20 {
		t.Errorf("items lost on failure: len = %d", len(s.List.Data.Items))
	}
	if s.List.Data.Next.Phase != NextError || !errors.Is(s.List.Data.Next.Err, errBoom) {
		t.Errorf("Next = %v, want Error(boom)", s.List.Data.Next)
	}
	if !s.Notice {
		t.Error("OnError did not raise notice")
	}

	p.next = result.Success(Page[int]{Items: seq(21, 20), HasMore: true})
	if !LoadNext(c, nextSpec(p)) {
		t.Fatal("LoadNext() from next Error = false")
	}
	exec.RunAll()

	if got := c.State().List.Data; len(got.Items) != 40 || got.Next.Phase != NextAvailable {
		t.Errorf("after retry: %v, want items=40 next=HasNext", got)
	}
}

func TestLoadNext_DroppedAfterReload(t *testing.T) {
	c, exec := newTestController(loadedPaged(seq(1, 20), true))
	p := &pager{next: result.Success(Page[int]{Items: seq(21, 20), HasMore: true})}

	LoadNext(c, nextSpec(p))

	f := &fetcher[PagedList[int]]{next: result.Success(NewPagedList(Page[int]{Items: seq(101, 20), HasMore: true}))}
	Load(c, LoadSpec[pagedState, PagedList[int]]{
		Op:    "fetch_page",
		Get:   func(s pagedState) LoadState[PagedList[int]] { return s.List },
		Set:   func(s pagedState, l LoadState[PagedList[int]]) pagedState { s.List = l; return s },
		Fetch: f.fetch,
	})

	// Next-page result lands while the reload is in flight.
	exec.RunNext()
	if !c.State().List.IsLoading() {
		t.Fatalf("State = %v, want Loading", c.State().List)
	}
	exec.RunNext()

	items := c.State().List.Data.Items
	if len(items) != 20 || items[0] != 101 {
		t.Errorf("Items = %v, want 101..120 only", items)
	}
}

func TestNextState_Phases(t *testing.T) {
	tests := []struct {
		state NextState
		want  NextPhase
	}{
		{NoNext(), NextNone},
		{HasNext(), NextAvailable},
		{NextLoading(), NextPending},
		{NextFailed(errBoom), NextError},
	}
	for _, tt := range tests {
		if tt.state.Phase != tt.want {
			t.Errorf("%v.Phase = %v, want %v", tt.state, tt.state.Phase, tt.want)
		}
	}

	list, ok := NewPagedList(Page[int]{Items: []int{1}, HasMore: true}).BeginNext()
	if !ok || list.Next.Phase != NextPending {
		t.Errorf("BeginNext() = %v, %v, want pending", list.Next, ok)
	}
}

func TestNextState_String(t *testing.T) {
	tests := []struct {
		state NextState
		want  string
	}{
		{NoNext(), "NoNext"},
		{HasNext(), "HasNext"},
		{NextLoading(), "Loading"},
		{NextFailed(errBoom), "Error(boom)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

package screens

import (
	"errors"
	"strconv"
	"testing"

	"github.com/muurk/uistate/internal/backend"
)

func TestItemList_LoadsTwentyItems(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	s := NewItemList(h.deps)

	if !s.State().IsLoading() {
		t.Fatalf("State() = %v, want Loading right after construction", s.State())
	}
	h.exec.RunAll()

	st := s.State()
	if !st.IsSuccess() {
		t.Fatalf("State() = %v, want Success", st)
	}
	if len(st.Data) != 20 {
		t.Fatalf("len(items) = %d, want 20", len(st.Data))
	}
	for i, item := range st.Data {
		want := "Item " + strconv.Itoa(i+1)
		if item.Name != want {
			t.Errorf("items[%d].Name = %q, want %q", i, item.Name, want)
		}
	}
}

func TestItemList_SingleFlight(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	s := NewItemList(h.deps)

	for i := 0; i < 3; i++ {
		if s.Load() {
			t.Fatal("Load() while Loading = true")
		}
	}
	h.exec.RunAll()

	if got := h.mock.Calls(backend.OpFetchItems); got != 1 {
		t.Errorf("fetch_items calls = %d, want 1", got)
	}
}

func TestItemList_ErrorThenRetry(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	h.mock.SetFailing(backend.OpFetchItems, true)
	s := NewItemList(h.deps)
	h.exec.RunAll()

	st := s.State()
	if !st.IsError() {
		t.Fatalf("State() = %v, want Error", st)
	}
	if !errors.Is(st.Err, backend.ErrUnavailable) {
		t.Errorf("Err = %v, want ErrUnavailable", st.Err)
	}
	if op, ok := backend.OpOf(st.Err); !ok || op != backend.OpFetchItems {
		t.Errorf("OpOf(Err) = %q, %v", op, ok)
	}

	h.mock.SetFailing(backend.OpFetchItems, false)
	if !s.Load() {
		t.Fatal("Load() from Error = false")
	}
	if !s.State().IsLoading() {
		t.Fatalf("State() = %v, want Loading", s.State())
	}
	h.exec.RunAll()

	if st := s.State(); !st.IsSuccess() || len(st.Data) != 20 {
		t.Errorf("State() = %v, want Success with 20 items", st)
	}
}

func TestItemList_CloseDropsResult(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	s := NewItemList(h.deps)
	s.Close()
	h.exec.RunAll()

	if !s.State().IsLoading() {
		t.Errorf("State() = %v after close, want Loading", s.State())
	}
}

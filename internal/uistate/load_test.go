package uistate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/muurk/uistate/internal/result"
)

var errBoom = errors.New("boom")

// fetcher returns whatever next holds when the task runs.
type fetcher[T any] struct {
	calls int
	next  result.Result[T]
}

func (f *fetcher[T]) fetch(ctx context.Context) result.Result[T] {
	f.calls++
	return f.next
}

func twentyItems() []string {
	items := make([]string, 20)
	for i := range items {
		items[i] = fmt.Sprintf("Item %d", i+1)
	}
	return items
}

func itemsSpec(f *fetcher[[]string]) LoadSpec[LoadState[[]string], []string] {
	return LoadSpec[LoadState[[]string], []string]{
		Op:    "fetch_items",
		Get:   Self[[]string],
		Set:   Replace[[]string],
		Fetch: f.fetch,
	}
}

func TestLoad_Success(t *testing.T) {
	c, exec := newTestController(Initial[[]string]())
	f := &fetcher[[]string]{next: result.Success(twentyItems())}

	if !Load(c, itemsSpec(f)) {
		t.Fatal("Load() = false from Initial")
	}
	if !c.State().IsLoading() {
		t.Fatalf("State() = %v, want Loading", c.State())
	}

	exec.RunAll()

	s := c.State()
	if !s.IsSuccess() {
		t.Fatalf("State() = %v, want Success", s)
	}
	if len(s.Data) != 20 || s.Data[0] != "Item 1" || s.Data[19] != "Item 20" {
		t.Errorf("Data = %v, want Item 1..Item 20", s.Data)
	}
}

func TestLoad_SingleFlight(t *testing.T) {
	c, exec := newTestController(Initial[[]string]())
	f := &fetcher[[]string]{next: result.Success(twentyItems())}

	Load(c, itemsSpec(f))
	for i := 0; i < 5; i++ {
		if Load(c, itemsSpec(f)) {
			t.Fatal("Load() while Loading started a second fetch")
		}
	}
	if exec.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", exec.Pending())
	}
	exec.RunAll()

	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", f.calls)
	}
}

func TestLoad_ErrorThenRetry(t *testing.T) {
	c, exec := newTestController(Initial[[]string]())
	f := &fetcher[[]string]{next: result.Failure[[]string](errBoom)}

	Load(c, itemsSpec(f))
	exec.RunAll()

	s := c.State()
	if !s.IsError() || !errors.Is(s.Err, errBoom) {
		t.Fatalf("State() = %v, want Error(boom)", s)
	}

	f.next = result.Success(twentyItems())
	if !Load(c, itemsSpec(f)) {
		t.Fatal("Load() from Error = false")
	}
	if !c.State().IsLoading() {
		t.Fatalf("State() = %v, want Loading", c.State())
	}
	exec.RunAll()

	if !c.State().IsSuccess() || len(c.State().Data) != 20 {
		t.Errorf("State() = %v, want Success with 20 items", c.State())
	}
}

func TestLoad_ReloadFromSuccess(t *testing.T) {
	c, exec := newTestController(Loaded([]string{"old"}))
	f := &fetcher[[]string]{next: result.Success([]string{"new"})}

	if !Load(c, itemsSpec(f)) {
		t.Fatal("Load() from Success = false")
	}
	exec.RunAll()

	if got := c.State().Data; len(got) != 1 || got[0] != "new" {
		t.Errorf("Data = %v, want [new]", got)
	}
}

func TestLoad_OnSuccess(t *testing.T) {
	type screen struct {
		Load  LoadState[string]
		Field EditableField
	}
	c, exec := newTestController(screen{})
	f := &fetcher[string]{next: result.Success("Compose")}

	spec := LoadSpec[screen, string]{
		Op:    "fetch_nickname",
		Get:   func(s screen) LoadState[string] { return s.Load },
		Set:   func(s screen, l LoadState[string]) screen { s.Load = l; return s },
		Fetch: f.fetch,
		OnSuccess: func(s screen, v string) screen {
			s.Field = NewEditableField(v)
			return s
		},
	}
	Load(c, spec)
	exec.RunAll()

	if got := c.State().Field; got.Saved != "Compose" || got.Changed() {
		t.Errorf("Field = %v, want saved Compose unchanged", got)
	}

	f.next = result.Failure[string](errBoom)
	c.Update(func(s screen) screen { s.Field = s.Field.Edit("x"); return s })
	Load(c, spec)
	exec.RunAll()

	if got := c.State().Field.Current; got != "x" {
		t.Errorf("OnSuccess ran on failure: Current = %q", got)
	}
}

func TestLoad_DroppedWhenNotLoading(t *testing.T) {
	c, exec := newTestController(Initial[[]string]())
	f := &fetcher[[]string]{next: result.Success(twentyItems())}

	Load(c, itemsSpec(f))
	c.Set(Loaded([]string{"replaced"}))
	exec.RunAll()

	if got := c.State().Data; len(got) != 1 || got[0] != "replaced" {
		t.Errorf("late load overwrote state: %v", c.State())
	}
}

func TestLoadState_String(t *testing.T) {
	tests := []struct {
		name  string
		state fmt.Stringer
		want  string
	}{
		{"initial", Initial[int](), "Initial"},
		{"loading", Loading[int](), "Loading"},
		{"error", Failed[int](errBoom), "Error(boom)"},
		{"nil error", Failed[int](nil), "Error(" + result.ErrUnknown.Error() + ")"},
		{"success plain", Loaded(3), "Success(int)"},
		{"success stringer", Loaded(SwitchList{{ID: "1", Checked: true}}), "Success([1:on])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

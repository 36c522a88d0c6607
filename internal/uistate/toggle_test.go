package uistate

import (
	"context"
	"testing"

	"github.com/muurk/uistate/internal/result"
)

type settingsState struct {
	Load   LoadState[SwitchList]
	Failed string
}

// switchBackend fails calls for ids in fail.
type switchBackend struct {
	calls []string
	fail  map[string]bool
}

func (b *switchBackend) update(ctx context.Context, id string, value bool) result.Result[struct{}] {
	b.calls = append(b.calls, id)
	if b.fail[id] {
		return result.Failure[struct{}](errBoom)
	}
	return result.Success(struct{}{})
}

func toggleSpec(b *switchBackend) ToggleSpec[settingsState] {
	return ToggleSpec[settingsState]{
		Op:   "update_setting",
		Get:  func(s settingsState) (SwitchList, bool) { return s.Load.Data, s.Load.IsSuccess() },
		Set:  func(s settingsState, l SwitchList) settingsState { s.Load = s.Load.WithData(l); return s },
		Call: b.update,
		OnError: func(s settingsState, id string, err error) settingsState {
			s.Failed = id
			return s
		},
	}
}

func abc() settingsState {
	return settingsState{Load: Loaded(SwitchList{
		{ID: "1", Label: "Setting A", Checked: true},
		{ID: "2", Label: "Setting B", Checked: false},
		{ID: "3", Label: "Setting C", Checked: true},
	})}
}

func checked(c *Controller[settingsState]) string {
	return c.State().Load.Data.String()
}

func TestToggle_Success(t *testing.T) {
	c, exec := newTestController(abc())
	b := &switchBackend{}

	if !Toggle(c, toggleSpec(b), "2", true) {
		t.Fatal("Toggle() = false")
	}
	if got := checked(c); got != "[1:on 2:on* 3:on]" {
		t.Fatalf("optimistic state = %s", got)
	}
	exec.RunAll()

	if got := checked(c); got != "[1:on 2:on 3:on]" {
		t.Errorf("settled state = %s, want [1:on 2:on 3:on]", got)
	}
}

func TestToggle_FailureRollsBack(t *testing.T) {
	c, exec := newTestController(abc())
	b := &switchBackend{fail: map[string]bool{"1": true}}

	Toggle(c, toggleSpec(b), "1", false)
	if got := checked(c); got != "[1:off* 2:off 3:on]" {
		t.Fatalf("optimistic state = %s", got)
	}
	exec.RunAll()

	if got := checked(c); got != "[1:on 2:off 3:on]" {
		t.Errorf("rolled back state = %s, want [1:on 2:off 3:on]", got)
	}
	if c.State().Failed != "1" {
		t.Errorf("OnError id = %q, want 1", c.State().Failed)
	}
}

func TestToggle_OverlappingItems(t *testing.T) {
	c, exec := newTestController(abc())
	b := &switchBackend{fail: map[string]bool{"3": true}}
	spec := toggleSpec(b)

	Toggle(c, spec, "2", true)
	Toggle(c, spec, "3", false)
	if got := checked(c); got != "[1:on 2:on* 3:off*]" {
		t.Fatalf("optimistic state = %s", got)
	}

	// Complete out of order: item 3 first.
	exec.RunAt(1)
	if got := checked(c); got != "[1:on 2:on* 3:on]" {
		t.Fatalf("after 3 settles = %s", got)
	}
	exec.RunAll()

	if got := checked(c); got != "[1:on 2:on 3:on]" {
		t.Errorf("final state = %s, want [1:on 2:on 3:on]", got)
	}
}

func TestToggle_NoOps(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		value bool
	}{
		{"unknown id", "9", true},
		{"unchanged value", "1", true},
		{"already submitting", "2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, exec := newTestController(abc())
			b := &switchBackend{}
			Toggle(c, toggleSpec(b), "2", true)
			before := checked(c)

			if Toggle(c, toggleSpec(b), tt.id, tt.value) {
				t.Error("Toggle() = true, want no-op")
			}
			if exec.Pending() != 1 {
				t.Errorf("Pending() = %d, want 1", exec.Pending())
			}
			if got := checked(c); got != before {
				t.Errorf("state changed: %s -> %s", before, got)
			}
		})
	}
}

func TestToggle_NotLoaded(t *testing.T) {
	c, _ := newTestController(settingsState{Load: Loading[SwitchList]()})
	if Toggle(c, toggleSpec(&switchBackend{}), "1", false) {
		t.Error("Toggle() while Loading = true")
	}
}

func TestToggle_DroppedWhenNoLongerLoaded(t *testing.T) {
	c, exec := newTestController(abc())
	b := &switchBackend{}

	Toggle(c, toggleSpec(b), "2", true)
	c.Update(func(s settingsState) settingsState { s.Load = Loading[SwitchList](); return s })
	exec.RunAll()

	if !c.State().Load.IsLoading() {
		t.Errorf("state = %v, want Loading", c.State().Load)
	}
}

func TestToggle_ItemRemovedMeanwhile(t *testing.T) {
	c, exec := newTestController(abc())
	b := &switchBackend{}

	Toggle(c, toggleSpec(b), "2", true)
	c.Update(func(s settingsState) settingsState {
		s.Load = Loaded(SwitchList{{ID: "1", Checked: true}})
		return s
	})
	exec.RunAll()

	if got := checked(c); got != "[1:on]" {
		t.Errorf("state = %s, want [1:on]", got)
	}
}

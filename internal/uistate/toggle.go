package uistate

import (
	"context"
	"strings"

	"github.com/muurk/uistate/internal/result"
)

// SwitchItem is one toggleable row. Submitting is set while its change is
// being sent.
type SwitchItem struct {
	ID         string
	Label      string
	Checked    bool
	Submitting bool
}

// SwitchList is the Success payload of a toggle screen.
type SwitchList []SwitchItem

// Index returns the position of id, or -1.
func (l SwitchList) Index(id string) int {
	for i, item := range l {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with id.
func (l SwitchList) Find(id string) (SwitchItem, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return SwitchItem{}, false
}

// BeginToggle applies value optimistically and marks the item submitting.
// Returns false if the item is unknown, already submitting or already set
// to value.
func (l SwitchList) BeginToggle(id string, value bool) (SwitchList, bool) {
	i := l.Index(id)
	if i < 0 || l[i].Submitting || l[i].Checked == value {
		return l, false
	}
	next := l.clone()
	next[i].Checked = value
	next[i].Submitting = true
	return next, true
}

// FinishToggle settles a toggle. On err the item rolls back to previous.
// The item is located by id, so the list may have been replaced meanwhile.
// Returns false if the item no longer exists.
func (l SwitchList) FinishToggle(id string, value, previous bool, err error) (SwitchList, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	next := l.clone()
	next[i].Checked = value
	if err != nil {
		next[i].Checked = previous
	}
	next[i].Submitting = false
	return next, true
}

// AnySubmitting reports whether any item has a change in flight.
func (l SwitchList) AnySubmitting() bool {
	for _, item := range l {
		if item.Submitting {
			return true
		}
	}
	return false
}

func (l SwitchList) clone() SwitchList {
	out := make(SwitchList, len(l))
	copy(out, l)
	return out
}

// String renders items as id:on|off, with a trailing * while submitting.
func (l SwitchList) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.ID)
		if item.Checked {
			b.WriteString(":on")
		} else {
			b.WriteString(":off")
		}
		if item.Submitting {
			b.WriteByte('*')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// ToggleSpec describes a switch list inside a controller's state S.
type ToggleSpec[S any] struct {
	Op string

	// Get returns the list, or false when its load state is not Success.
	Get  func(S) (SwitchList, bool)
	Set  func(S, SwitchList) S
	Call func(ctx context.Context, id string, value bool) result.Result[struct{}]

	// OnError runs on the loop after a rollback.
	OnError func(S, string, error) S
}

// Toggle optimistically sets item id to value and sends the change. Items
// toggle independently. A second toggle of the same item while its first is
// in flight is a no-op. Returns whether a call started.
func Toggle[S any](c *Controller[S], spec ToggleSpec[S], id string, value bool) bool {
	cur := c.State()
	list, ok := spec.Get(cur)
	if !ok {
		return false
	}
	item, ok := list.Find(id)
	if !ok {
		return false
	}
	next, ok := list.BeginToggle(id, value)
	if !ok {
		return false
	}
	previous := item.Checked
	c.Set(spec.Set(cur, next))

	c.Launch(spec.Op, func(ctx context.Context) Reducer[S] {
		res := spec.Call(ctx, id, value)
		return func(s S) (S, bool) {
			list, ok := spec.Get(s)
			if !ok {
				return s, false
			}
			settled, ok := list.FinishToggle(id, value, previous, res.Err())
			if !ok {
				return s, false
			}
			s = spec.Set(s, settled)
			if err := res.Err(); err != nil && spec.OnError != nil {
				s = spec.OnError(s, id, err)
			}
			return s, true
		}
	})
	return true
}

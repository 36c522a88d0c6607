package screens

import (
	"fmt"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/uistate"
	"go.uber.org/zap"
)

var (
	_ Editor = (*AddNote)(nil)
	_ Editor = (*EditNickname)(nil)
	_ Editor = (*EditNicknameInline)(nil)
)

// Kind names a screen.
type Kind string

const (
	KindItems     Kind = "items"
	KindPaging    Kind = "paging"
	KindOrder     Kind = "order"
	KindSettings  Kind = "settings"
	KindNote      Kind = "note"
	KindNickname  Kind = "nickname"
	KindNickname2 Kind = "nickname2"
)

// AllKinds returns every screen in menu order.
func AllKinds() []Kind {
	return []Kind{
		KindItems,
		KindPaging,
		KindOrder,
		KindSettings,
		KindNote,
		KindNickname,
		KindNickname2,
	}
}

func (k Kind) String() string { return string(k) }

// Title returns the menu title of a screen.
func (k Kind) Title() string {
	switch k {
	case KindItems:
		return "1. Load a list"
	case KindPaging:
		return "2. Load a list with paging"
	case KindOrder:
		return "3. Cancel an order"
	case KindSettings:
		return "4. Toggle settings"
	case KindNote:
		return "5. Add a note"
	case KindNickname:
		return "6. Edit nickname"
	case KindNickname2:
		return "7. Edit nickname (inline state)"
	default:
		return string(k)
	}
}

// ParseKind validates a screen name.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q", s)
}

// Screen is the surface every controller shares, used by hosts that treat
// screens generically.
type Screen interface {
	Kind() Kind
	Load() bool
	Status() string
	Watch(fn func()) (stop func())
	InFlight() int
	Close()
}

// Editor is implemented by screens holding unsaved text.
type Editor interface {
	Screen
	Editable() bool
	Text() string
	SetText(text string)
	Submit() bool
	SubmitState() uistate.SubmitState
	AcknowledgeError()
	IsChanged() bool
	Snapshot() uistate.Snapshot
	RequestLeave() uistate.LeaveOutcome
	Confirming() bool
	ConfirmDiscard()
	CancelLeave()
	Done() bool
}

// Deps are the collaborators every screen is built from.
type Deps struct {
	Service  *backend.Service
	Executor uistate.Executor
	Logger   *zap.Logger
}

// Options carries per-screen arguments.
type Options struct {
	OrderID  backend.OrderID
	Restored uistate.Snapshot
}

// New builds the screen named kind.
func New(kind Kind, deps Deps, opts Options) (Screen, error) {
	switch kind {
	case KindItems:
		return NewItemList(deps), nil
	case KindPaging:
		return NewPagedItemList(deps), nil
	case KindOrder:
		return NewOrderInfo(deps, opts.OrderID), nil
	case KindSettings:
		return NewSettings(deps), nil
	case KindNote:
		return NewAddNote(deps, opts.Restored), nil
	case KindNickname:
		return NewEditNickname(deps, opts.Restored), nil
	case KindNickname2:
		return NewEditNicknameInline(deps, opts.Restored), nil
	default:
		return nil, fmt.Errorf("unknown screen %q", kind)
	}
}

// base gives every screen its controller plus the Screen plumbing.
type base[S any] struct {
	*uistate.Controller[S]
	kind Kind
	svc  *backend.Service
}

func newBase[S any](kind Kind, deps Deps, initial S) base[S] {
	return base[S]{
		Controller: uistate.NewController(string(kind), initial, deps.Executor, deps.Logger),
		kind:       kind,
		svc:        deps.Service,
	}
}

func (b base[S]) Kind() Kind { return b.kind }

// Status renders the current state for logs and the headless runner.
func (b base[S]) Status() string {
	return fmt.Sprint(b.State())
}

// Watch calls fn after every state change.
func (b base[S]) Watch(fn func()) (stop func()) {
	return b.Subscribe(func(S) { fn() })
}

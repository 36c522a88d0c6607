package screens

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// NicknameKey is the snapshot key holding the nickname being edited.
const NicknameKey = "nickname"

// NicknameForm is the Success payload of the nickname screen: the value the
// backend holds and the state of the save action.
type NicknameForm struct {
	Saved  string
	Submit uistate.SubmitState
}

func (f NicknameForm) String() string {
	return fmt.Sprintf("saved=%q submit=%s", f.Saved, f.Submit)
}

// EditNicknameState keeps the text being typed beside the load state, so
// it outlives reloads.
type EditNicknameState struct {
	Load     uistate.LoadState[NicknameForm]
	Nickname string
	Gate     uistate.DiscardGate
}

func (s EditNicknameState) String() string {
	return fmt.Sprintf("%s nickname=%q gate=%s", s.Load, s.Nickname, s.Gate)
}

// EditNickname edits the nickname. A restored edit wins over the fetched
// value on every successful load, including reloads.
type EditNickname struct {
	base[EditNicknameState]
	restored *string
}

// NewEditNickname creates the screen and starts loading the nickname.
func NewEditNickname(deps Deps, restored uistate.Snapshot) *EditNickname {
	s := &EditNickname{base: newBase(KindNickname, deps, EditNicknameState{
		Load: uistate.Initial[NicknameForm](),
	})}
	if v, ok := restored.Get(NicknameKey); ok {
		s.restored = &v
	}
	s.Load()
	return s
}

// Load fetches the saved nickname. On success the text field is reset to
// the restored edit if there is one, otherwise to the fetched value.
func (s *EditNickname) Load() bool {
	return uistate.Load(s.Controller, uistate.LoadSpec[EditNicknameState, NicknameForm]{
		Op:  string(backend.OpFetchNickname),
		Get: func(st EditNicknameState) uistate.LoadState[NicknameForm] { return st.Load },
		Set: func(st EditNicknameState, l uistate.LoadState[NicknameForm]) EditNicknameState {
			st.Load = l
			return st
		},
		Fetch: func(ctx context.Context) result.Result[NicknameForm] {
			return result.Map(s.svc.FetchNickname(ctx), func(v string) NicknameForm {
				return NicknameForm{Saved: v}
			})
		},
		OnSuccess: func(st EditNicknameState, form NicknameForm) EditNicknameState {
			st.Nickname = form.Saved
			if s.restored != nil {
				st.Nickname = *s.restored
			}
			return st
		},
	})
}

// Text returns the nickname as typed.
func (s *EditNickname) Text() string {
	return s.State().Nickname
}

// SetText records an edit. Only accepted while loaded and not saving.
func (s *EditNickname) SetText(text string) {
	st := s.State()
	if !st.Load.IsSuccess() || st.Load.Data.Submit.Busy() {
		return
	}
	s.Update(func(st EditNicknameState) EditNicknameState {
		st.Nickname = text
		return st
	})
}

// IsChanged reports whether the typed nickname differs from the saved one.
// Always false until the nickname has loaded.
func (s *EditNickname) IsChanged() bool {
	st := s.State()
	return st.Load.IsSuccess() && st.Nickname != st.Load.Data.Saved
}

func (s *EditNickname) setSubmit(st EditNicknameState, sub uistate.SubmitState) EditNicknameState {
	form := st.Load.Data
	form.Submit = sub
	st.Load = st.Load.WithData(form)
	return st
}

// Submit saves the typed nickname. On success it becomes the saved value.
func (s *EditNickname) Submit() bool {
	text := s.Text()
	return uistate.Submit(s.Controller, uistate.SubmitSpec[EditNicknameState]{
		Op: string(backend.OpUpdateNickname),
		Get: func(st EditNicknameState) (uistate.SubmitState, bool) {
			return st.Load.Data.Submit, st.Load.IsSuccess()
		},
		Set: s.setSubmit,
		Call: func(ctx context.Context) result.Result[struct{}] {
			return s.svc.UpdateNickname(ctx, text)
		},
		OnSubmitted: func(st EditNicknameState) EditNicknameState {
			form := st.Load.Data
			form.Saved = text
			st.Load = st.Load.WithData(form)
			return st
		},
	})
}

// AcknowledgeError dismisses a failed save. The typed text is kept.
func (s *EditNickname) AcknowledgeError() {
	st := s.State()
	if !st.Load.IsSuccess() || !st.Load.Data.Submit.IsError() {
		return
	}
	s.Set(s.setSubmit(st, st.Load.Data.Submit.Acknowledge()))
}

// Editable reports whether the nickname has loaded.
func (s *EditNickname) Editable() bool {
	return s.State().Load.IsSuccess()
}

// SubmitState returns the state of the save action, Idle until loaded.
func (s *EditNickname) SubmitState() uistate.SubmitState {
	st := s.State()
	if !st.Load.IsSuccess() {
		return uistate.SubmitState{}
	}
	return st.Load.Data.Submit
}

// RequestLeave asks to close the screen.
func (s *EditNickname) RequestLeave() uistate.LeaveOutcome {
	g, out := s.State().Gate.RequestLeave(s.IsChanged())
	if out != uistate.LeaveIgnored {
		s.setGate(g)
	}
	return out
}

// Confirming reports whether the discard confirmation is showing.
func (s *EditNickname) Confirming() bool {
	return s.State().Gate.Confirming
}

// ConfirmDiscard drops the edit and leaves.
func (s *EditNickname) ConfirmDiscard() {
	s.setGate(s.State().Gate.Confirm())
}

// CancelLeave dismisses the discard confirmation.
func (s *EditNickname) CancelLeave() {
	s.setGate(s.State().Gate.Cancel())
}

func (s *EditNickname) setGate(g uistate.DiscardGate) {
	s.Update(func(st EditNicknameState) EditNicknameState {
		st.Gate = g
		return st
	})
}

// Done reports whether the screen should close.
func (s *EditNickname) Done() bool {
	st := s.State()
	return st.Gate.Left || (st.Load.IsSuccess() && st.Load.Data.Submit.IsSubmitted())
}

// Snapshot returns the typed nickname while loaded, and an empty snapshot
// otherwise so a half-loaded screen does not overwrite an earlier edit.
func (s *EditNickname) Snapshot() uistate.Snapshot {
	st := s.State()
	if !st.Load.IsSuccess() {
		return uistate.Snapshot{}
	}
	return uistate.Snapshot{NicknameKey: st.Nickname}
}

package screens

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// NicknameDraft is the Success payload of the inline nickname screen. The
// text field lives inside it, so a reload starts from the fetched value.
// Epoch counts successful loads and identifies which payload a save
// belongs to.
type NicknameDraft struct {
	Field  uistate.EditableField
	Submit uistate.SubmitState
	Epoch  int
}

func (d NicknameDraft) String() string {
	return fmt.Sprintf("nickname=%s submit=%s epoch=%d", d.Field, d.Submit, d.Epoch)
}

// EditNicknameInlineState is the state of the inline nickname screen.
type EditNicknameInlineState struct {
	Load uistate.LoadState[NicknameDraft]
	Gate uistate.DiscardGate
}

func (s EditNicknameInlineState) String() string {
	return fmt.Sprintf("%s gate=%s", s.Load, s.Gate)
}

// EditNicknameInline edits the nickname with the field held inside the
// loaded payload, so a reload replaces the field while it is in flight. A
// restored edit is applied over every successful load.
type EditNicknameInline struct {
	base[EditNicknameInlineState]
	restored *string
	loads    int
}

// NewEditNicknameInline creates the screen and starts loading the nickname.
func NewEditNicknameInline(deps Deps, restored uistate.Snapshot) *EditNicknameInline {
	s := &EditNicknameInline{base: newBase(KindNickname2, deps, EditNicknameInlineState{
		Load: uistate.Initial[NicknameDraft](),
	})}
	if v, ok := restored.Get(NicknameKey); ok {
		s.restored = &v
	}
	s.Load()
	return s
}

func (s *EditNicknameInline) setDraft(st EditNicknameInlineState, d NicknameDraft) EditNicknameInlineState {
	st.Load = st.Load.WithData(d)
	return st
}

// Load fetches the saved nickname into a fresh draft.
func (s *EditNicknameInline) Load() bool {
	return uistate.Load(s.Controller, uistate.LoadSpec[EditNicknameInlineState, NicknameDraft]{
		Op:  string(backend.OpFetchNickname),
		Get: func(st EditNicknameInlineState) uistate.LoadState[NicknameDraft] { return st.Load },
		Set: func(st EditNicknameInlineState, l uistate.LoadState[NicknameDraft]) EditNicknameInlineState {
			st.Load = l
			return st
		},
		Fetch: func(ctx context.Context) result.Result[NicknameDraft] {
			return result.Map(s.svc.FetchNickname(ctx), func(v string) NicknameDraft {
				return NicknameDraft{Field: uistate.NewEditableField(v)}
			})
		},
		OnSuccess: func(st EditNicknameInlineState, d NicknameDraft) EditNicknameInlineState {
			s.loads++
			d.Epoch = s.loads
			if s.restored != nil {
				d.Field = d.Field.Edit(*s.restored)
			}
			return s.setDraft(st, d)
		},
	})
}

// Text returns the nickname as typed, or "" before the first load.
func (s *EditNicknameInline) Text() string {
	return s.State().Load.Data.Field.Current
}

// SetText records an edit. Only accepted while loaded and not saving.
func (s *EditNicknameInline) SetText(text string) {
	st := s.State()
	if !st.Load.IsSuccess() || st.Load.Data.Submit.Busy() {
		return
	}
	d := st.Load.Data
	d.Field = d.Field.Edit(text)
	s.Set(s.setDraft(st, d))
}

// IsChanged reports whether the draft differs from the saved nickname.
func (s *EditNicknameInline) IsChanged() bool {
	st := s.State()
	return st.Load.IsSuccess() && st.Load.Data.Field.Changed()
}

// Submit saves the draft. The result is dropped if the draft it was taken
// from has been replaced by a reload in the meantime.
func (s *EditNicknameInline) Submit() bool {
	st := s.State()
	text := st.Load.Data.Field.Current
	epoch := st.Load.Data.Epoch

	return uistate.Submit(s.Controller, uistate.SubmitSpec[EditNicknameInlineState]{
		Op: string(backend.OpUpdateNickname),
		Get: func(st EditNicknameInlineState) (uistate.SubmitState, bool) {
			return st.Load.Data.Submit, st.Load.IsSuccess() && st.Load.Data.Epoch == epoch
		},
		Set: func(st EditNicknameInlineState, sub uistate.SubmitState) EditNicknameInlineState {
			d := st.Load.Data
			d.Submit = sub
			return s.setDraft(st, d)
		},
		Call: func(ctx context.Context) result.Result[struct{}] {
			return s.svc.UpdateNickname(ctx, text)
		},
		OnSubmitted: func(st EditNicknameInlineState) EditNicknameInlineState {
			d := st.Load.Data
			d.Field = d.Field.Commit(text)
			return s.setDraft(st, d)
		},
	})
}

// AcknowledgeError dismisses a failed save. The draft is kept.
func (s *EditNicknameInline) AcknowledgeError() {
	st := s.State()
	if !st.Load.IsSuccess() || !st.Load.Data.Submit.IsError() {
		return
	}
	d := st.Load.Data
	d.Submit = d.Submit.Acknowledge()
	s.Set(s.setDraft(st, d))
}

// Editable reports whether a draft is loaded.
func (s *EditNicknameInline) Editable() bool {
	return s.State().Load.IsSuccess()
}

// SubmitState returns the state of the save action, Idle until loaded.
func (s *EditNicknameInline) SubmitState() uistate.SubmitState {
	st := s.State()
	if !st.Load.IsSuccess() {
		return uistate.SubmitState{}
	}
	return st.Load.Data.Submit
}

// RequestLeave asks to close the screen.
func (s *EditNicknameInline) RequestLeave() uistate.LeaveOutcome {
	g, out := s.State().Gate.RequestLeave(s.IsChanged())
	if out != uistate.LeaveIgnored {
		s.setGate(g)
	}
	return out
}

// Confirming reports whether the discard confirmation is showing.
func (s *EditNicknameInline) Confirming() bool {
	return s.State().Gate.Confirming
}

// ConfirmDiscard drops the draft and leaves.
func (s *EditNicknameInline) ConfirmDiscard() {
	s.setGate(s.State().Gate.Confirm())
}

// CancelLeave dismisses the discard confirmation.
func (s *EditNicknameInline) CancelLeave() {
	s.setGate(s.State().Gate.Cancel())
}

func (s *EditNicknameInline) setGate(g uistate.DiscardGate) {
	s.Update(func(st EditNicknameInlineState) EditNicknameInlineState {
		st.Gate = g
		return st
	})
}

// Done reports whether the screen should close.
func (s *EditNicknameInline) Done() bool {
	st := s.State()
	return st.Gate.Left || (st.Load.IsSuccess() && st.Load.Data.Submit.IsSubmitted())
}

// Snapshot returns the draft while loaded, and an empty snapshot otherwise.
func (s *EditNicknameInline) Snapshot() uistate.Snapshot {
	st := s.State()
	if !st.Load.IsSuccess() {
		return uistate.Snapshot{}
	}
	return uistate.Snapshot{NicknameKey: st.Load.Data.Field.Current}
}

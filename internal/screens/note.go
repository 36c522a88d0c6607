package screens

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// NoteKey is the snapshot key holding the note being written.
const NoteKey = "note"

// AddNoteState is the state of the add-note screen. The note's saved
// baseline is empty: any text counts as unsaved.
type AddNoteState struct {
	Note   uistate.EditableField
	Submit uistate.SubmitState
	Gate   uistate.DiscardGate
}

func (s AddNoteState) String() string {
	return fmt.Sprintf("note=%s submit=%s gate=%s", s.Note, s.Submit, s.Gate)
}

// AddNote is a form with one text field and a submit action.
type AddNote struct {
	base[AddNoteState]
}

// NewAddNote creates the screen. A restored snapshot brings back the text
// typed before the previous instance was torn down.
func NewAddNote(deps Deps, restored uistate.Snapshot) *AddNote {
	field := uistate.NewEditableField("")
	if note, ok := restored.Get(NoteKey); ok {
		field = field.Edit(note)
	}
	return &AddNote{base: newBase(KindNote, deps, AddNoteState{Note: field})}
}

// Load is a no-op: nothing is fetched for a new note.
func (s *AddNote) Load() bool { return false }

// Text returns the note as typed.
func (s *AddNote) Text() string {
	return s.State().Note.Current
}

// SetText records an edit. Ignored while a submit is in progress or
// awaiting acknowledgement.
func (s *AddNote) SetText(text string) {
	if s.State().Submit.Busy() {
		return
	}
	s.Update(func(st AddNoteState) AddNoteState {
		st.Note = st.Note.Edit(text)
		return st
	})
}

// IsChanged reports whether there is unsaved text.
func (s *AddNote) IsChanged() bool {
	return s.State().Note.Changed()
}

// Submit sends the current text.
func (s *AddNote) Submit() bool {
	text := s.Text()
	return uistate.Submit(s.Controller, uistate.SubmitSpec[AddNoteState]{
		Op:  string(backend.OpAddNote),
		Get: func(st AddNoteState) (uistate.SubmitState, bool) { return st.Submit, true },
		Set: func(st AddNoteState, sub uistate.SubmitState) AddNoteState {
			st.Submit = sub
			return st
		},
		Call: func(ctx context.Context) result.Result[struct{}] {
			return s.svc.AddNote(ctx, text)
		},
		OnSubmitted: func(st AddNoteState) AddNoteState {
			st.Note = st.Note.Commit(text)
			return st
		},
	})
}

// AcknowledgeError dismisses a failed submit. The text is kept.
func (s *AddNote) AcknowledgeError() {
	if !s.State().Submit.IsError() {
		return
	}
	s.Update(func(st AddNoteState) AddNoteState {
		st.Submit = st.Submit.Acknowledge()
		return st
	})
}

// Editable is always true: there is nothing to load first.
func (s *AddNote) Editable() bool { return true }

// SubmitState returns the state of the submit action.
func (s *AddNote) SubmitState() uistate.SubmitState {
	return s.State().Submit
}

// RequestLeave asks to close the screen.
func (s *AddNote) RequestLeave() uistate.LeaveOutcome {
	g, out := s.State().Gate.RequestLeave(s.IsChanged())
	if out != uistate.LeaveIgnored {
		s.setGate(g)
	}
	return out
}

// Confirming reports whether the discard confirmation is showing.
func (s *AddNote) Confirming() bool {
	return s.State().Gate.Confirming
}

// ConfirmDiscard drops the text and leaves.
func (s *AddNote) ConfirmDiscard() {
	s.setGate(s.State().Gate.Confirm())
}

// CancelLeave dismisses the discard confirmation.
func (s *AddNote) CancelLeave() {
	s.setGate(s.State().Gate.Cancel())
}

func (s *AddNote) setGate(g uistate.DiscardGate) {
	s.Update(func(st AddNoteState) AddNoteState {
		st.Gate = g
		return st
	})
}

// Done reports whether the screen should close.
func (s *AddNote) Done() bool {
	st := s.State()
	return st.Submit.IsSubmitted() || st.Gate.Left
}

// Snapshot returns the text to restore if the screen is rebuilt.
func (s *AddNote) Snapshot() uistate.Snapshot {
	return uistate.Snapshot{NoteKey: s.Text()}
}

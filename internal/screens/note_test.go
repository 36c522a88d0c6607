package screens

import (
	"testing"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/uistate"
)

func TestAddNote_Submit(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	s := NewAddNote(h.deps, nil)

	if s.IsChanged() {
		t.Fatal("empty note reports changed")
	}
	s.SetText("buy milk")
	if !s.IsChanged() {
		t.Fatal("typed note reports unchanged")
	}

	if !s.Submit() {
		t.Fatal("Submit() = false")
	}
	if s.Submit() {
		t.Error("second Submit() while submitting = true")
	}
	s.SetText("ignored")
	h.exec.RunAll()

	if got := h.mock.Notes(); len(got) != 1 || got[0] != "buy milk" {
		t.Errorf("backend notes = %v, want [buy milk]", got)
	}
	if !s.Done() {
		t.Errorf("Done() = false, state %v", s.State())
	}
	if s.IsChanged() {
		t.Error("IsChanged() = true after successful submit")
	}
}

func TestAddNote_SubmitFailureKeepsText(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	h.mock.SetFailing(backend.OpAddNote, true)
	s := NewAddNote(h.deps, nil)

	s.SetText("draft")
	s.Submit()
	h.exec.RunAll()

	st := s.State()
	if !st.Submit.IsError() || s.Text() != "draft" || s.Done() {
		t.Fatalf("State() = %v, want Error with text kept", st)
	}

	s.AcknowledgeError()
	if !s.State().Submit.IsIdle() {
		t.Fatalf("Submit = %v after acknowledge", s.State().Submit)
	}
	s.SetText("draft 2")
	if s.Text() != "draft 2" {
		t.Errorf("Text() = %q, edits blocked after acknowledge", s.Text())
	}
}

func TestAddNote_RestoreAndSnapshot(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())
	s := NewAddNote(h.deps, uistate.Snapshot{NoteKey: "restored"})

	if s.Text() != "restored" || !s.IsChanged() {
		t.Fatalf("restored note = %q changed=%v", s.Text(), s.IsChanged())
	}

	s.SetText("more")
	snap := s.Snapshot()
	if v, _ := snap.Get(NoteKey); v != "more" {
		t.Errorf("Snapshot() = %v, want note=more", snap)
	}

	again := NewAddNote(h.deps, snap)
	if again.Text() != "more" {
		t.Errorf("rebuilt note = %q, want more", again.Text())
	}
}

func TestAddNote_DiscardGate(t *testing.T) {
	h := newHarness(backend.DefaultMockOptions())

	clean := NewAddNote(h.deps, nil)
	if out := clean.RequestLeave(); out != uistate.LeaveNow || !clean.Done() {
		t.Errorf("RequestLeave() on clean note = %v, done=%v", out, clean.Done())
	}

	s := NewAddNote(h.deps, nil)
	s.SetText("x")

	confirms := 0
	for i := 0; i < 3; i++ {
		if s.RequestLeave() == uistate.LeaveConfirm {
			confirms++
		}
	}
	if confirms != 1 {
		t.Errorf("confirmation requests = %d, want 1", confirms)
	}

	s.CancelLeave()
	if s.Done() || s.State().Gate.Confirming {
		t.Errorf("after CancelLeave: %v", s.State())
	}

	s.RequestLeave()
	s.ConfirmDiscard()
	if !s.Done() {
		t.Errorf("Done() = false after ConfirmDiscard")
	}
}

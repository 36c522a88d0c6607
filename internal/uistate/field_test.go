package uistate

import "testing"

func TestEditableField(t *testing.T) {
	f := NewEditableField("Compose")
	if f.Changed() {
		t.Fatal("new field reports changed")
	}

	f = f.Edit("Compose!")
	if !f.Changed() {
		t.Fatal("edited field reports unchanged")
	}
	if f.Edit("Compose").Changed() {
		t.Error("editing back to saved value reports changed")
	}
	if got := f.Revert(); got.Current != "Compose" || got.Changed() {
		t.Errorf("Revert() = %v", got)
	}

	f = f.Commit("Compose!")
	if f.Changed() || f.Saved != "Compose!" {
		t.Errorf("Commit() = %v, want saved Compose! unchanged", f)
	}
}

func TestDiscardGate_Unchanged(t *testing.T) {
	g, out := DiscardGate{}.RequestLeave(false)
	if out != LeaveNow || !g.Left || g.Confirming {
		t.Errorf("RequestLeave(false) = %v, %v; want leave", g, out)
	}
	if _, out := g.RequestLeave(true); out != LeaveIgnored {
		t.Errorf("RequestLeave after leaving = %v, want ignored", out)
	}
}

func TestDiscardGate_ConfirmOnce(t *testing.T) {
	var g DiscardGate
	confirmations := 0

	for i := 0; i < 3; i++ {
		var out LeaveOutcome
		g, out = g.RequestLeave(true)
		if out == LeaveConfirm {
			confirmations++
		}
	}
	if confirmations != 1 {
		t.Errorf("confirmation requests = %d, want 1", confirmations)
	}
	if !g.Confirming || g.Left {
		t.Fatalf("gate = %v, want confirming", g)
	}

	left := g.Confirm()
	if !left.Left || left.Confirming {
		t.Errorf("Confirm() = %v, want left", left)
	}

	stay := g.Cancel()
	if stay.Confirming || stay.Left {
		t.Errorf("Cancel() = %v, want open", stay)
	}
	if _, out := stay.RequestLeave(true); out != LeaveConfirm {
		t.Errorf("RequestLeave after cancel = %v, want confirm", out)
	}
}

func TestDiscardGate_ConfirmWithoutRequest(t *testing.T) {
	if g := (DiscardGate{}).Confirm(); !g.Left {
		t.Errorf("Confirm() = %v, want left", g)
	}
}

func TestSnapshot(t *testing.T) {
	var empty Snapshot
	if _, ok := empty.Get("note"); ok {
		t.Error("nil snapshot returned a value")
	}
	if empty.Clone() != nil {
		t.Error("nil snapshot cloned to non-nil")
	}

	s := Snapshot{"note": "hi", "a": "b"}
	c := s.Clone()
	c["note"] = "changed"
	if v, _ := s.Get("note"); v != "hi" {
		t.Errorf("Clone shares storage: note = %q", v)
	}
	if got := s.String(); got != "{a=b note=hi}" {
		t.Errorf("String() = %q", got)
	}
}

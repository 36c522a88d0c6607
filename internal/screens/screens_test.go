package screens

import (
	"math/rand/v2"
	"testing"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/uistate"
	"go.uber.org/zap"
)

type harness struct {
	deps Deps
	mock *backend.Mock
	exec *uistate.ManualExecutor
}

// newHarness wires screens to a zero-latency mock and a manual executor,
// so each test decides when backend calls complete.
func newHarness(opts backend.MockOptions) *harness {
	opts.Delay = 0
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(7, 11))
	}
	mock := backend.NewMock(opts)
	exec := uistate.NewManualExecutor()
	return &harness{
		deps: Deps{
			Service:  backend.NewService(mock, zap.NewNop()),
			Executor: exec,
			Logger:   zap.NewNop(),
		},
		mock: mock,
		exec: exec,
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
		if k.Title() == string(k) {
			t.Errorf("Kind %q has no title", k)
		}
	}
	if _, err := ParseKind("dogs"); err == nil {
		t.Error("ParseKind(dogs) succeeded")
	}
}

func TestNew_AllKinds(t *testing.T) {
	for _, k := range AllKinds() {
		t.Run(string(k), func(t *testing.T) {
			h := newHarness(backend.DefaultMockOptions())
			s, err := New(k, h.deps, Options{})
			if err != nil {
				t.Fatalf("New(%s) error = %v", k, err)
			}
			defer s.Close()

			if s.Kind() != k {
				t.Errorf("Kind() = %q, want %q", s.Kind(), k)
			}

			changes := 0
			stop := s.Watch(func() { changes++ })
			defer stop()

			h.exec.RunAll()
			if s.InFlight() != 0 {
				t.Errorf("InFlight() = %d after RunAll", s.InFlight())
			}
			if s.Status() == "" {
				t.Error("Status() is empty")
			}
			if k != KindNote && changes == 0 {
				t.Error("no state change observed after initial load")
			}
		})
	}

	h := newHarness(backend.DefaultMockOptions())
	if _, err := New("bogus", h.deps, Options{}); err == nil {
		t.Error("New(bogus) succeeded")
	}
}

func TestEditors_SubmitStateFollowsLoad(t *testing.T) {
	for _, k := range []Kind{KindNote, KindNickname, KindNickname2} {
		t.Run(string(k), func(t *testing.T) {
			h := newHarness(backend.DefaultMockOptions())
			s, err := New(k, h.deps, Options{})
			if err != nil {
				t.Fatalf("New(%s) error = %v", k, err)
			}
			defer s.Close()
			ed := s.(Editor)

			if k != KindNote && ed.Editable() {
				t.Error("Editable() = true before load completed")
			}
			h.exec.RunAll()
			if !ed.Editable() {
				t.Fatal("Editable() = false after load")
			}

			ed.SetText("draft")
			if !ed.Submit() {
				t.Fatal("Submit() did not start")
			}
			if !ed.SubmitState().IsSubmitting() {
				t.Errorf("SubmitState() = %s, want Submitting", ed.SubmitState())
			}
			h.exec.RunAll()
			if !ed.SubmitState().IsSubmitted() {
				t.Errorf("SubmitState() = %s, want Submitted", ed.SubmitState())
			}
		})
	}
}

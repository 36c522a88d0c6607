package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/logging"
	"github.com/muurk/uistate/internal/screens"
	"github.com/muurk/uistate/internal/uistate"
)

// Runner drives screens without a terminal UI. Backend calls run on their
// own goroutines; completions and every screen call run on the goroutine
// that called Run.
type Runner struct {
	svc  *backend.Service
	loop *uistate.Loop
	log  *zap.Logger

	onTransition func(kind screens.Kind, status string)
}

// New creates a Runner. A nil logger uses the global one.
func New(svc *backend.Service, log *zap.Logger) *Runner {
	if log == nil {
		log = logging.Named("runner")
	}
	return &Runner{
		svc:  svc,
		loop: uistate.NewLoop(),
		log:  log,
	}
}

// OnTransition registers fn to be called with every state the screen
// enters, starting with the state it is in when opened.
func (r *Runner) OnTransition(fn func(kind screens.Kind, status string)) *Runner {
	r.onTransition = fn
	return r
}

// Run opens the script's screen, performs its action and waits for every
// backend call to settle. The returned error is for runs that could not
// be carried out; failed steps are reported in the Result.
func (r *Runner) Run(ctx context.Context, script Script) (*Result, error) {
	start := time.Now()

	s, err := screens.New(script.Screen, screens.Deps{
		Service:  r.svc,
		Executor: r.loop,
		Logger:   r.log,
	}, screens.Options{
		OrderID:  script.OrderID,
		Restored: script.Restored,
	})
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if r.onTransition != nil {
		notify := func() { r.onTransition(s.Kind(), s.Status()) }
		stop := s.Watch(notify)
		defer stop()
		notify()
	}

	r.log.Info("run started", zap.Stringer("screen", script.Screen))

	res := &Result{Screen: script.Screen}
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	if s.Kind() != screens.KindNote {
		res.addStep("load", loadError(s), s.Status())
	}

	switch sc := s.(type) {
	case screens.Editor:
		err = r.runEditor(ctx, sc, script, res)
	case *screens.PagedItemList:
		err = r.runPaging(ctx, sc, script, res)
	case *screens.OrderInfo:
		err = r.runOrder(ctx, sc, res)
	case *screens.Settings:
		err = r.runSettings(ctx, sc, script, res)
	}
	if err != nil {
		return nil, err
	}

	res.Final = s.Status()
	res.Duration = time.Since(start)
	res.Success = len(res.Failed()) == 0

	r.log.Info("run finished",
		zap.Stringer("screen", script.Screen),
		zap.Bool("success", res.Success),
		zap.Int("steps", len(res.Steps)),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// wait runs completions until nothing is in flight.
func (r *Runner) wait(ctx context.Context) error {
	if err := r.loop.RunUntilIdle(ctx); err != nil {
		return fmt.Errorf("waiting for backend: %w", err)
	}
	return nil
}

func (r *Runner) runEditor(ctx context.Context, ed screens.Editor, script Script, res *Result) error {
	if !ed.Editable() {
		res.skip("submit", "nothing loaded to edit")
		res.Draft = script.Restored
		return nil
	}

	if script.Text != "" {
		ed.SetText(script.Text)
		res.addStep("edit", nil, fmt.Sprintf("%q", ed.Text()))
	}

	if !ed.Submit() {
		res.skip("submit", "submit not available in state "+ed.Status())
	} else {
		if err := r.wait(ctx); err != nil {
			return err
		}
		res.addStep("submit", ed.SubmitState().Err, ed.Status())
	}

	res.Finished = ed.Done()
	if !res.Finished && ed.IsChanged() {
		res.Draft = ed.Snapshot()
	}
	return nil
}

func (r *Runner) runPaging(ctx context.Context, p *screens.PagedItemList, script Script, res *Result) error {
	for i := 1; i <= script.Next; i++ {
		name := fmt.Sprintf("next page %d", i)
		if !p.LoadNext() {
			res.skip(name, "no further pages")
			break
		}
		if err := r.wait(ctx); err != nil {
			return err
		}

		st := p.State()
		var err error
		if next := st.List.Data.Next; next.Phase == uistate.NextError {
			err = next.Err
			p.AcknowledgeNotice()
		}
		res.addStep(name, err, st.String())
		if err != nil {
			break
		}
	}
	return nil
}

func (r *Runner) runOrder(ctx context.Context, o *screens.OrderInfo, res *Result) error {
	if !o.Cancel() {
		res.skip("cancel", "order not loaded")
		return nil
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	st := o.State()
	var err error
	if st.IsSuccess() {
		err = st.Data.Submit.Err
	}
	res.addStep("cancel", err, st.String())
	return nil
}

func (r *Runner) runSettings(ctx context.Context, s *screens.Settings, script Script, res *Result) error {
	var started []Toggle
	for _, t := range script.Toggles {
		if s.Toggle(t.ID, t.Value) {
			started = append(started, t)
		} else {
			res.skip("toggle "+t.String(), "not applicable in state "+s.Status())
		}
	}
	if len(started) == 0 {
		return nil
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	st := s.State()
	for _, t := range started {
		var err error
		if item, ok := st.Data.Find(t.ID); !ok || item.Checked != t.Value {
			err = fmt.Errorf("setting %s was rolled back", t.ID)
		}
		res.addStep("toggle "+t.String(), err, st.String())
	}
	return nil
}

// loadError returns the error a screen's load ended with, or nil.
func loadError(s screens.Screen) error {
	switch sc := s.(type) {
	case *screens.ItemList:
		return sc.State().Err
	case *screens.PagedItemList:
		return sc.State().List.Err
	case *screens.OrderInfo:
		return sc.State().Err
	case *screens.Settings:
		return sc.State().Err
	case *screens.EditNickname:
		return sc.State().Load.Err
	case *screens.EditNicknameInline:
		return sc.State().Load.Err
	}
	return nil
}

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/logging"
	"github.com/muurk/uistate/internal/savedstate"
	"github.com/muurk/uistate/internal/screens"
	"github.com/muurk/uistate/internal/uistate"
)

// Config wires the app to a backend and a draft store.
type Config struct {
	Service *backend.Service
	Mock    *backend.Mock    // Optional. Enables the failure toggle.
	Drafts  savedstate.Store // Optional. Defaults to an in-memory store.
	Logger  *zap.Logger
	OrderID backend.OrderID
	Start   screens.Kind // Optional screen to open at launch
}

// AppModel is the top-level model: a menu of sample screens, and at most
// one open screen.
type AppModel struct {
	cfg  Config
	exec *Executor
	deps screens.Deps
	log  *zap.Logger

	// Menu
	Cursor int
	Flash  string

	// Open screen
	Active screens.Screen
	Row    int

	Failing bool

	Input   textinput.Model
	Spinner spinner.Model
	Help    help.Model
	Keys    keyMap

	Width  int
	Height int
}

// NewAppModel creates the app. If cfg.Start names a screen it is opened
// immediately and its first load is issued from Init.
func NewAppModel(cfg Config) AppModel {
	log := cfg.Logger
	if log == nil {
		log = logging.Named("tui")
	}
	if cfg.Drafts == nil {
		cfg.Drafts = savedstate.NewMemoryStore()
	}
	exec := NewExecutor()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	in := textinput.New()
	in.Placeholder = "Type here"
	in.CharLimit = 200
	in.Width = 40

	m := AppModel{
		cfg:  cfg,
		exec: exec,
		deps: screens.Deps{
			Service:  cfg.Service,
			Executor: exec,
			Logger:   log,
		},
		log:     log,
		Input:   in,
		Spinner: s,
		Help:    help.New(),
		Keys:    newKeyMap(),
		Width:   MinTerminalWidth,
		Height:  24,
	}
	if cfg.Mock != nil {
		m.Failing = cfg.Mock.Failing(backend.OpFetchItems)
	}
	if cfg.Start != "" {
		m, _ = m.open(cfg.Start)
	}
	return m
}

// Init starts the spinner and any load queued by NewAppModel.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, textinput.Blink, m.exec.Drain())
}

// Update handles all messages. Completions of backend calls arrive here as
// messages, so every state change happens on this goroutine.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case completionMsg:
		m.exec.Apply(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			return m.quit()
		}

		var cmd tea.Cmd
		switch {
		case key.Matches(msg, m.Keys.Fail):
			m = m.toggleFailing()
		case m.Active == nil:
			m, cmd = m.updateMenu(msg)
		default:
			m, cmd = m.updateScreen(msg)
		}
		cmds = append(cmds, cmd)

	default:
		// Cursor blink and friends
		if _, ok := m.Active.(screens.Editor); ok {
			var cmd tea.Cmd
			m.Input, cmd = m.Input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.Active != nil {
		m = m.sync()
	}
	cmds = append(cmds, m.exec.Drain())
	return m, tea.Batch(cmds...)
}

// context reports which bindings apply right now.
func (m AppModel) context() keyContext {
	switch s := m.Active.(type) {
	case nil:
		return keysMenu
	case screens.Editor:
		switch {
		case s.Confirming():
			return keysConfirm
		case s.SubmitState().IsError():
			return keysDialog
		case !s.Editable():
			return keysEditorLoadError
		default:
			return keysEditor
		}
	case *screens.ItemList:
		return keysItems
	case *screens.PagedItemList:
		if s.State().Notice {
			return keysDialog
		}
		return keysPaging
	case *screens.OrderInfo:
		if st := s.State(); st.IsSuccess() && st.Data.Submit.IsError() {
			return keysDialog
		}
		return keysOrder
	case *screens.Settings:
		return keysSettings
	default:
		return keysItems
	}
}

func (m AppModel) updateMenu(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	kinds := screens.AllKinds()
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.Cursor = (m.Cursor - 1 + len(kinds)) % len(kinds)
	case key.Matches(msg, m.Keys.Down):
		m.Cursor = (m.Cursor + 1) % len(kinds)
	case key.Matches(msg, m.Keys.Open):
		return m.open(kinds[m.Cursor])
	case msg.String() == "q", key.Matches(msg, m.Keys.Back):
		mm, cmd := m.quit()
		return mm.(AppModel), cmd
	}
	return m, nil
}

func (m AppModel) updateScreen(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	switch m.context() {
	case keysDialog:
		if key.Matches(msg, m.Keys.Dismiss) {
			m.dismiss()
		}
		return m, nil
	case keysConfirm:
		ed := m.Active.(screens.Editor)
		switch {
		case key.Matches(msg, m.Keys.Yes):
			ed.ConfirmDiscard()
		case key.Matches(msg, m.Keys.No):
			ed.CancelLeave()
		}
		return m, nil
	}

	if ed, ok := m.Active.(screens.Editor); ok {
		return m.updateEditor(ed, msg)
	}
	if key.Matches(msg, m.Keys.Back) {
		return m.close(""), nil
	}

	switch s := m.Active.(type) {
	case *screens.ItemList:
		if key.Matches(msg, m.Keys.Reload) {
			s.Load()
		}

	case *screens.PagedItemList:
		switch {
		case key.Matches(msg, m.Keys.Up):
			if m.Row > 0 {
				m.Row--
			}
		case key.Matches(msg, m.Keys.Down):
			if m.Row < s.Len()-1 {
				m.Row++
			}
			// Reaching the end of the list asks for more
			if m.Row >= s.Len()-1 {
				s.LoadNext()
			}
		case key.Matches(msg, m.Keys.Next):
			s.LoadNext()
		case key.Matches(msg, m.Keys.Reload):
			m.Row = 0
			s.Load()
		}

	case *screens.OrderInfo:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			s.Cancel()
		case key.Matches(msg, m.Keys.Reload):
			s.Load()
		}

	case *screens.Settings:
		st := s.State()
		n := 0
		if st.IsSuccess() {
			n = len(st.Data)
		}
		switch {
		case key.Matches(msg, m.Keys.Up):
			if m.Row > 0 {
				m.Row--
			}
		case key.Matches(msg, m.Keys.Down):
			if m.Row < n-1 {
				m.Row++
			}
		case key.Matches(msg, m.Keys.Toggle):
			if m.Row < n {
				s.Flip(st.Data[m.Row].ID)
			}
		case key.Matches(msg, m.Keys.Reload):
			s.Load()
		}
	}
	return m, nil
}

func (m AppModel) updateEditor(ed screens.Editor, msg tea.KeyMsg) (AppModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Back):
		ed.RequestLeave()
		return m, nil
	case !ed.Editable():
		if key.Matches(msg, m.Keys.Retry) {
			ed.Load()
		}
		return m, nil
	case key.Matches(msg, m.Keys.Submit):
		ed.Submit()
		return m, nil
	case ed.SubmitState().Busy():
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if v := m.Input.Value(); v != ed.Text() {
		ed.SetText(v)
	}
	return m, cmd
}

// dismiss acknowledges whatever dialog the open screen is showing.
func (m AppModel) dismiss() {
	switch s := m.Active.(type) {
	case screens.Editor:
		s.AcknowledgeError()
	case *screens.PagedItemList:
		s.AcknowledgeNotice()
	case *screens.OrderInfo:
		s.AcknowledgeError()
	}
}

// sync closes a finished screen and mirrors screen state into widgets.
func (m AppModel) sync() AppModel {
	switch s := m.Active.(type) {
	case screens.Editor:
		if s.Done() {
			flash := ""
			switch {
			case s.SubmitState().IsSubmitted():
				flash = "Saved"
			case s.IsChanged():
				flash = "Changes discarded"
			}
			return m.close(flash)
		}
		if m.Input.Value() != s.Text() {
			m.Input.SetValue(s.Text())
			m.Input.CursorEnd()
		}
	case *screens.OrderInfo:
		if s.Done() {
			return m.close(fmt.Sprintf("Order %s cancelled", s.OrderID()))
		}
	case *screens.PagedItemList:
		if m.Row >= s.Len() {
			m.Row = max(s.Len()-1, 0)
		}
	}
	return m
}

func (m AppModel) open(kind screens.Kind) (AppModel, tea.Cmd) {
	restored, _ := m.cfg.Drafts.Load(string(kind))
	s, err := screens.New(kind, m.deps, screens.Options{
		OrderID:  m.cfg.OrderID,
		Restored: restored,
	})
	if err != nil {
		m.Flash = err.Error()
		return m, nil
	}

	m.Active = s
	m.Row = 0
	m.Flash = ""
	m.log.Debug("screen opened", zap.Stringer("screen", kind), zap.Bool("restored", len(restored) > 0))

	if ed, ok := s.(screens.Editor); ok {
		m.Input.SetValue(ed.Text())
		m.Input.CursorEnd()
		return m, m.Input.Focus()
	}
	return m, nil
}

// close tears down the open screen and returns to the menu. A screen that
// finished normally no longer needs its draft.
func (m AppModel) close(flash string) AppModel {
	if ed, ok := m.Active.(screens.Editor); ok && ed.Done() {
		m.cfg.Drafts.Delete(string(ed.Kind()))
	}
	m.Active.Close()
	m.log.Debug("screen closed", zap.Stringer("screen", m.Active.Kind()))

	m.Active = nil
	m.Row = 0
	m.Flash = flash
	m.Input.Blur()
	m.Input.SetValue("")
	return m
}

// quit saves the open editor's draft so the next launch can restore it.
func (m AppModel) quit() (tea.Model, tea.Cmd) {
	if m.Active != nil {
		if ed, ok := m.Active.(screens.Editor); ok {
			saveDraft(m.cfg.Drafts, ed)
		}
		m.Active.Close()
		m.Active = nil
	}
	if err := m.cfg.Drafts.Flush(); err != nil {
		m.log.Warn("failed to save drafts", zap.Error(err))
	}
	return m, tea.Quit
}

// saveDraft records unsaved text. A screen that has not loaded yet returns
// an empty snapshot; the draft saved earlier is kept in that case.
func saveDraft(store savedstate.Store, ed screens.Editor) {
	snap := ed.Snapshot()
	key := string(ed.Kind())
	switch {
	case len(snap) == 0:
	case ed.IsChanged():
		store.Save(key, snap)
	default:
		store.Delete(key)
	}
}

func (m AppModel) toggleFailing() AppModel {
	if m.cfg.Mock == nil {
		m.Flash = "Failure toggle needs the mock backend"
		return m
	}
	m.Failing = !m.Failing
	m.cfg.Mock.SetAllFailing(m.Failing)
	m.log.Info("backend failures toggled", zap.Bool("failing", m.Failing))
	return m
}

// Run starts the full-screen program and blocks until the user quits or
// ctx is done.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(NewAppModel(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if app, ok := final.(AppModel); ok && app.Active != nil {
		// Interrupted without going through quit
		if ed, ok := app.Active.(screens.Editor); ok {
			saveDraft(app.cfg.Drafts, ed)
		}
		app.Active.Close()
		if ferr := app.cfg.Drafts.Flush(); ferr != nil {
			app.log.Warn("failed to save drafts", zap.Error(ferr))
		}
	}
	return err
}

var _ uistate.Executor = (*Executor)(nil)

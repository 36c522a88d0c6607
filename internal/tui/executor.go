package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/uistate/internal/uistate"
)

// completionMsg carries a finished task's completion back into Update,
// which is the program's single loop.
type completionMsg struct {
	complete func()
}

type queuedTask struct {
	ctx  context.Context
	task uistate.Task
}

// cmd runs the task off the loop and wraps its completion as a message.
func (q queuedTask) cmd() tea.Msg {
	return completionMsg{complete: q.task(q.ctx)}
}

// Executor adapts uistate tasks to Bubble Tea commands. Tasks handed to Go
// are held until Drain turns them into a command; their completions arrive
// as messages and are applied by Apply.
type Executor struct {
	mu      sync.Mutex
	pending []queuedTask
	held    bool // Drain leaves tasks queued; tests step them with take
}

// NewExecutor creates an Executor with nothing pending.
func NewExecutor() *Executor {
	return &Executor{}
}

// Go implements uistate.Executor
func (e *Executor) Go(ctx context.Context, task uistate.Task) {
	e.mu.Lock()
	e.pending = append(e.pending, queuedTask{ctx: ctx, task: task})
	e.mu.Unlock()
}

// Drain returns a command running every task queued since the last call.
// Returns nil when nothing is queued.
func (e *Executor) Drain() tea.Cmd {
	if e.held {
		return nil
	}
	tasks := e.take()

	cmds := make([]tea.Cmd, len(tasks))
	for i, t := range tasks {
		cmds[i] = t.cmd
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (e *Executor) take() []queuedTask {
	e.mu.Lock()
	defer e.mu.Unlock()
	tasks := e.pending
	e.pending = nil
	return tasks
}

// Apply runs the completion carried by msg. Returns false for any other
// message.
func (e *Executor) Apply(msg tea.Msg) bool {
	c, ok := msg.(completionMsg)
	if !ok {
		return false
	}
	if c.complete != nil {
		c.complete()
	}
	return true
}

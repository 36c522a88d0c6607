package uistate

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Task is work that runs off the loop, typically one backend call. It
// returns the completion to run back on the loop, or nil for none.
type Task func(ctx context.Context) (complete func())

// Executor dispatches tasks off the loop and delivers their completions back
// onto it.
type Executor interface {
	Go(ctx context.Context, task Task)
}

// ManualExecutor holds tasks until the caller runs them. Tasks and their
// completions run synchronously on the calling goroutine.
type ManualExecutor struct {
	queue []manualTask
}

type manualTask struct {
	ctx  context.Context
	task Task
}

// NewManualExecutor creates an empty ManualExecutor.
func NewManualExecutor() *ManualExecutor {
	return &ManualExecutor{}
}

// Go implements Executor
func (e *ManualExecutor) Go(ctx context.Context, task Task) {
	e.queue = append(e.queue, manualTask{ctx: ctx, task: task})
}

// Pending returns the number of queued tasks.
func (e *ManualExecutor) Pending() int {
	return len(e.queue)
}

// RunNext runs the oldest queued task and its completion.
// Returns false if nothing was queued.
func (e *ManualExecutor) RunNext() bool {
	return e.RunAt(0)
}

// RunAt runs the i-th queued task out of order. Used to complete overlapping
// operations in a different order than they started.
func (e *ManualExecutor) RunAt(i int) bool {
	if i < 0 || i >= len(e.queue) {
		return false
	}
	t := e.queue[i]
	e.queue = append(e.queue[:i:i], e.queue[i+1:]...)

	if complete := t.task(t.ctx); complete != nil {
		complete()
	}
	return true
}

// RunAll runs queued tasks until none remain, including tasks queued by
// completions. Returns the number of tasks run.
func (e *ManualExecutor) RunAll() int {
	n := 0
	for e.RunNext() {
		n++
	}
	return n
}

// Loop runs tasks on their own goroutines and serializes their completions
// onto the goroutine that calls Run or RunUntilIdle.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	pending atomic.Int64
}

// NewLoop creates an idle Loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Do queues fn to run on the loop. Safe to call from any goroutine.
func (l *Loop) Do(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Go implements Executor
func (l *Loop) Go(ctx context.Context, task Task) {
	l.pending.Inc()
	go func() {
		complete := task(ctx)
		l.Do(func() {
			l.pending.Dec()
			if complete != nil {
				complete()
			}
		})
	}()
}

// Pending returns the number of tasks whose completion has not run yet.
func (l *Loop) Pending() int64 {
	return l.pending.Load()
}

// Run processes queued work until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if l.runQueued() {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// RunUntilIdle processes queued work until no task is in flight and the
// queue is empty, or ctx is done.
func (l *Loop) RunUntilIdle(ctx context.Context) error {
	for {
		if l.runQueued() {
			continue
		}
		if l.pending.Load() == 0 && l.queued() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// runQueued runs everything queued so far. Returns false if the queue was empty.
func (l *Loop) runQueued() bool {
	l.mu.Lock()
	fns := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns) > 0
}

func (l *Loop) queued() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

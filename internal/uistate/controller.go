package uistate

import (
	"context"

	"github.com/muurk/uistate/internal/logging"
	"go.uber.org/zap"
)

// Reducer computes the next state from the state current when it runs.
// Returning false drops the result and leaves the state untouched.
type Reducer[S any] func(S) (S, bool)

// Controller owns one screen's state and schedules its backend work.
//
// All methods except State must be called on the loop goroutine. State reads
// the underlying Store and is safe anywhere. The controller's context
// is cancelled by Close; completions that arrive afterwards are dropped.
type Controller[S any] struct {
	name     string
	store    *Store[S]
	exec     Executor
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
	inFlight int
	closed   bool
}

// NewController creates a controller named name holding initial.
// A nil logger falls back to the package logger.
func NewController[S any](name string, initial S, exec Executor, log *zap.Logger) *Controller[S] {
	if log == nil {
		log = logging.Named("uistate")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[S]{
		name:   name,
		store:  NewStore(initial),
		exec:   exec,
		ctx:    ctx,
		cancel: cancel,
		log:    log.With(zap.String("screen", name)),
	}
}

// Name returns the screen name used in logs.
func (c *Controller[S]) Name() string {
	return c.name
}

// State returns the current state.
func (c *Controller[S]) State() S {
	return c.store.Get()
}

// Set replaces the state.
func (c *Controller[S]) Set(next S) {
	prev := c.store.Get()
	c.store.Set(next)
	logging.LogTransition(c.log, c.name, prev, next)
}

// Update applies fn to the current state.
func (c *Controller[S]) Update(fn func(S) S) {
	c.Set(fn(c.State()))
}

// Subscribe registers fn for every state change.
func (c *Controller[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

// InFlight returns the number of launched tasks whose completion has not run.
func (c *Controller[S]) InFlight() int {
	return c.inFlight
}

// Closed reports whether Close has been called.
func (c *Controller[S]) Closed() bool {
	return c.closed
}

// Launch runs task off the loop and applies the reducer it returns once it
// completes. A nil reducer is ignored. Launch is a no-op after Close.
func (c *Controller[S]) Launch(op string, task func(ctx context.Context) Reducer[S]) {
	if c.closed {
		return
	}
	c.inFlight++
	c.log.Debug("Task launched", zap.String("op", op))

	c.exec.Go(c.ctx, func(ctx context.Context) func() {
		reduce := task(ctx)
		return func() {
			c.inFlight--
			if c.closed {
				c.log.Debug("Result dropped after close", zap.String("op", op))
				return
			}
			if reduce == nil {
				return
			}
			next, ok := reduce(c.State())
			if !ok {
				c.log.Debug("Stale result dropped", zap.String("op", op))
				return
			}
			c.Set(next)
		}
	})
}

// Close cancels outstanding work. Pending completions become no-ops.
func (c *Controller[S]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.log.Debug("Controller closed", zap.Int("in_flight", c.inFlight))
}

// Package uistate implements the client-side state machines shared by every
// screen: data loading, pagination, submission, optimistic toggles and the
// discard-confirmation gate. Nothing here depends on a UI framework.
//
// # State Model
//
// Each screen controller owns exactly one immutable state value S held in a
// Store. Every transition builds a new S and replaces the old one wholesale,
// so subscribers always observe a consistent snapshot and tests can compare
// states by value.
//
// The reusable machines are plain value types with transition methods:
//
//   - LoadState[T]: Initial → Loading → Success(data) | Error(cause)
//   - PagedList[T] + NextState: NoNext | HasNext | Loading | Error(cause)
//   - SubmitState: Idle → Submitting → Submitted | Error(cause)
//   - SwitchList: per-item checked + submitting flags
//   - EditableField + DiscardGate: dirty tracking and leave confirmation
//
// Load, LoadNext, Submit and Toggle drive those values through a Controller.
// Each takes a small descriptor (LoadSpec, NextSpec, SubmitSpec or
// ToggleSpec) with Get/Set funcs that locate the machine inside the
// screen's state, plus the backend call to make.
//
// # Scheduling
//
// All transitions happen on one logical loop. Backend calls run off the loop
// through an Executor; each call returns a reducer that is applied back on
// the loop to whatever the state is by then. Single-flight guards (Loading,
// Submitting, per-item submitting) turn repeated requests into no-ops, and
// every reducer checks the state shape first so a late result is dropped
// rather than applied to a state that has moved on.
//
// Three executors exist:
//
//   - ManualExecutor: queues tasks until the caller runs them. Tests use it
//     to hold a backend call "in flight" while poking at the controller.
//   - Loop: real goroutines with completions serialized onto the goroutine
//     that calls Run or RunUntilIdle.
//   - the TUI's executor, which turns tasks into bubbletea commands.
//
// # Usage Example
//
//	exec := uistate.NewManualExecutor()
//	c := uistate.NewController("items", uistate.Initial[[]string](), exec, zap.NewNop())
//
//	uistate.Load(c, uistate.LoadSpec[uistate.LoadState[[]string], []string]{
//	    Op:    "fetch_items",
//	    Get:   uistate.Self[[]string],
//	    Set:   uistate.Replace[[]string],
//	    Fetch: fetchItems,
//	})
//	exec.RunAll()
//	fmt.Println(c.State()) // Success(...)
//
// # Thread Safety
//
// Store, and Controller.State on top of it, may be used from any goroutine.
// The rest of Controller, ManualExecutor and the drivers are confined to the
// loop goroutine.
package uistate

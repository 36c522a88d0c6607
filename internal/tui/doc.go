// Package tui is the interactive front end for the sample screens.
//
// A menu lists every screen. Opening one builds its controller from the
// screens package, and closing it tears the controller down so late
// results are dropped.
//
// # Single Loop
//
// Bubble Tea's Update is the loop all state changes run on. Screens are
// given an Executor that turns each backend call into a tea.Cmd. The call
// runs on Bubble Tea's command goroutines, and its completion returns as a
// message that Update applies:
//
//	exec := tui.NewExecutor()
//	screen := screens.NewItemList(screens.Deps{Service: svc, Executor: exec})
//	cmd := exec.Drain() // returned from Init or Update
//
// # Key Bindings
//
// Help only lists bindings that apply to the current screen and dialog:
//   - Menu: ↑/↓ navigate, Enter open, q quit
//   - Lists: r reload, n load more (paging), space toggle (settings), Esc back
//   - Order: c cancel, r reload
//   - Editors: Enter save, Esc leave (asks before discarding), ctrl+r retry a failed load
//   - Dialogs: Enter dismiss, y/n for the discard confirmation
//   - Everywhere: ctrl+f makes every backend call fail or succeed, ctrl+c quit
//
// # Drafts
//
// Quitting with unsaved text in an editor saves it to the draft store. The
// next time that screen opens the text is restored. Drafts are dropped once
// the screen is submitted or its changes are discarded.
package tui

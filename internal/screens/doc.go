// Package screens contains the seven sample screen controllers. Each one is
// a uistate.Controller over a single immutable state value, wired to the
// backend.Service it was constructed with.
//
// Screens start loading as soon as they are constructed. Editing screens
// accept an optional uistate.Snapshot holding an edit that survived the
// previous instance of the screen, and hand one back from Snapshot.
package screens

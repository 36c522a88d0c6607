// Package savedstate keeps the drafts of editing screens between screen
// instances and between program runs.
//
// A draft is a uistate.Snapshot stored under the screen's name. MemoryStore
// keeps drafts for the lifetime of the process; FileStore additionally
// persists them to drafts.yaml in the configuration directory.
package savedstate

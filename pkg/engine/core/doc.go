// Package core contains plumbing shared by the engine: context option keys
// for logging and the diagnostic sinks unhandled faults are printed to. It
// does not know about continuations or handlers.
package core

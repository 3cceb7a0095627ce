// Package engine routes faults raised by lightweight processes to the handler
// that guards them and gives process chains a lazily created identity.
//
// Highlights:
// - Handle: dispatch a fault to the installed handler or to the scheduler's
//   top-level policy (print the causal chain, or run a recovery job)
// - Terminate: resume an optional continuation without a value
// - GetProc: return the Proc of a chain, allocating it on first demand with a
//   single compare-and-publish into the chain's Slot
// - Worker.Run: run one step and turn escaping panics into dispatched faults
// - HandlerState: payload carrier for concrete handling policies
//
// Diagnostics go to the scheduler's core.Sink in this shape:
//
//	Unhandled exception: <err>
//	Caused by: <cause>
//	No other causes.
package engine

package engine

import "runtime"

// procFinalizer is the continuation published into a slot when a chain is
// first asked for its identity. It owns the chain's Proc and terminates it
// when resumed, when it handles a fault, or when it is reclaimed.
type procFinalizer[X any] struct {
	sr *Scheduler
	pr *Proc
}

func newProcFinalizer[X any](sr *Scheduler, pr *Proc) *procFinalizer[X] {
	return &procFinalizer[X]{sr: sr, pr: pr}
}

type procRelease struct {
	sr *Scheduler
	pr *Proc
}

func releaseProc(rel procRelease) {
	rel.sr.terminateProc(rel.pr)
}

// own ties termination of the proc to reclamation of f. Only the finalizer
// that won publication into the slot may call it.
func (f *procFinalizer[X]) own() {
	runtime.AddCleanup(f, releaseProc, procRelease{sr: f.sr, pr: f.pr})
	f.sr.procRegistered(f.pr)
}

func (f *procFinalizer[X]) GetProc(*Worker) *Proc {
	return f.pr
}

func (f *procFinalizer[X]) DoHandle(wr *Worker, err error) {
	defer f.sr.terminateProc(f.pr)
	handleNull(wr, err)
}

func (f *procFinalizer[X]) DoWork(*Worker) {
	f.sr.terminateProc(f.pr)
}

func (f *procFinalizer[X]) DoCont(*Worker, X) {
	f.sr.terminateProc(f.pr)
}

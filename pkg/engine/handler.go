package engine

import "errors"

var (
	// ErrTopLevelProc is raised when the identity of the top-level scope is
	// requested. It signals a caller bug and is never dispatched to handlers.
	ErrTopLevelProc = errors.New("engine: top level handler has no process")
	ErrNilCont      = errors.New("engine: nil continuation")
)

// Terminate resumes xK without a value when it is present.
func Terminate[X any](wr *Worker, xK Opt[Cont[X]]) {
	if k, ok := xK.Get(); ok {
		k.DoWork(wr)
	}
}

// GetProc returns the identity of the chain owning slot, creating it on
// first demand. Concurrent callers on the same slot all get the same Proc.
func GetProc[X any](wr *Worker, slot *Slot[X]) *Proc {
	if xK, ok := slot.Load().Get(); ok {
		return xK.GetProc(wr)
	}
	return allocProc(wr, slot)
}

//go:noinline
func allocProc[X any](wr *Worker, slot *Slot[X]) *Proc {
	xKn := newProcFinalizer[X](wr.Scheduler, newProc())
	xK, won := slot.Publish(xKn)
	if won {
		xKn.own()
		wr.Logger().Debug("proc allocated", "proc", xKn.pr.Id())
	} else {
		// xKn never owned anything; dropping it has no side effect.
		wr.Logger().Debug("proc publication lost", "discarded", xKn.pr.Id())
	}
	return xK.GetProc(wr)
}

// Handle dispatches err to hr, or to the scheduler's top-level policy when
// no handler is installed.
func Handle(hr Opt[Handler], wr *Worker, err error) {
	if h, ok := hr.Get(); ok {
		h.DoHandle(wr, err)
		return
	}
	handleNull(wr, err)
}

//go:noinline
func handleNull(wr *Worker, err error) {
	tlh := wr.Scheduler.TopLevelHandler()
	if tlh == nil {
		PrintExn(wr.Scheduler.Sink(), unhandledHeader, err)
		return
	}
	wr.Logger().Debug("delegating to top level handler", "error", describe(err))
	uK := topLevel{}
	wr.Handler = Some[Handler](uK)
	tlh(err).DoJob(wr, uK)
}

// topLevel guards a job started by the top-level handler. Faults in that job
// are printed and go no further.
type topLevel struct{}

func (topLevel) GetProc(*Worker) *Proc {
	panic(ErrTopLevelProc)
}

func (topLevel) DoHandle(wr *Worker, err error) {
	PrintExn(wr.Scheduler.Sink(), topLevelHeader, err)
}

func (topLevel) DoWork(*Worker) {}

func (topLevel) DoCont(*Worker, Unit) {}

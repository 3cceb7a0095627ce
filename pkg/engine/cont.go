package engine

// Unit is the value carried by continuations that resume with nothing.
type Unit = struct{}

// Handler catches faults for a guarded scope and reports the identity of the
// chain it guards.
type Handler interface {
	// DoHandle receives a fault. It is called at most once per fault.
	DoHandle(wr *Worker, err error)
	// GetProc returns the identity of the guarded chain.
	GetProc(wr *Worker) *Proc
}

// Cont is a resumable unit of a process chain. Every continuation can also
// act as the handler of the scope it belongs to.
type Cont[X any] interface {
	Handler
	// DoWork resumes without a value
	DoWork(wr *Worker)
	// DoCont resumes with x
	DoCont(wr *Worker, x X)
}

// Job starts a computation whose result is delivered to xK.
type Job[X any] interface {
	DoJob(wr *Worker, xK Cont[X])
}

// JobFunc adapts a function to Job.
type JobFunc[X any] func(wr *Worker, xK Cont[X])

func (f JobFunc[X]) DoJob(wr *Worker, xK Cont[X]) { f(wr, xK) }

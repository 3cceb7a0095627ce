package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"runtime/debug"

	"github.com/ib-77/hopcore/pkg/engine/core"
)

// Worker is the execution context of one step of one process chain. It is
// owned by the goroutine running that step and must not be shared.
type Worker struct {
	ctx       context.Context
	Scheduler *Scheduler
	// Handler is the handler of the innermost guarded scope.
	Handler Opt[Handler]
}

func NewWorker(ctx context.Context, scheduler *Scheduler) *Worker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Worker{ctx: ctx, Scheduler: scheduler}
}

func (wr *Worker) Context() context.Context {
	return wr.ctx
}

func (wr *Worker) Logger() *slog.Logger {
	return core.Logger(wr.ctx, wr.Scheduler.Logger())
}

// PanicError is the fault raised for a panic escaping a step.
type PanicError struct {
	Value any
	// Stack is the goroutine stack at the point the panic was recovered.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Format prints the stack after the message for %+v.
func (e *PanicError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		_, _ = io.WriteString(s, e.Error())
		if len(e.Stack) > 0 {
			_, _ = io.WriteString(s, "\n")
			_, _ = s.Write(e.Stack)
		}
	case verb == 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}

// HandlerError is dispatched when a handler faults while handling Handled
// and leaves itself installed.
type HandlerError struct {
	Handled error
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler failed on %q: %v", describe(e.Handled), describe(e.Err))
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Run executes one step. A fault escaping step is dispatched to the handler
// installed at the time of the fault. A fault raised while dispatching goes
// to the newly installed handler when the failed handler replaced itself,
// and to the top-level policy when it did not. The top-level sentinel is the
// last layer: a fault escaping it is not caught.
func (wr *Worker) Run(step func(wr *Worker)) {
	err := wr.try(step)
	hr := wr.Handler
	for err != nil {
		fault := err
		h, present := hr.Get()
		if present {
			if _, last := h.(topLevel); last {
				h.DoHandle(wr, fault)
				return
			}
		}
		target := hr
		err = wr.try(func(wr *Worker) { Handle(target, wr, fault) })
		if err == nil {
			return
		}
		switch {
		case !sameHandler(hr, wr.Handler):
			hr = wr.Handler
		case present:
			err = &HandlerError{Handled: fault, Err: err}
			hr = None[Handler]()
		default:
			// the top-level print itself failed
			panic(err)
		}
	}
}

func (wr *Worker) try(f func(wr *Worker)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrTopLevelProc) {
				panic(r)
			}
			pe := &PanicError{Value: r, Stack: debug.Stack()}
			wr.Logger().Debug("step panicked", "error", pe.Error(), "stack", string(pe.Stack))
			err = pe
		}
	}()
	f(wr)
	return nil
}

// sameHandler reports whether b holds the handler a holds. Handlers of
// uncomparable value types are treated as unchanged.
func sameHandler(a, b Opt[Handler]) (same bool) {
	ha, aok := a.Get()
	hb, bok := b.Get()
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	va, vb := reflect.ValueOf(ha), reflect.ValueOf(hb)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if !va.Type().Comparable() {
		return true
	}
	defer func() {
		if recover() != nil {
			same = true
		}
	}()
	return ha == hb
}

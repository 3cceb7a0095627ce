package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/ib-77/hopcore/pkg/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoFault(t *testing.T) {
	t.Parallel()
	wr, sink := newTestWorker()

	ran := false
	wr.Run(func(*Worker) { ran = true })

	assert.True(t, ran)
	assert.Empty(t, sink.Lines())
}

func TestRun_PanicGoesToInstalledHandler(t *testing.T) {
	t.Parallel()
	wr, sink := newTestWorker()

	h := &recordingCont[Unit]{}
	wr.Handler = Some[Handler](h)
	cause := errors.New("disk full")
	wr.Run(func(*Worker) { panic(cause) })

	require.Len(t, h.faults, 1)
	var pe *PanicError
	require.ErrorAs(t, h.faults[0], &pe)
	assert.ErrorIs(t, h.faults[0], cause)
	assert.Empty(t, sink.Lines())
}

func TestRun_PanicWithoutHandlerPrints(t *testing.T) {
	t.Parallel()
	wr, sink := newTestWorker()

	wr.Run(func(*Worker) { panic("boom") })

	assert.Equal(t, []string{"Unhandled exception: panic: boom", "No other causes."}, sink.Lines())
}

func TestRun_HandlerFaultIsRedispatched(t *testing.T) {
	t.Parallel()
	wr, sink := newTestWorker()

	outer := &recordingCont[Unit]{}
	wr.Handler = Some[Handler](handlerFunc(func(wr *Worker, err error) {
		wr.Handler = Some[Handler](outer)
		panic("handler failed")
	}))
	wr.Run(func(*Worker) { panic("step failed") })

	require.Len(t, outer.faults, 1)
	assert.EqualError(t, outer.faults[0], "panic: handler failed")
	assert.Empty(t, sink.Lines())
}

func TestRun_TopLevelProcIsFatal(t *testing.T) {
	t.Parallel()
	wr, _ := newTestWorker()

	assert.PanicsWithValue(t, ErrTopLevelProc, func() {
		wr.Run(func(wr *Worker) { topLevel{}.GetProc(wr) })
	})
}

func TestWorker_LoggerFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctxLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sr := NewScheduler(WithSink(core.NewChanSink(4)))

	wr := NewWorker(core.WithLogger(context.Background(), ctxLogger), sr)
	assert.Same(t, ctxLogger, wr.Logger())

	var slot Slot[int]
	GetProc(wr, &slot)
	assert.Contains(t, buf.String(), "proc allocated")

	assert.Same(t, sr.Logger(), NewWorker(nil, sr).Logger())
}

func runWithin(t *testing.T, wr *Worker, step func(*Worker)) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		wr.Run(step)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRun_HandlerThatKeepsFailingFallsBackToPrint(t *testing.T) {
	t.Parallel()
	wr, sink := newTestWorker()

	calls := 0
	wr.Handler = Some[Handler](handlerFunc(func(*Worker, error) {
		calls++
		panic("handler always fails")
	}))
	runWithin(t, wr, func(*Worker) { panic("step") })

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{
		`Unhandled exception: handler failed on "panic: step": panic: handler always fails`,
		"Caused by: panic: handler always fails",
		"No other causes.",
	}, sink.Lines())
}

func TestRun_HandlerThatKeepsFailingFallsBackToRecoveryJob(t *testing.T) {
	t.Parallel()

	var handled []error
	wr, sink := newTestWorker(WithTopLevelHandler(func(err error) Job[Unit] {
		return JobFunc[Unit](func(wr *Worker, uK Cont[Unit]) {
			handled = append(handled, err)
			uK.DoWork(wr)
		})
	}))

	wr.Handler = Some[Handler](&panickingHandler{})
	runWithin(t, wr, func(*Worker) { panic("step") })

	require.Len(t, handled, 1)
	var he *HandlerError
	require.ErrorAs(t, handled[0], &he)
	assert.EqualError(t, he.Handled, "panic: step")
	assert.Empty(t, sink.Lines())
}

type panickingHandler struct{}

func (*panickingHandler) DoHandle(*Worker, error) { panic("nope") }

func (*panickingHandler) GetProc(*Worker) *Proc { return nil }

func TestPanicError_CarriesStack(t *testing.T) {
	t.Parallel()
	wr, _ := newTestWorker()

	h := &recordingCont[Unit]{}
	wr.Handler = Some[Handler](h)
	wr.Run(func(*Worker) { panic("where") })

	require.Len(t, h.faults, 1)
	var pe *PanicError
	require.ErrorAs(t, h.faults[0], &pe)
	assert.Contains(t, string(pe.Stack), "TestPanicError_CarriesStack")
	assert.Equal(t, "panic: where", fmt.Sprintf("%v", pe))
	assert.Contains(t, fmt.Sprintf("%+v", pe), "goroutine")
}

func TestSameHandler(t *testing.T) {
	t.Parallel()

	a := &recordingCont[Unit]{}
	b := &recordingCont[Unit]{}
	f := handlerFunc(func(*Worker, error) {})

	assert.True(t, sameHandler(None[Handler](), None[Handler]()))
	assert.True(t, sameHandler(Some[Handler](a), Some[Handler](a)))
	assert.True(t, sameHandler(Some[Handler](f), Some[Handler](f)))
	assert.True(t, sameHandler(Some[Handler](topLevel{}), Some[Handler](topLevel{})))
	assert.False(t, sameHandler(Some[Handler](a), Some[Handler](b)))
	assert.False(t, sameHandler(Some[Handler](a), None[Handler]()))
	assert.False(t, sameHandler(Some[Handler](a), Some[Handler](f)))
}

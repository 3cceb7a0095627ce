package engine

import (
	"context"

	"github.com/ib-77/hopcore/pkg/engine/core"
)

type recordingCont[X any] struct {
	works  int
	values []X
	faults []error
	proc   *Proc
}

func (c *recordingCont[X]) DoWork(*Worker) { c.works++ }

func (c *recordingCont[X]) DoCont(_ *Worker, x X) { c.values = append(c.values, x) }

func (c *recordingCont[X]) DoHandle(_ *Worker, err error) { c.faults = append(c.faults, err) }

func (c *recordingCont[X]) GetProc(*Worker) *Proc { return c.proc }

func newTestWorker(options ...Option) (*Worker, *core.ChanSink) {
	sink := core.NewChanSink(64)
	options = append([]Option{WithSink(sink)}, options...)
	return NewWorker(context.Background(), NewScheduler(options...)), sink
}

type handlerFunc func(wr *Worker, err error)

func (f handlerFunc) DoHandle(wr *Worker, err error) { f(wr, err) }

func (f handlerFunc) GetProc(*Worker) *Proc { return nil }

package core

import (
	"context"
	"io"
	"sync"
)

// Sink receives diagnostic output one physical line at a time.
type Sink interface {
	WriteLine(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

func (f SinkFunc) WriteLine(text string) { f(text) }

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// WriterSink writes every line to w followed by a newline. Lines from
// concurrent writers are not interleaved.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, text+"\n")
}

// ChanSink forwards lines to a buffered channel. WriteLine blocks when the
// buffer is full, so size it for the expected output or drain it with Lines.
type ChanSink struct {
	ch chan string
}

func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan string, buffer)}
}

func (s *ChanSink) WriteLine(text string) {
	s.ch <- text
}

// Close ends the output; Collect on Out returns once the buffer is drained.
// WriteLine must not be called after Close.
func (s *ChanSink) Close() {
	close(s.ch)
}

// Out exposes the receiving side of the sink.
func (s *ChanSink) Out() <-chan string {
	return s.ch
}

// Lines drains whatever is currently buffered in the sink without waiting
// for more output.
func (s *ChanSink) Lines() []string {
	res := make([]string, 0, len(s.ch))
	for {
		select {
		case line := <-s.ch:
			res = append(res, line)
		default:
			return res
		}
	}
}

// Collect reads lines from out until it is closed or ctx is done.
func Collect(ctx context.Context, out <-chan string) []string {
	res := make([]string, 0)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}

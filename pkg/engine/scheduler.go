package engine

import (
	"log/slog"
	"os"

	"github.com/ib-77/hopcore/pkg/engine/core"
)

// ProcObserver is notified about proc cleanup registrations and terminations.
// Callbacks may run on any goroutine, including the runtime's cleanup
// goroutine, and must not block.
type ProcObserver struct {
	Registered func(p *Proc)
	Terminated func(p *Proc)
}

// Config holds the scheduler settings this engine reads. It is fixed when the
// scheduler is built.
type Config struct {
	// TopLevelHandler turns an unhandled fault into a recovery job. When nil,
	// unhandled faults are printed to Sink.
	TopLevelHandler func(err error) Job[Unit]
	Sink            core.Sink
	Logger          *slog.Logger
	Observer        ProcObserver
}

func DefaultConfig() Config {
	return Config{
		Sink:   core.WriterSink(os.Stderr),
		Logger: slog.Default(),
	}
}

// Scheduler exposes the process-wide fault policy to workers. It is safe for
// concurrent use because nothing in it changes after NewScheduler returns.
type Scheduler struct {
	config Config
}

type Option func(*Config)

// WithTopLevelHandler sets the fallback invoked for faults no handler catches.
func WithTopLevelHandler(fn func(err error) Job[Unit]) Option {
	return func(c *Config) {
		c.TopLevelHandler = fn
	}
}

// WithSink sets where diagnostics are printed.
func WithSink(sink core.Sink) Option {
	return func(c *Config) {
		if sink != nil {
			c.Sink = sink
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithProcObserver installs instrumentation for proc lifecycles.
func WithProcObserver(observer ProcObserver) Option {
	return func(c *Config) {
		c.Observer = observer
	}
}

func NewScheduler(options ...Option) *Scheduler {
	config := DefaultConfig()
	for _, opt := range options {
		opt(&config)
	}
	return &Scheduler{config: config}
}

// TopLevelHandler returns the configured fallback, or nil.
func (s *Scheduler) TopLevelHandler() func(err error) Job[Unit] {
	return s.config.TopLevelHandler
}

func (s *Scheduler) Sink() core.Sink {
	return s.config.Sink
}

func (s *Scheduler) Logger() *slog.Logger {
	return s.config.Logger
}

func (s *Scheduler) procRegistered(p *Proc) {
	if fn := s.config.Observer.Registered; fn != nil {
		fn(p)
	}
}

func (s *Scheduler) terminateProc(p *Proc) {
	if !p.terminate() {
		return
	}
	if fn := s.config.Observer.Terminated; fn != nil {
		fn(p)
	}
}

package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// newID is a thin wrapper so tests can stub identifiers.
var newID = uuid.New

// Proc is the identity of a lightweight process. It is created lazily, the
// first time anyone asks a chain for its identity, and terminated once.
type Proc struct {
	id        uuid.UUID
	createdAt time.Time
	once      sync.Once
	done      chan struct{}
}

func newProc() *Proc {
	return &Proc{
		id:        newID(),
		createdAt: time.Now().UTC(),
		done:      make(chan struct{}),
	}
}

func (p *Proc) Id() uuid.UUID {
	return p.id
}

func (p *Proc) CreatedAt() time.Time {
	return p.createdAt
}

// Done is closed when the process terminates.
func (p *Proc) Done() <-chan struct{} {
	return p.done
}

func (p *Proc) IsTerminated() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Join waits until the process terminates or ctx is done.
func (p *Proc) Join(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Proc) String() string {
	return "proc:" + p.id.String()
}

// terminate reports whether this call was the one that terminated p.
func (p *Proc) terminate() bool {
	terminated := false
	p.once.Do(func() {
		close(p.done)
		terminated = true
	})
	return terminated
}

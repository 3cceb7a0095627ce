package engine

import "sync/atomic"

type slotted[X any] struct {
	k Cont[X]
}

// Slot is the cell a process chain keeps its identity-bearing continuation
// in. It starts empty and is published to at most once; it never becomes
// empty again.
type Slot[X any] struct {
	p atomic.Pointer[slotted[X]]
}

// Load returns the published continuation, if any.
func (s *Slot[X]) Load() Opt[Cont[X]] {
	if e := s.p.Load(); e != nil {
		return Some(e.k)
	}
	return None[Cont[X]]()
}

// Publish stores k if the slot is still empty. It returns the continuation
// that ends up in the slot and whether it is k.
func (s *Slot[X]) Publish(k Cont[X]) (Cont[X], bool) {
	if k == nil {
		panic(ErrNilCont)
	}
	if s.p.CompareAndSwap(nil, &slotted[X]{k: k}) {
		return k, true
	}
	return s.p.Load().k, false
}

package service

import "sync/atomic"

// inFlight rejects a second submission while the first is pending, the way a
// form disables its button until the response arrives.
type inFlight struct {
	busy atomic.Bool
}

func (f *inFlight) acquire() bool { return f.busy.CompareAndSwap(false, true) }

func (f *inFlight) release() { f.busy.Store(false) }

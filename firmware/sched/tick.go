package sched

import "sync/atomic"

// TickFlag is the handshake between the timer interrupt and the control
// loop: the interrupt context only sets it, the loop context only clears
// it.
//
// It is a boolean, not a counter. Ticks signalled between two Take calls
// coalesce into one, so when the loop runs slow, scheduled delays under-run
// real time by however many ticks were merged. That approximation is part
// of the contract.
type TickFlag struct {
	pending atomic.Bool
}

// Signal marks a tick pending. Interrupt context only.
func (f *TickFlag) Signal() {
	f.pending.Store(true)
}

// Take reports whether a tick was pending and clears it. Loop context only.
func (f *TickFlag) Take() bool {
	return f.pending.Swap(false)
}

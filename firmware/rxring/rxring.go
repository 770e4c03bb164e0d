// Package rxring implements the receive ring sitting between the UART RX
// interrupt and the control loop.
package rxring

import "sync/atomic"

// Size is the ring capacity in slots. One slot is always kept empty to
// tell full from empty without a shared count field, so Size-1 bytes are
// usable.
const Size = 64

// Ring is a single-producer single-consumer byte ring.
//
// head is written only by the producer (interrupt context), tail only by
// the consumer (loop context). The indices are atomics so that each side
// observes the other's published value as a whole on any word size; the
// data slot is written before the index that publishes it.
type Ring struct {
	buf  [Size]byte
	head atomic.Uint32
	tail atomic.Uint32
}

// Push stores one byte. Producer context only.
//
// When the ring is full the byte is dropped and Push reports false; the
// producer never waits.
func (r *Ring) Push(b byte) bool {
	h := r.head.Load()
	next := (h + 1) % Size
	if next == r.tail.Load() {
		return false
	}
	r.buf[h] = b       // 1) write data
	r.head.Store(next) // 2) publish
	return true
}

// Pop returns the oldest buffered byte. Consumer context only.
func (r *Ring) Pop() (byte, bool) {
	t := r.tail.Load()
	if t == r.head.Load() {
		return 0, false
	}
	b := r.buf[t]
	r.tail.Store((t + 1) % Size)
	return b, true
}

// Empty reports whether no bytes are buffered.
func (r *Ring) Empty() bool {
	return r.head.Load() == r.tail.Load()
}

// Full reports whether the next Push would drop.
func (r *Ring) Full() bool {
	return (r.head.Load()+1)%Size == r.tail.Load()
}

//go:build !tinygo

package hal

import "time"

type hostTime struct {
	ch  chan uint64
	seq uint64
}

// newHostTime starts a free-running ticker at the given period.
//
// Sends are non-blocking: if the consumer falls behind, tick values are
// dropped rather than queued without bound.
func newHostTime(period time.Duration) *hostTime {
	t := &hostTime{ch: make(chan uint64, 64)}
	go t.run(period)
	return t
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) run(period time.Duration) {
	tick := time.NewTicker(period)
	defer tick.Stop()
	for range tick.C {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

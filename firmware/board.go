// Package firmware wires the receive ring, the task queue, the tick flag
// and the persistence store to the HAL and runs the control loop.
package firmware

import (
	"context"
	"time"

	"github.com/Poorna2411/embedded-systems-projects/firmware/rxring"
	"github.com/Poorna2411/embedded-systems-projects/firmware/sched"
	"github.com/Poorna2411/embedded-systems-projects/firmware/shell"
	"github.com/Poorna2411/embedded-systems-projects/firmware/store"
	"github.com/Poorna2411/embedded-systems-projects/hal"
)

// maxLine bounds the command accumulator; bytes past it are discarded
// until the line terminator arrives.
const maxLine = sched.MaxPayload - 1

// Board is the firmware instance.
//
// Two goroutines stand in for the interrupt handlers: the serial pump is
// the RX interrupt (sole producer of the ring), the tick pump is the timer
// interrupt (sole setter of the tick flag). Everything else runs in the
// single cooperative loop.
type Board struct {
	h     hal.HAL
	ring  rxring.Ring
	queue *sched.Queue
	tick  sched.TickFlag
	sh    *shell.Shell

	line [maxLine]byte
	n    int
}

func NewBoard(h hal.HAL) *Board {
	q := sched.NewQueue()
	st := store.New(h.EEPROM())
	return &Board{
		h:     h,
		queue: q,
		sh:    shell.New(h.LED(), h.Serial(), q, st),
	}
}

// Run starts the interrupt pumps and drives the cooperative loop until the
// context is cancelled.
func (b *Board) Run(ctx context.Context) error {
	b.h.Serial().Write([]byte("System Ready\n"))

	go b.pumpSerial(ctx)
	go b.pumpTicks(ctx)

	poll := time.NewTicker(time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			b.Step()
		}
	}
}

// pumpSerial is the RX interrupt analog: it moves bytes from the UART into
// the ring and drops them when the ring is full.
func (b *Board) pumpSerial(ctx context.Context) {
	var buf [1]byte
	for ctx.Err() == nil {
		n, err := b.h.Serial().Read(buf[:])
		if n > 0 {
			b.ring.Push(buf[0])
		}
		if err != nil {
			return
		}
	}
}

// pumpTicks is the timer interrupt analog.
func (b *Board) pumpTicks(ctx context.Context) {
	ticks := b.h.Time().Ticks()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			b.tick.Signal()
		}
	}
}

// Step runs one loop iteration: drain the ring into the line accumulator,
// dispatch completed lines, then apply at most one pending tick.
func (b *Board) Step() {
	for {
		c, ok := b.ring.Pop()
		if !ok {
			break
		}
		b.h.Serial().WriteByte(c) // echo
		if c == '\n' || c == '\r' {
			if b.n > 0 {
				b.sh.Dispatch(string(b.line[:b.n]))
			}
			b.n = 0
			continue
		}
		if b.n < maxLine {
			b.line[b.n] = c
			b.n++
		}
	}

	if b.tick.Take() {
		b.queue.Tick(b.execute)
	}
}

// execute is the sink for due tasks: a notification on the serial line.
func (b *Board) execute(payload string) {
	s := b.h.Serial()
	s.Write([]byte("Task: "))
	s.Write([]byte(payload))
	s.Write([]byte("\n"))
}

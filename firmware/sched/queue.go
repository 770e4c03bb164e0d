// Package sched holds the deferred-task queue and the tick handshake that
// drives it.
package sched

import "errors"

const (
	// MaxPayload is the task payload buffer size, terminator included.
	MaxPayload = 32

	// maxEntries bounds the arena backing the queue.
	maxEntries = 16

	none = -1
)

// ErrOutOfMemory is returned by Insert when every arena slot is in use.
var ErrOutOfMemory = errors.New("sched: no free task slots")

type entry struct {
	payload  [MaxPayload]byte
	delay    uint16
	priority uint8
	next     int
}

// Queue is a priority-ordered list of pending deferred tasks.
//
// Entries are kept in non-decreasing priority order (lower value runs
// first); entries of equal priority stay in insertion order. Nodes live in
// a fixed arena with a free list, so exhaustion is an explicit error
// rather than a failed allocation.
type Queue struct {
	arena [maxEntries]entry
	head  int
	free  int
	n     int
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{head: none, free: 0}
	for i := range q.arena {
		q.arena[i].next = i + 1
	}
	q.arena[maxEntries-1].next = none
	return q
}

// Len returns the number of pending entries.
func (q *Queue) Len() int { return q.n }

func (q *Queue) alloc() (int, bool) {
	if q.free == none {
		return none, false
	}
	i := q.free
	q.free = q.arena[i].next
	return i, true
}

func (q *Queue) release(i int) {
	q.arena[i] = entry{next: q.free}
	q.free = i
	q.n--
}

func setPayload(dst *[MaxPayload]byte, s string) {
	n := copy(dst[:MaxPayload-1], s)
	dst[n] = 0
}

func payloadString(buf *[MaxPayload]byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf[:])
}

// Insert queues a task. The payload is truncated to MaxPayload-1 bytes.
//
// The new entry goes after every existing entry of equal or higher-ranked
// (numerically smaller or equal) priority, so ties preserve insertion
// order; it goes to the front only when strictly more urgent than the
// current head.
func (q *Queue) Insert(payload string, priority uint8, delayTicks uint16) error {
	i, ok := q.alloc()
	if !ok {
		return ErrOutOfMemory
	}
	e := &q.arena[i]
	setPayload(&e.payload, payload)
	e.delay = delayTicks
	e.priority = priority
	e.next = none
	q.n++

	if q.head == none || priority < q.arena[q.head].priority {
		e.next = q.head
		q.head = i
		return nil
	}

	at := q.head
	for q.arena[at].next != none && q.arena[q.arena[at].next].priority <= priority {
		at = q.arena[at].next
	}
	e.next = q.arena[at].next
	q.arena[at].next = i
	return nil
}

// PushFront links a task at the head, bypassing priority order.
//
// This is the raw insertion the persistence load path uses; everything
// else goes through Insert.
func (q *Queue) PushFront(payload string, priority uint8, delayTicks uint16) error {
	i, ok := q.alloc()
	if !ok {
		return ErrOutOfMemory
	}
	e := &q.arena[i]
	setPayload(&e.payload, payload)
	e.delay = delayTicks
	e.priority = priority
	e.next = q.head
	q.head = i
	q.n++
	return nil
}

// Tick advances the scheduling clock by one.
//
// Waiting entries have their delay decremented in place; an entry becomes
// due the tick its delay reaches zero, so delay N runs on the Nth tick.
// Due entries are handed to execute exactly once, unlinked and released;
// the order of the remaining entries is untouched.
func (q *Queue) Tick(execute func(payload string)) {
	cur := q.head
	prev := none
	for cur != none {
		e := &q.arena[cur]
		if e.delay > 0 {
			e.delay--
		}
		if e.delay > 0 {
			prev = cur
			cur = e.next
			continue
		}

		next := e.next // capture before release
		if execute != nil {
			execute(payloadString(&e.payload))
		}
		if prev == none {
			q.head = next
		} else {
			q.arena[prev].next = next
		}
		q.release(cur)
		cur = next
	}
}

// Render walks the queue front to back without mutating it, calling visit
// with the 1-based position of each entry. Returning false stops the walk.
func (q *Queue) Render(visit func(pos int, priority uint8, payload string) bool) {
	pos := 1
	for cur := q.head; cur != none; cur = q.arena[cur].next {
		e := &q.arena[cur]
		if !visit(pos, e.priority, payloadString(&e.payload)) {
			return
		}
		pos++
	}
}

// Walk visits every entry front to back with its full record. Returning
// false stops the walk.
func (q *Queue) Walk(visit func(payload string, priority uint8, delay uint16) bool) {
	for cur := q.head; cur != none; cur = q.arena[cur].next {
		e := &q.arena[cur]
		if !visit(payloadString(&e.payload), e.priority, e.delay) {
			return
		}
	}
}

// Clear releases every entry.
func (q *Queue) Clear() {
	for q.head != none {
		next := q.arena[q.head].next
		q.release(q.head)
		q.head = next
	}
}

// Package store serializes the task queue to byte-addressed non-volatile
// memory.
//
// The layout is the legacy one: fixed-size records written contiguously
// from offset 0 with no header, count field or checksum. Whoever reads the
// store must know out of band how many records to expect.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Poorna2411/embedded-systems-projects/firmware/sched"
	"github.com/Poorna2411/embedded-systems-projects/hal"
)

const (
	// RecordSize is the serialized entry size: the payload buffer, a
	// little-endian uint16 delay and one priority byte.
	RecordSize = sched.MaxPayload + 2 + 1

	// MaxRecords is the record budget a full load reads back.
	MaxRecords = 10
)

// ErrIO wraps non-volatile store faults, including a save that would run
// past the end of the device.
var ErrIO = errors.New("store: i/o error")

// Store reads and writes task records on an EEPROM.
type Store struct {
	dev hal.EEPROM
}

func New(dev hal.EEPROM) *Store {
	return &Store{dev: dev}
}

func encode(rec []byte, payload string, priority uint8, delay uint16) {
	for i := range rec[:sched.MaxPayload] {
		rec[i] = 0
	}
	n := copy(rec[:sched.MaxPayload-1], payload)
	rec[n] = 0
	binary.LittleEndian.PutUint16(rec[sched.MaxPayload:], delay)
	rec[sched.MaxPayload+2] = priority
}

func decode(rec []byte) (payload string, priority uint8, delay uint16) {
	end := sched.MaxPayload
	for i, b := range rec[:sched.MaxPayload] {
		if b == 0 {
			end = i
			break
		}
	}
	payload = string(rec[:end])
	delay = binary.LittleEndian.Uint16(rec[sched.MaxPayload:])
	priority = rec[sched.MaxPayload+2]
	return payload, priority, delay
}

// Save writes every queued entry, front to back, at successive record
// offsets starting from 0. It returns the number of records written.
//
// The whole span is bounds-checked against the device before the first
// write; an overrun yields ErrIO with nothing written.
func (s *Store) Save(q *sched.Queue) (int, error) {
	need := uint32(q.Len()) * RecordSize
	if need > s.dev.SizeBytes() {
		return 0, fmt.Errorf("%w: %d records exceed %d bytes", ErrIO, q.Len(), s.dev.SizeBytes())
	}

	var rec [RecordSize]byte
	var off uint32
	written := 0
	var werr error
	q.Walk(func(payload string, priority uint8, delay uint16) bool {
		encode(rec[:], payload, priority, delay)
		if _, err := s.dev.WriteAt(rec[:], off); err != nil {
			werr = fmt.Errorf("%w: write record %d: %v", ErrIO, written, err)
			return false
		}
		off += RecordSize
		written++
		return true
	})
	return written, werr
}

// Load reads exactly records records from offset 0 and prepends each to
// the current queue, which is not cleared first.
//
// Loading into an empty queue therefore reproduces the saved entries in
// reverse order, and loading over a non-empty queue duplicates whatever is
// already there. That is the legacy contract; callers wanting a clean
// restore clear the queue themselves. It returns the number of records
// queued.
func (s *Store) Load(q *sched.Queue, records int) (int, error) {
	var rec [RecordSize]byte
	var off uint32
	for i := 0; i < records; i++ {
		if _, err := s.dev.ReadAt(rec[:], off); err != nil {
			return i, fmt.Errorf("%w: read record %d: %v", ErrIO, i, err)
		}
		off += RecordSize
		payload, priority, delay := decode(rec[:])
		if err := q.PushFront(payload, priority, delay); err != nil {
			return i, err
		}
	}
	return records, nil
}

// DecodeRecord decodes one serialized record. It is used by host tooling
// that inspects EEPROM images outside the firmware.
func DecodeRecord(rec []byte) (payload string, priority uint8, delay uint16, err error) {
	if len(rec) < RecordSize {
		return "", 0, 0, fmt.Errorf("%w: short record (%d bytes)", ErrIO, len(rec))
	}
	payload, priority, delay = decode(rec)
	return payload, priority, delay, nil
}

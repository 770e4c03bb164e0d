package hal

import (
	"errors"
	"time"
)

// TickPeriod is the scheduler tick interval.
const TickPeriod = 10 * time.Millisecond

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Serial is a byte-stream UART.
//
// Read blocks until at least one byte is available. Write may busy-wait on
// the transmit-ready condition at the hardware level; it is the single
// blocking point allowed to the control loop.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	WriteByte(b byte) error
}

// EEPROM provides raw access to byte-addressed non-volatile memory.
//
// Unlike NOR flash there are no erase blocks: any byte may be rewritten in
// place.
type EEPROM interface {
	SizeBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
}

// Time provides the scheduler tick stream.
//
// One value is sent per tick period. Sends are non-blocking; a slow consumer
// loses tick values rather than stalling the source.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the only contact point between the firmware and the hardware.
type HAL interface {
	Logger() Logger
	LED() LED
	Serial() Serial
	EEPROM() EEPROM
	Time() Time
}

//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	serial Serial
	eeprom *hostEEPROM
	t      *hostTime
}

// New returns a host HAL implementation.
//
// Serial is stdin/stdout, the EEPROM is a file-backed image and the tick
// stream is a free-running 10ms ticker.
func New() HAL {
	logger := &hostLogger{w: os.Stderr}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		serial: &hostSerial{r: os.Stdin, w: os.Stdout},
		eeprom: newHostEEPROM(),
		t:      newHostTime(TickPeriod),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Serial() Serial { return h.serial }
func (h *hostHAL) EEPROM() EEPROM { return h.eeprom }
func (h *hostHAL) Time() Time     { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}

//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

const (
	hostEEPROMDefaultPath = "cmdlogger.eeprom"
	// AT24C32 size, matching the board build.
	hostEEPROMDefaultSizeBytes = 4096
)

type hostEEPROM struct {
	mu   sync.Mutex
	f    *os.File
	size uint32
}

func newHostEEPROM() *hostEEPROM {
	path := os.Getenv("CMDLOGGER_EEPROM_PATH")
	if path == "" {
		path = hostEEPROMDefaultPath
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return &hostEEPROM{f: nil}
	}

	size := uint32(hostEEPROMDefaultSizeBytes)
	if st, err := f.Stat(); err == nil && st.Size() > 0 {
		if st.Size() > int64(^uint32(0)) {
			_ = f.Close()
			return &hostEEPROM{f: nil}
		}
		size = uint32(st.Size())
	} else {
		if err := f.Truncate(int64(size)); err != nil {
			_ = f.Close()
			return &hostEEPROM{f: nil}
		}
	}

	return &hostEEPROM{f: f, size: size}
}

func (e *hostEEPROM) SizeBytes() uint32 { return e.size }

func (e *hostEEPROM) ReadAt(p []byte, off uint32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= e.size {
		return 0, fmt.Errorf("eeprom read at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(e.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	return e.f.ReadAt(p, int64(off))
}

func (e *hostEEPROM) WriteAt(p []byte, off uint32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= e.size {
		return 0, fmt.Errorf("eeprom write at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(e.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	return e.f.WriteAt(p, int64(off))
}

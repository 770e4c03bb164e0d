//go:build tinygo

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/at24cx"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	serial *uartSerial
	eeprom *at24cxEEPROM
	t      *tinyGoTime
}

// New returns the board HAL.
//
// UART0 at 9600 8N1 carries the command stream; an AT24C32 EEPROM on I2C0
// is the non-volatile store.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: 9600})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	i2c := machine.I2C0
	_ = i2c.Configure(machine.I2CConfig{})
	dev := at24cx.New(i2c)
	dev.Configure(at24cx.Config{PageSize: 32})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		serial: &uartSerial{uart: uart},
		eeprom: &at24cxEEPROM{dev: &dev},
		t:      newTinyGoTime(TickPeriod),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) Serial() Serial { return h.serial }
func (h *tinyGoHAL) EEPROM() EEPROM { return h.eeprom }
func (h *tinyGoHAL) Time() Time     { return h.t }

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.Write([]byte("\r\n"))
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte("\r\n"))
}

type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	// Block until at least one byte is buffered by the RX interrupt.
	for s.uart.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}
	return s.uart.Read(p)
}

func (s *uartSerial) Write(p []byte) (int, error) { return s.uart.Write(p) }
func (s *uartSerial) WriteByte(b byte) error      { return s.uart.WriteByte(b) }

type at24cxEEPROM struct {
	dev *at24cx.Device
}

// AT24C32 capacity.
func (e *at24cxEEPROM) SizeBytes() uint32 { return 4096 }

func (e *at24cxEEPROM) ReadAt(p []byte, off uint32) (int, error) {
	return e.dev.ReadAt(p, int64(off))
}

func (e *at24cxEEPROM) WriteAt(p []byte, off uint32) (int, error) {
	return e.dev.WriteAt(p, int64(off))
}

type tinyGoTime struct {
	ch chan uint64
}

func newTinyGoTime(period time.Duration) *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 64)}
	go func() {
		var seq uint64
		for {
			time.Sleep(period)
			seq++
			select {
			case t.ch <- seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

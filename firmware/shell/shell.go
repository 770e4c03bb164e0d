// Package shell turns completed input lines into queue insertions and
// immediate actions.
package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Poorna2411/embedded-systems-projects/firmware/sched"
	"github.com/Poorna2411/embedded-systems-projects/firmware/store"
	"github.com/Poorna2411/embedded-systems-projects/hal"
)

// logPriority is the priority class for LOG and DELAY tasks.
const logPriority = 5

// Shell dispatches one command line at a time. It runs entirely in the
// loop context.
type Shell struct {
	led   hal.LED
	out   hal.Serial
	queue *sched.Queue
	store *store.Store
}

func New(led hal.LED, out hal.Serial, queue *sched.Queue, st *store.Store) *Shell {
	return &Shell{led: led, out: out, queue: queue, store: st}
}

func (s *Shell) reply(line string) {
	s.out.Write([]byte(line))
	s.out.Write([]byte("\n"))
}

// Dispatch executes one command line.
func (s *Shell) Dispatch(line string) {
	switch {
	case strings.HasPrefix(line, "LED ON"):
		s.led.High()
		s.reply("LED ON")
	case strings.HasPrefix(line, "LED OFF"):
		s.led.Low()
		s.reply("LED OFF")
	case strings.HasPrefix(line, "LOG "):
		if err := s.queue.Insert(line[4:], logPriority, 0); err != nil {
			s.reply("ERR: " + err.Error())
			return
		}
		s.reply("Log added")
	case strings.HasPrefix(line, "DELAY "):
		s.delay(line[6:])
	case strings.HasPrefix(line, "LIST"):
		s.list()
	case strings.HasPrefix(line, "SAVE"):
		if _, err := s.store.Save(s.queue); err != nil {
			s.reply("ERR: " + err.Error())
			return
		}
		s.reply("Logs saved to EEPROM.")
	case strings.HasPrefix(line, "LOAD"):
		if _, err := s.store.Load(s.queue, store.MaxRecords); err != nil {
			s.reply("ERR: " + err.Error())
			return
		}
		s.reply("Logs loaded from EEPROM.")
	default:
		s.reply("Unknown command")
	}
}

// delay parses "<ms> <message>" and queues the message after ms
// milliseconds, truncated to whole ticks.
func (s *Shell) delay(args string) {
	ms, msg, ok := splitDelay(args)
	if !ok {
		s.reply("Unknown command")
		return
	}
	ticks := ms / int(hal.TickPeriod/time.Millisecond)
	if err := s.queue.Insert(msg, logPriority, uint16(ticks)); err != nil {
		s.reply("ERR: " + err.Error())
		return
	}
	s.reply("Delayed task added")
}

func splitDelay(args string) (ms int, msg string, ok bool) {
	num, rest, found := strings.Cut(args, " ")
	if !found {
		return 0, "", false
	}
	ms, err := strconv.Atoi(num)
	if err != nil || ms < 0 {
		return 0, "", false
	}
	return ms, rest, true
}

func (s *Shell) list() {
	s.queue.Render(func(pos int, priority uint8, payload string) bool {
		s.reply(fmt.Sprintf("%d: [%d] %s", pos, priority, payload))
		return true
	})
}

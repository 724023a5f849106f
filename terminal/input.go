package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey    EventType = iota
	EventError            // Read error
	EventClosed           // Input closed
)

// Key represents a decoded input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyCtrlD
)

// Event represents a terminal input event
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Err  error // For EventError
}

// inputReader decodes raw stdin bytes into key events
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.send(Event{Type: EventError, Err: err})
			return
		}
		if data == nil {
			select {
			case <-r.stopCh:
			default:
				r.send(Event{Type: EventClosed})
			}
			return
		}
		for _, ev := range decodeKeys(data) {
			r.send(ev)
		}
	}
}

// send delivers ev unless the reader is stopping
func (r *inputReader) send(ev Event) {
	select {
	case r.eventCh <- ev:
	case <-r.stopCh:
	}
}

// decodeKeys turns one read chunk into key events
// Escape sequences (arrows, function keys) are consumed and dropped; a lone trailing ESC is KeyEscape
func decodeKeys(data []byte) []Event {
	var out []Event
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == 0x1b:
			if i+1 >= len(data) {
				out = append(out, Event{Type: EventKey, Key: KeyEscape})
				i++
				continue
			}
			i += escapeLen(data[i:])
		case b == 0x03:
			out = append(out, Event{Type: EventKey, Key: KeyCtrlC})
			i++
		case b == 0x04:
			out = append(out, Event{Type: EventKey, Key: KeyCtrlD})
			i++
		case b == '\r' || b == '\n':
			out = append(out, Event{Type: EventKey, Key: KeyEnter})
			i++
		case b < 0x20 || b == 0x7f:
			i++
		default:
			rn, size := utf8.DecodeRune(data[i:])
			if rn != utf8.RuneError {
				out = append(out, Event{Type: EventKey, Key: KeyRune, Rune: rn})
			}
			i += size
		}
	}
	return out
}

// escapeLen returns the byte length of the escape sequence at the start of seq
func escapeLen(seq []byte) int {
	if len(seq) < 2 {
		return len(seq)
	}
	switch seq[1] {
	case '[':
		// CSI: parameters then a final byte in 0x40-0x7e
		for j := 2; j < len(seq); j++ {
			if seq[j] >= 0x40 && seq[j] <= 0x7e {
				return j + 1
			}
		}
		return len(seq)
	case 'O':
		// SS3: one final byte
		return min(3, len(seq))
	default:
		// Alt+key
		return 2
	}
}

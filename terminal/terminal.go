package terminal

import (
	"io"
	"os"
	"sync"
)

// Attr is a cell attribute bitmask
type Attr uint8

const (
	AttrNone  Attr = 0
	AttrBold  Attr = 1 << 0
	AttrDim   Attr = 1 << 1
	AttrFg256 Attr = 1 << 7 // Fg.R already holds an xterm-256 index
)

// Cell is one terminal cell; a wide Rune also covers the cell to its right
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal is a raw-mode ANSI screen with key input
type Terminal interface {
	Init() error

	// Fini restores the terminal; repeated calls are no-ops
	Fini()

	Size() (width, height int)

	// ColorMode is the encoding Flush uses for non-indexed colors
	ColorMode() ColorMode

	// Flush writes the cells that changed since the last frame
	// cells is row-major, cells[y*width+x]
	Flush(cells []Cell, width, height int)

	// Clear blanks the screen with bg and resets diff state
	Clear(bg RGB)

	// PollEvent blocks for the next key, a posted event, or input closing
	PollEvent() Event

	// PostEvent queues ev ahead of input; it is dropped when the queue is full
	PostEvent(ev Event)
}

type screen struct {
	backend Backend
	output  *outputBuffer
	input   *inputReader
	posted  chan Event

	mu     sync.Mutex
	active bool
	done   bool
}

// New returns a Terminal on stdin/stdout
// colorMode defaults to DetectColorMode
func New(colorMode ...ColorMode) Terminal {
	mode := DetectColorMode()
	if len(colorMode) > 0 {
		mode = colorMode[0]
	}
	return newTerminal(newBackend(), mode)
}

func newTerminal(b Backend, mode ColorMode) *screen {
	return &screen{
		backend: b,
		output:  newOutputBuffer(b, mode),
		input:   newInputReader(b),
		posted:  make(chan Event, 16),
	}
}

// Init switches to raw mode on the alternate screen and starts reading keys
// The screen content is undefined until Clear or a full Flush
func (s *screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil
	}
	if err := s.backend.Init(); err != nil {
		return err
	}

	s.output.resize(s.backend.Size())
	for _, seq := range [][]byte{csiAltScreenEnter, csiCursorHide, csiAutoWrapOff} {
		s.backend.Write(seq)
	}
	s.input.start()

	s.active = true
	return nil
}

func (s *screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.done {
		return
	}
	s.input.stop()

	// Wrap is re-enabled after leaving the alternate screen so the main buffer keeps it
	for _, seq := range [][]byte{csiCursorShow, csiAltScreenExit, csiAutoWrapOn, csiSGR0} {
		s.backend.Write(seq)
	}
	s.backend.Fini()
	s.done = true
}

func (s *screen) Size() (int, int) {
	return s.backend.Size()
}

func (s *screen) ColorMode() ColorMode {
	return s.output.colorMode
}

func (s *screen) Flush(cells []Cell, width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active && !s.done {
		s.output.flush(cells, width, height)
	}
}

func (s *screen) Clear(bg RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active && !s.done {
		s.output.clear(bg)
	}
}

func (s *screen) PollEvent() Event {
	select {
	case ev := <-s.posted:
		return ev
	default:
	}

	select {
	case ev := <-s.posted:
		return ev
	case ev := <-s.input.events():
		return ev
	}
}

func (s *screen) PostEvent(ev Event) {
	select {
	case s.posted <- ev:
	default:
	}
}

// EmergencyReset puts the terminal back in cooked mode on the main screen
// For panic handlers, where Fini may not be reachable
func EmergencyReset(w io.Writer) {
	for _, seq := range [][]byte{csiCursorShow, csiAltScreenExit, csiSGR0, csiAutoWrapOn, csiRIS} {
		w.Write(seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	resetTerminalMode()
}

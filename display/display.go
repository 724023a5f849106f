// Package display adapts terminal backends to the clock's cell surface.
//
// A plot cell is CellAspect terminal columns wide, so circles drawn in plot units
// come out round on terminals whose character cells are twice as tall as wide.
package display

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-clock/clock"
	"github.com/lixenwraith/vi-clock/terminal"
)

// CellAspect is the number of terminal columns per plot cell
const CellAspect = 2

// DefaultGlyph is drawn for lit cells
const DefaultGlyph = '●'

// Backend names accepted by New
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
	BackendText  = "text"
)

var (
	ErrUnknownBackend = errors.New("display: unknown backend")
	ErrUnknownColor   = errors.New("display: unknown color mode")
	ErrBadGlyph       = errors.New("display: glyph must be one character at most two columns wide")
)

// Display is a clock surface with a terminal lifecycle
type Display interface {
	clock.Surface

	// Init takes over the terminal
	Init() error

	// Fini gives the terminal back. Safe to call multiple times
	Fini()

	// Size returns the canvas in plot units
	Size() (width, height int)

	// WaitQuit blocks until the user asks to quit, input closes or Interrupt is called
	WaitQuit()

	// Interrupt makes a pending or the next WaitQuit return
	Interrupt()
}

// Palette maps clock colors to foreground colors
type Palette map[int]terminal.RGB

// DefaultPalette keeps the face quiet and the second hand visible
func DefaultPalette() Palette {
	return Palette{
		clock.ColorDial:   {R: 128, G: 128, B: 128},
		clock.ColorTick:   {R: 215, G: 215, B: 215},
		clock.ColorHour:   {R: 255, G: 255, B: 255},
		clock.ColorMinute: {R: 255, G: 255, B: 255},
		clock.ColorSecond: {R: 255, G: 95, B: 95},
	}
}

// Fg returns the color for c, white when unmapped
func (p Palette) Fg(c int) terminal.RGB {
	if rgb, ok := p[c]; ok {
		return rgb
	}
	return terminal.RGBWhite
}

// emphasis weights the face: hour and minute hands bold, dial dim
func emphasis(c int) terminal.Attr {
	switch c {
	case clock.ColorHour, clock.ColorMinute:
		return terminal.AttrBold
	case clock.ColorDial:
		return terminal.AttrDim
	}
	return terminal.AttrNone
}

// ParseHex resolves a "#rrggbb" or "#rgb" color
func ParseHex(s string) (terminal.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return terminal.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return terminal.RGB{R: r, G: g, B: b}, nil
}

// ValidGlyph reports whether r fits in one plot cell
func ValidGlyph(r rune) error {
	w := runewidth.RuneWidth(r)
	if w < 1 || w > CellAspect {
		return fmt.Errorf("%w: %q has width %d", ErrBadGlyph, r, w)
	}
	return nil
}

// Options configures a display
type Options struct {
	Glyph   rune
	Palette Palette

	// ColorMode selects ansi output encoding: "auto", "256" or "truecolor"
	ColorMode string

	// Out, Width and Height configure the text backend; Width and Height are terminal cells
	Out    io.Writer
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Glyph == 0 {
		o.Glyph = DefaultGlyph
	}
	if o.Palette == nil {
		o.Palette = DefaultPalette()
	}
	if o.ColorMode == "" {
		o.ColorMode = "auto"
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	return o
}

// New creates the named backend
func New(backend string, opts Options) (Display, error) {
	opts = opts.withDefaults()
	switch backend {
	case BackendTcell:
		d, err := NewTcell(opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	case BackendANSI:
		d, err := NewANSI(opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	case BackendText:
		return NewText(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// ParseColorMode resolves a color mode name; "auto" detects from the environment
func ParseColorMode(s string) (terminal.ColorMode, error) {
	switch s {
	case "", "auto":
		return terminal.DetectColorMode(), nil
	case "256":
		return terminal.ColorMode256, nil
	case "truecolor", "true", "24bit":
		return terminal.ColorModeTrueColor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
}

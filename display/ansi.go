package display

import (
	"github.com/lixenwraith/vi-clock/clock"
	"github.com/lixenwraith/vi-clock/terminal"
)

// ANSIDisplay composes a cell buffer and flushes it through the terminal package
type ANSIDisplay struct {
	term    terminal.Terminal
	glyph   rune
	palette Palette
	lit     map[int]terminal.Cell
	cells   []terminal.Cell
	cols    int
	rows    int
}

// NewANSI creates a display on stdin/stdout using direct ANSI output
func NewANSI(opts Options) (*ANSIDisplay, error) {
	opts = opts.withDefaults()
	mode, err := ParseColorMode(opts.ColorMode)
	if err != nil {
		return nil, err
	}
	return newANSIDisplay(terminal.New(mode), opts), nil
}

func newANSIDisplay(term terminal.Terminal, opts Options) *ANSIDisplay {
	return &ANSIDisplay{
		term:    term,
		glyph:   opts.Glyph,
		palette: opts.Palette,
		lit:     make(map[int]terminal.Cell),
	}
}

var blankCell = terminal.Cell{Rune: ' ', Bg: terminal.RGBBlack}

func (d *ANSIDisplay) Init() error {
	if err := d.term.Init(); err != nil {
		return err
	}
	d.term.Clear(blankCell.Bg)

	d.cols, d.rows = d.term.Size()
	d.cells = make([]terminal.Cell, d.cols*d.rows)
	for i := range d.cells {
		d.cells[i] = blankCell
	}
	return nil
}

func (d *ANSIDisplay) Fini() {
	d.term.Fini()
}

func (d *ANSIDisplay) Size() (int, int) {
	return d.cols / CellAspect, d.rows
}

// litCell returns the styled glyph cell for color, quantized once per color on 256-color terminals
func (d *ANSIDisplay) litCell(color int) terminal.Cell {
	if c, ok := d.lit[color]; ok {
		return c
	}
	c := terminal.Cell{
		Rune:  d.glyph,
		Fg:    d.palette.Fg(color),
		Bg:    blankCell.Bg,
		Attrs: emphasis(color),
	}
	if d.term.ColorMode() == terminal.ColorMode256 {
		c.Fg = terminal.RGB{R: terminal.RGBTo256(c.Fg)}
		c.Attrs |= terminal.AttrFg256
	}
	d.lit[color] = c
	return c
}

func (d *ANSIDisplay) SetCell(color, x, y int) {
	col := x * CellAspect
	if col < 0 || col >= d.cols || y < 0 || y >= d.rows {
		return
	}
	idx := y*d.cols + col
	if color == clock.ColorOff {
		d.cells[idx] = blankCell
		return
	}
	d.cells[idx] = d.litCell(color)
}

func (d *ANSIDisplay) Commit() {
	d.term.Flush(d.cells, d.cols, d.rows)
}

// WaitQuit returns on q, Esc, Ctrl-C, Ctrl-D, Interrupt, or when input closes
func (d *ANSIDisplay) WaitQuit() {
	for {
		ev := d.term.PollEvent()
		switch ev.Type {
		case terminal.EventClosed, terminal.EventError:
			return
		case terminal.EventKey:
			switch ev.Key {
			case terminal.KeyEscape, terminal.KeyCtrlC, terminal.KeyCtrlD:
				return
			case terminal.KeyRune:
				if isQuitRune(ev.Rune) {
					return
				}
			}
		}
	}
}

// Interrupt wakes a pending WaitQuit
func (d *ANSIDisplay) Interrupt() {
	d.term.PostEvent(terminal.Event{Type: terminal.EventClosed})
}

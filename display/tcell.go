package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-clock/clock"
	"github.com/lixenwraith/vi-clock/terminal"
)

// TcellDisplay draws through a tcell screen
type TcellDisplay struct {
	screen tcell.Screen
	glyph  rune
	styles map[int]tcell.Style
	width  int
	height int
}

// NewTcell creates a display on the default tcell screen
func NewTcell(opts Options) (*TcellDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTcellDisplay(screen, opts.withDefaults()), nil
}

func newTcellDisplay(screen tcell.Screen, opts Options) *TcellDisplay {
	styles := make(map[int]tcell.Style, len(opts.Palette))
	for c, rgb := range opts.Palette {
		attrs := emphasis(c)
		styles[c] = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))).
			Bold(attrs&terminal.AttrBold != 0).
			Dim(attrs&terminal.AttrDim != 0)
	}
	return &TcellDisplay{
		screen: screen,
		glyph:  opts.Glyph,
		styles: styles,
	}
}

func (d *TcellDisplay) Init() error {
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.screen.HideCursor()
	d.screen.Clear()

	w, h := d.screen.Size()
	d.width = w / CellAspect
	d.height = h
	return nil
}

func (d *TcellDisplay) Fini() {
	d.screen.Fini()
}

func (d *TcellDisplay) Size() (int, int) {
	return d.width, d.height
}

// SetCell writes the glyph for lit colors and a blank for clock.ColorOff
func (d *TcellDisplay) SetCell(color, x, y int) {
	if color == clock.ColorOff {
		d.screen.SetContent(x*CellAspect, y, ' ', nil, tcell.StyleDefault)
		return
	}
	style, ok := d.styles[color]
	if !ok {
		style = tcell.StyleDefault
	}
	d.screen.SetContent(x*CellAspect, y, d.glyph, nil, style)
}

func (d *TcellDisplay) Commit() {
	d.screen.Show()
}

// WaitQuit returns on q, Esc, Ctrl-C, Interrupt, or once the screen is finalized
func (d *TcellDisplay) WaitQuit() {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
				return
			case tcell.KeyRune:
				if isQuitRune(ev.Rune()) {
					return
				}
			}
		case *tcell.EventResize:
			// Geometry is fixed for the run; resync whatever is on screen
			d.screen.Sync()
		}
	}
}

// Interrupt wakes a pending WaitQuit
func (d *TcellDisplay) Interrupt() {
	d.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func isQuitRune(r rune) bool {
	return r == 'q' || r == 'Q'
}

package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// outputBuffer writes frames to the terminal, diffing against what is already on screen
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Last emitted style, for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 32768),
		colorMode: colorMode,
	}
}

// resize reallocates the front buffer and forgets screen state
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height

	for i := range o.front {
		o.front[i] = Cell{}
	}
	o.lastValid = false
	o.cursorValid = false
}

func cellEqual(a, b Cell) bool {
	return a.Rune == b.Rune && a.Attrs == b.Attrs && a.Fg == b.Fg && a.Bg == b.Bg
}

// cellWidth is the number of columns c occupies on screen
func cellWidth(c Cell) int {
	if w := runewidth.RuneWidth(c.Rune); w > 1 {
		return w
	}
	return 1
}

// flush writes cells that differ from the front buffer
// A wide rune covers the next cell, whose content in cells is ignored
func (o *outputBuffer) flush(cells []Cell, width, height int) {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return
	}

	w := o.writer
	wrote := false

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cellEqual(cells[idx], o.front[idx]) {
				x += cellWidth(cells[idx])
				continue
			}

			// Position cursor once per dirty run
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			for x < width {
				cidx := rowStart + x
				c := cells[cidx]
				if cellEqual(c, o.front[cidx]) {
					break
				}

				o.writeStyle(w, c.Fg, c.Bg, c.Attrs)

				r := c.Rune
				if r == 0 {
					r = ' '
				}
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}
				o.front[cidx] = c
				wrote = true

				cw := cellWidth(c)
				// The covered cell holds the right half now; mark it unknown so a later frame rewrites it
				for i := 1; i < cw && x+i < width; i++ {
					o.front[cidx+i] = Cell{}
				}
				o.cursorX += cw
				x += cw
			}
		}
	}

	if wrote {
		w.Write(csiSGR0)
		o.lastValid = false
	}
	w.Flush()
}

// writeStyle emits one combined SGR sequence when the style differs from the last one written
func (o *outputBuffer) writeStyle(w *bufio.Writer, fg, bg RGB, attr Attr) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg && attr == o.lastAttr {
		return
	}

	w.Write(csi)
	w.WriteByte('0')
	if attr&AttrBold != 0 {
		w.Write([]byte(";1"))
	}
	if attr&AttrDim != 0 {
		w.Write([]byte(";2"))
	}

	w.WriteByte(';')
	o.writeColor(w, fg, attr&AttrFg256 != 0, sgrFg256, sgrFgRGB)
	w.WriteByte(';')
	o.writeColor(w, bg, false, sgrBg256, sgrBgRGB)
	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// writeColor writes color parameters without CSI prefix or 'm' suffix
// indexed means c.R already holds a palette index
func (o *outputBuffer) writeColor(w *bufio.Writer, c RGB, indexed bool, p256, pRGB []byte) {
	switch {
	case indexed:
		w.Write(p256)
		writeInt(w, int(c.R))
	case o.colorMode == ColorModeTrueColor:
		w.Write(pRGB)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
	default:
		w.Write(p256)
		writeInt(w, int(RGBTo256(c)))
	}
}

// clear blanks the screen with bg and resets the front buffer to match
func (o *outputBuffer) clear(bg RGB) {
	w := o.writer
	w.Write(csi)
	w.WriteByte('0')
	w.WriteByte(';')
	o.writeColor(w, bg, false, sgrBg256, sgrBgRGB)
	w.WriteByte('m')
	w.Write(csiClear)
	w.Flush()

	o.lastValid = false
	o.cursorValid = false
	for i := range o.front {
		o.front[i] = Cell{Rune: ' ', Bg: bg}
	}
}

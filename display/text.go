package display

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-clock/clock"
)

// TextDisplay renders frames as plain text lines, for pipes and non-interactive use
type TextDisplay struct {
	out   io.Writer
	glyph rune
	wide  int // columns the glyph occupies
	cols  int
	rows  int
	grid  [][]rune
}

// NewText creates a text display of opts.Width x opts.Height terminal cells writing to opts.Out
func NewText(opts Options) *TextDisplay {
	opts = opts.withDefaults()
	return &TextDisplay{
		out:   opts.Out,
		glyph: opts.Glyph,
		wide:  max(runewidth.RuneWidth(opts.Glyph), 1),
		cols:  opts.Width,
		rows:  opts.Height,
	}
}

func (d *TextDisplay) Init() error {
	d.grid = make([][]rune, d.rows)
	for y := range d.grid {
		row := make([]rune, d.cols)
		for x := range row {
			row[x] = ' '
		}
		d.grid[y] = row
	}
	return nil
}

func (d *TextDisplay) Fini() {}

func (d *TextDisplay) Size() (int, int) {
	return d.cols / CellAspect, d.rows
}

func (d *TextDisplay) SetCell(color, x, y int) {
	col := x * CellAspect
	if col < 0 || col+d.wide > d.cols || y < 0 || y >= d.rows {
		return
	}
	if color == clock.ColorOff {
		d.grid[y][col] = ' '
		return
	}
	d.grid[y][col] = d.glyph
}

// Commit writes the grid with trailing blanks trimmed
// A wide glyph takes the spacer column after it, so that column is not printed
func (d *TextDisplay) Commit() {
	w := bufio.NewWriter(d.out)
	var line strings.Builder
	for _, row := range d.grid {
		line.Reset()
		for col := 0; col < len(row); {
			line.WriteRune(row[col])
			if row[col] == ' ' {
				col++
			} else {
				col += d.wide
			}
		}
		w.WriteString(strings.TrimRight(line.String(), " "))
		w.WriteByte('\n')
	}
	// bufio keeps the first write error and returns it from Flush
	if err := w.Flush(); err != nil {
		log.Printf("display: text frame write failed: %v", err)
	}
}

// WaitQuit returns immediately; there is no input to wait for
func (d *TextDisplay) WaitQuit() {}

func (d *TextDisplay) Interrupt() {}

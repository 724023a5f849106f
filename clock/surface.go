package clock

// Cell colors passed to Surface.SetCell
// ColorOff erases; every other value is a lit cell, distinct values only select styling
const (
	ColorOff = iota
	ColorDial
	ColorTick
	ColorHour
	ColorMinute
	ColorSecond
)

// Surface is the drawing capability the loop renders into
type Surface interface {
	// SetCell sets or clears the cell at plot coordinate (x, y)
	SetCell(color, x, y int)

	// Commit makes pending cell writes visible
	Commit()
}

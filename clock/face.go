package clock

import "errors"

// ErrCanvasTooSmall is returned when the canvas cannot hold a dial
var ErrCanvasTooSmall = errors.New("clock: canvas too small")

// Face is the fixed dial geometry in plot units
type Face struct {
	CX, CY int
	R      int
}

// NewFace centers the dial on a width x height canvas with radius 0.9 * min(CX, CY)
func NewFace(width, height int) (Face, error) {
	if width < 2 || height < 2 {
		return Face{}, ErrCanvasTooSmall
	}
	cx := width / 2
	cy := height / 2
	return Face{
		CX: cx,
		CY: cy,
		R:  9 * min(cx, cy) / 10,
	}, nil
}

// Span is a radial segment expressed as fractions of the dial radius
type Span struct {
	From, To float64
}

// Radial extents of the tick marks and hands
var (
	TickSpan   = Span{0.8, 0.95}
	SecondSpan = Span{-0.1, 0.95}
	MinuteSpan = Span{-0.05, 0.8}
	HourSpan   = Span{-0.05, 0.7}
)

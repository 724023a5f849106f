package raster

import (
	"errors"
	"math"
	"testing"
)

type cell struct{ x, y int }

// recorder captures plotted cells in call order
type recorder struct {
	calls []cell
	color []int
}

func (rec *recorder) plot(color, x, y int) {
	rec.calls = append(rec.calls, cell{x, y})
	rec.color = append(rec.color, color)
}

func (rec *recorder) set() map[cell]bool {
	s := make(map[cell]bool, len(rec.calls))
	for _, c := range rec.calls {
		s[c] = true
	}
	return s
}

func newRecorded(t *testing.T) (*Rasterizer, *recorder) {
	t.Helper()
	rec := &recorder{}
	r, err := New(rec.plot)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, rec
}

func TestNewRejectsNilPlotter(t *testing.T) {
	r, err := New(nil)
	if !errors.Is(err, ErrNilPlotter) {
		t.Errorf("Expected ErrNilPlotter, got %v", err)
	}
	if r != nil {
		t.Error("Expected nil rasterizer on error")
	}
}

func TestLineHorizontalInclusive(t *testing.T) {
	r, rec := newRecorded(t)
	r.Line(1, 0, 0, 5, 0)

	if len(rec.calls) != 6 {
		t.Fatalf("Expected 6 cells, got %d: %v", len(rec.calls), rec.calls)
	}
	for i, c := range rec.calls {
		if c.x != i || c.y != 0 {
			t.Errorf("Cell %d: expected (%d,0), got (%d,%d)", i, i, c.x, c.y)
		}
		if rec.color[i] != 1 {
			t.Errorf("Cell %d: expected color 1, got %d", i, rec.color[i])
		}
	}
}

func TestLineAxisAlignedReversed(t *testing.T) {
	tests := []struct {
		name           string
		sx, sy, ex, ey int
		want           []cell
	}{
		{"Horizontal right to left", 3, 2, 0, 2, []cell{{0, 2}, {1, 2}, {2, 2}, {3, 2}}},
		{"Vertical bottom to top", 4, 7, 4, 5, []cell{{4, 5}, {4, 6}, {4, 7}}},
		{"Single point", 9, 9, 9, 9, []cell{{9, 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newRecorded(t)
			r.Line(1, tt.sx, tt.sy, tt.ex, tt.ey)
			if len(rec.calls) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, rec.calls)
			}
			for i := range tt.want {
				if rec.calls[i] != tt.want[i] {
					t.Errorf("Cell %d: expected %v, got %v", i, tt.want[i], rec.calls[i])
				}
			}
		})
	}
}

// lineCases covers all octants, diagonals and negative coordinates
var lineCases = []struct {
	name           string
	sx, sy, ex, ey int
}{
	{"Shallow positive", 0, 0, 7, 3},
	{"Shallow negative", 0, 0, 7, -3},
	{"Steep positive", 0, 0, 2, 9},
	{"Steep negative", 0, 0, -2, 9},
	{"Diagonal", 0, 0, 5, 5},
	{"Anti-diagonal", 5, 0, 0, 5},
	{"Tie break", 0, 0, 2, 1},
	{"Negative quadrant", -3, -8, -11, -1},
	{"Long shallow", -20, 4, 31, 13},
	{"Long steep", 12, -17, 3, 22},
}

func TestLineIncludesEndpoints(t *testing.T) {
	for _, tt := range lineCases {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newRecorded(t)
			r.Line(1, tt.sx, tt.sy, tt.ex, tt.ey)
			s := rec.set()
			if !s[cell{tt.sx, tt.sy}] {
				t.Errorf("Start (%d,%d) missing from %v", tt.sx, tt.sy, rec.calls)
			}
			if !s[cell{tt.ex, tt.ey}] {
				t.Errorf("End (%d,%d) missing from %v", tt.ex, tt.ey, rec.calls)
			}
		})
	}
}

func TestLineSymmetry(t *testing.T) {
	for _, tt := range lineCases {
		t.Run(tt.name, func(t *testing.T) {
			r1, fwd := newRecorded(t)
			r1.Line(1, tt.sx, tt.sy, tt.ex, tt.ey)
			r2, rev := newRecorded(t)
			r2.Line(1, tt.ex, tt.ey, tt.sx, tt.sy)

			a, b := fwd.set(), rev.set()
			if len(a) != len(b) {
				t.Fatalf("Set sizes differ: forward %d, reverse %d", len(a), len(b))
			}
			for c := range a {
				if !b[c] {
					t.Errorf("Cell %v drawn forward but not in reverse", c)
				}
			}
		})
	}
}

func TestLineNoGaps(t *testing.T) {
	for _, tt := range lineCases {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newRecorded(t)
			r.Line(1, tt.sx, tt.sy, tt.ex, tt.ey)

			steep := abs(tt.ey-tt.sy) >= abs(tt.ex-tt.sx)
			major := abs(tt.ex - tt.sx)
			if steep {
				major = abs(tt.ey - tt.sy)
			}
			if len(rec.calls) != major+1 {
				t.Errorf("Expected %d cells (one per major step), got %d", major+1, len(rec.calls))
			}

			for i := 1; i < len(rec.calls); i++ {
				p, c := rec.calls[i-1], rec.calls[i]
				dMajor, dMinor := abs(c.x-p.x), abs(c.y-p.y)
				if steep {
					dMajor, dMinor = dMinor, dMajor
				}
				if dMajor != 1 {
					t.Errorf("Step %d: major axis moved %d from %v to %v", i, dMajor, p, c)
				}
				if dMinor > 1 {
					t.Errorf("Step %d: minor axis jumped %d from %v to %v", i, dMinor, p, c)
				}
			}
		})
	}
}

func TestLineDiagonalExact(t *testing.T) {
	r, rec := newRecorded(t)
	r.Line(1, 0, 0, 4, 4)
	for i, c := range rec.calls {
		if c.x != i || c.y != i {
			t.Errorf("Cell %d: expected (%d,%d), got %v", i, i, i, c)
		}
	}
}

func TestCircleCardinalPoints(t *testing.T) {
	for _, rad := range []int{0, 1, 2, 5, 10, 17} {
		r, rec := newRecorded(t)
		cx, cy := 40, 12
		r.Circle(1, cx, cy, rad)
		s := rec.set()
		for _, c := range []cell{{cx + rad, cy}, {cx - rad, cy}, {cx, cy + rad}, {cx, cy - rad}} {
			if !s[c] {
				t.Errorf("Radius %d: cardinal point %v missing", rad, c)
			}
		}
	}
}

func TestCircleZeroRadius(t *testing.T) {
	r, rec := newRecorded(t)
	r.Circle(1, 3, 4, 0)
	if len(rec.calls) != 4 {
		t.Fatalf("Expected 4 plots for zero radius, got %d", len(rec.calls))
	}
	for _, c := range rec.calls {
		if c != (cell{3, 4}) {
			t.Errorf("Expected center (3,4), got %v", c)
		}
	}
}

func TestCircleNegativeRadius(t *testing.T) {
	r, rec := newRecorded(t)
	r.Circle(1, 3, 4, -2)
	if len(rec.calls) != 0 {
		t.Errorf("Expected no plots for negative radius, got %v", rec.calls)
	}
}

func TestCircleSymmetry(t *testing.T) {
	for _, rad := range []int{1, 3, 8, 13, 21} {
		r, rec := newRecorded(t)
		r.Circle(1, 0, 0, rad)
		s := rec.set()

		for c := range s {
			images := []cell{
				{-c.x, c.y}, {c.x, -c.y}, {-c.x, -c.y},
				{c.y, c.x}, {-c.y, c.x}, {c.y, -c.x}, {-c.y, -c.x},
			}
			for _, img := range images {
				if !s[img] {
					t.Errorf("Radius %d: %v present but symmetric image %v missing", rad, c, img)
				}
			}
		}
	}
}

func TestCircleStaysNearRadius(t *testing.T) {
	rad := 15
	r, rec := newRecorded(t)
	r.Circle(1, 0, 0, rad)
	for _, c := range rec.calls {
		d := math.Hypot(float64(c.x), float64(c.y))
		if math.Abs(d-float64(rad)) > 1 {
			t.Errorf("Cell %v at distance %.2f, expected within 1 of %d", c, d, rad)
		}
	}
}

func TestPolarSegmentUp(t *testing.T) {
	r, rec := newRecorded(t)
	cx, cy, rad := 20, 10, 6
	r.PolarSegment(1, cx, cy, 0, float64(rad), 0)

	if len(rec.calls) != rad+1 {
		t.Fatalf("Expected %d cells, got %v", rad+1, rec.calls)
	}
	s := rec.set()
	for y := cy - rad; y <= cy; y++ {
		if !s[cell{cx, y}] {
			t.Errorf("Expected cell (%d,%d) on upward segment", cx, y)
		}
	}
}

func TestPolarSegmentRight(t *testing.T) {
	r, rec := newRecorded(t)
	cx, cy, rad := 20, 10, 6
	r.PolarSegment(1, cx, cy, 0, float64(rad), math.Pi/2)

	s := rec.set()
	if len(s) != rad+1 {
		t.Fatalf("Expected %d cells, got %v", rad+1, rec.calls)
	}
	for x := cx; x <= cx+rad; x++ {
		if !s[cell{x, cy}] {
			t.Errorf("Expected cell (%d,%d) on rightward segment", x, cy)
		}
	}
}

func TestPolarSegmentTail(t *testing.T) {
	r, rec := newRecorded(t)
	cx, cy := 20, 10
	// Negative start distance extends past the center on the opposite side
	r.PolarSegment(1, cx, cy, -2, 5, 0)
	s := rec.set()
	if !s[cell{cx, cy + 2}] {
		t.Errorf("Expected tail cell (%d,%d), got %v", cx, cy+2, rec.calls)
	}
	if !s[cell{cx, cy - 5}] {
		t.Errorf("Expected tip cell (%d,%d), got %v", cx, cy-5, rec.calls)
	}
}

func TestPolarPointQuadrants(t *testing.T) {
	tests := []struct {
		name   string
		rad    float64
		wx, wy int
	}{
		{"Twelve", 0, 10, 0},
		{"Three", math.Pi / 2, 20, 10},
		{"Six", math.Pi, 10, 20},
		{"Nine", 3 * math.Pi / 2, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := PolarPoint(10, 10, 10, tt.rad)
			if x != tt.wx || y != tt.wy {
				t.Errorf("Expected (%d,%d), got (%d,%d)", tt.wx, tt.wy, x, y)
			}
		})
	}
}

func TestPlotterReceivesColor(t *testing.T) {
	r, rec := newRecorded(t)
	r.Circle(0, 5, 5, 3)
	r.Line(7, 0, 0, 3, 1)
	for i, c := range rec.color {
		if i < len(rec.color)-4 && c != 0 {
			t.Fatalf("Expected circle cells in color 0, got %d at %d", c, i)
		}
	}
	if rec.color[len(rec.color)-1] != 7 {
		t.Errorf("Expected line color 7, got %d", rec.color[len(rec.color)-1])
	}
}

package raster

import "errors"

// ErrNilPlotter is returned by New when no cell-set function is supplied
var ErrNilPlotter = errors.New("raster: nil plotter")

// Plotter sets the cell at (x, y) to color
// Color 0 conventionally clears the cell, any other value lights it
type Plotter func(color, x, y int)

// Rasterizer emits shape cells through a single bound Plotter
// Immutable after New, safe to share between callers of the same goroutine
type Rasterizer struct {
	plot Plotter
}

// New binds plot to a Rasterizer
func New(plot Plotter) (*Rasterizer, error) {
	if plot == nil {
		return nil, ErrNilPlotter
	}
	return &Rasterizer{plot: plot}, nil
}

// swap exchanges two values in place
func swap[T any](a, b *T) {
	*a, *b = *b, *a
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package raster

// Circle plots the circumference of radius rad around (cx, cy) with the midpoint algorithm
// Cardinal points are set first, then one octant is walked and mirrored 8 ways
// A zero radius sets the center four times; a negative radius plots nothing
func (r *Rasterizer) Circle(color, cx, cy, rad int) {
	if rad < 0 {
		return
	}

	f := 1 - rad
	x, y := 0, rad
	dx, dy := 1, -2*rad

	r.plot(color, cx+rad, cy)
	r.plot(color, cx-rad, cy)
	r.plot(color, cx, cy+rad)
	r.plot(color, cx, cy-rad)

	for x < y {
		if f >= 0 {
			y--
			dy += 2
			f += dy
		}
		x++
		dx += 2
		f += dx

		r.plot(color, cx+x, cy+y)
		r.plot(color, cx-x, cy+y)
		r.plot(color, cx+x, cy-y)
		r.plot(color, cx-x, cy-y)
		r.plot(color, cx+y, cy+x)
		r.plot(color, cx-y, cy+x)
		r.plot(color, cx+y, cy-x)
		r.plot(color, cx-y, cy-x)
	}
}

package raster

// Line plots every cell between (sx, sy) and (ex, ey), both endpoints included
// Axis-aligned segments take a direct loop; everything else goes through Bresenham
func (r *Rasterizer) Line(color, sx, sy, ex, ey int) {
	switch {
	case sx == ex:
		if sy > ey {
			swap(&sy, &ey)
		}
		for y := sy; y <= ey; y++ {
			r.plot(color, sx, y)
		}
	case sy == ey:
		if sx > ex {
			swap(&sx, &ex)
		}
		for x := sx; x <= ex; x++ {
			r.plot(color, x, sy)
		}
	default:
		r.bresenham(color, sx, sy, ex, ey)
	}
}

// bresenham walks the major axis one cell per step, advancing the minor axis on error overflow
// Endpoints are ordered along the major axis first, so the cell set does not depend on draw direction
func (r *Rasterizer) bresenham(color, sx, sy, ex, ey int) {
	steep := abs(ey-sy) >= abs(ex-sx)
	if steep {
		swap(&sx, &sy)
		swap(&ex, &ey)
	}
	if sx > ex {
		swap(&sx, &ex)
		swap(&sy, &ey)
	}

	dx := ex - sx
	dy := ey - sy
	ys := 1
	if dy < 0 {
		ys = -1
		dy = -dy
	}

	e := 2*dy - dx
	y := sy
	for x := sx; x <= ex; x++ {
		if steep {
			r.plot(color, y, x)
		} else {
			r.plot(color, x, y)
		}
		if e >= 0 {
			y += ys
			e -= 2 * dx
		}
		e += 2 * dy
	}
}

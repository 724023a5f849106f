package raster

import "math"

// PolarSegment draws the part of the ray from (cx, cy) at angle rad lying between distances sd and ed
// Angle 0 points up (decreasing row) and grows clockwise; negative distances fall on the opposite ray
// Endpoints are rounded to the nearest cell before the Line call
func (r *Rasterizer) PolarSegment(color, cx, cy int, sd, ed, rad float64) {
	sx, sy := PolarPoint(cx, cy, sd, rad)
	ex, ey := PolarPoint(cx, cy, ed, rad)
	r.Line(color, sx, sy, ex, ey)
}

// PolarPoint returns the cell at distance d from (cx, cy) along clock angle rad
func PolarPoint(cx, cy int, d, rad float64) (int, int) {
	ux := math.Sin(rad)
	uy := math.Cos(rad)
	x := float64(cx) + d*ux
	y := float64(cy) - d*uy
	return int(math.Round(x)), int(math.Round(y))
}

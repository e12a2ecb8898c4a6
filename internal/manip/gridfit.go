package manip

import (
	"math"

	"github.com/inamate/diagrammer/internal/geom"
)

// fit moves origin by delta and truncates the result to the grid cell.
// When a forward move would snap back behind origin, origin itself is kept
// so a shape can always return to where it started.
func fit(origin, delta, cell float64) float64 {
	if delta == 0 {
		return origin
	}
	v := origin + delta
	if cell <= 1 {
		return v
	}
	s := math.Floor(v/cell+geom.Epsilon) * cell
	if delta > 0 && s < origin {
		return origin
	}
	return s
}

// slideInto shifts r back inside region, clipping only what still sticks out.
func slideInto(r, region geom.Rect) geom.Rect {
	if region.IsEmpty() {
		return r
	}
	if r.X1 < region.X1 {
		r = r.Translate(region.X1-r.X1, 0)
	}
	if r.X2 > region.X2 {
		r = r.Translate(region.X2-r.X2, 0)
	}
	if r.Y1 < region.Y1 {
		r = r.Translate(0, region.Y1-r.Y1)
	}
	if r.Y2 > region.Y2 {
		r = r.Translate(0, region.Y2-r.Y2)
	}
	return clipInto(r, region)
}

// clipInto cuts r down to region.
func clipInto(r, region geom.Rect) geom.Rect {
	if region.IsEmpty() {
		return r
	}
	r.X1 = max(r.X1, region.X1)
	r.Y1 = max(r.Y1, region.Y1)
	r.X2 = min(r.X2, region.X2)
	r.Y2 = min(r.Y2, region.Y2)
	return r
}

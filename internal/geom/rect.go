package geom

import "math"

// Rect is an axis-aligned box given by two corners.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// R is shorthand for Rect{x1, y1, x2, y2}.
func R(x1, y1, x2, y2 float64) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// RectFromPoints returns the normalized rect spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}.Normalize()
}

// Normalize swaps corners so that X1 <= X2 and Y1 <= Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Ratio returns width over height, or 1 for a flat rect.
func (r Rect) Ratio() float64 {
	h := r.Height()
	if math.Abs(h) < Epsilon {
		return 1
	}
	return r.Width() / h
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// ContainsRect checks if o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X1 >= r.X1-Epsilon && o.X2 <= r.X2+Epsilon &&
		o.Y1 >= r.Y1-Epsilon && o.Y2 <= r.Y2+Epsilon
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && o.X1 <= r.X2 && r.Y1 <= o.Y2 && o.Y1 <= r.Y2
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
		X2: max(r.X2, o.X2),
		Y2: max(r.Y2, o.Y2),
	}
}

// Expand grows the rect by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{X1: r.X1 - margin, Y1: r.Y1 - margin, X2: r.X2 + margin, Y2: r.Y2 + margin}
}

// Translate moves the rect by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// Equal reports whether all four edges are within tol.
func (r Rect) Equal(o Rect, tol float64) bool {
	return math.Abs(r.X1-o.X1) <= tol && math.Abs(r.Y1-o.Y1) <= tol &&
		math.Abs(r.X2-o.X2) <= tol && math.Abs(r.Y2-o.Y2) <= tol
}

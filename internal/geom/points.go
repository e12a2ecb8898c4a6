package geom

import "math"

// Points is an ordered polyline. Index 0 is the tail end of an edge and the
// last index its head end.
type Points []Point

// Clone returns an independent copy.
func (ps Points) Clone() Points {
	if ps == nil {
		return nil
	}
	out := make(Points, len(ps))
	copy(out, ps)
	return out
}

// Insert places p at index i, shifting later points up.
func (ps *Points) Insert(i int, p Point) {
	s := *ps
	if i < 0 || i > len(s) {
		s = append(s, p)
		*ps = s
		return
	}
	s = append(s, Point{})
	copy(s[i+1:], s[i:])
	s[i] = p
	*ps = s
}

// Remove deletes the point at index i.
func (ps *Points) Remove(i int) {
	s := *ps
	if i < 0 || i >= len(s) {
		return
	}
	*ps = append(s[:i], s[i+1:]...)
}

// First returns the tail end point.
func (ps Points) First() Point {
	return ps[0]
}

// Last returns the head end point.
func (ps Points) Last() Point {
	return ps[len(ps)-1]
}

// Bounds returns the bounding rect of all points.
func (ps Points) Bounds() Rect {
	if len(ps) == 0 {
		return Rect{}
	}
	r := Rect{X1: ps[0].X, Y1: ps[0].Y, X2: ps[0].X, Y2: ps[0].Y}
	for _, p := range ps[1:] {
		r.X1 = min(r.X1, p.X)
		r.Y1 = min(r.Y1, p.Y)
		r.X2 = max(r.X2, p.X)
		r.Y2 = max(r.Y2, p.Y)
	}
	return r
}

// Translate returns a copy moved by dx, dy.
func (ps Points) Translate(dx, dy float64) Points {
	out := make(Points, len(ps))
	for i, p := range ps {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// Equal reports whether both lists hold the same points in order.
func (ps Points) Equal(o Points) bool {
	if len(ps) != len(o) {
		return false
	}
	for i := range ps {
		if !ps[i].Equal(o[i], Epsilon) {
			return false
		}
	}
	return true
}

// VertexAt returns the index of the first point within tol of p, or -1.
func (ps Points) VertexAt(p Point, tol float64) int {
	for i, q := range ps {
		if math.Abs(q.X-p.X) <= tol && math.Abs(q.Y-p.Y) <= tol {
			return i
		}
	}
	return -1
}

// SegmentAt returns the index i of the first segment (ps[i], ps[i+1]) within
// tol of p, or -1.
func (ps Points) SegmentAt(p Point, tol float64) int {
	for i := 0; i+1 < len(ps); i++ {
		if DistanceToSegment(p, ps[i], ps[i+1]) <= tol {
			return i
		}
	}
	return -1
}

// ReduceOrthogonal drops every interior point that shares an axis with both
// of its neighbours. The first and last points are always kept.
func (ps Points) ReduceOrthogonal() Points {
	return ps.reduce(func(a, b, c Point) bool {
		sameX := math.Abs(a.X-b.X) < Epsilon && math.Abs(b.X-c.X) < Epsilon
		sameY := math.Abs(a.Y-b.Y) < Epsilon && math.Abs(b.Y-c.Y) < Epsilon
		return sameX || sameY
	})
}

// ReduceFree drops every interior point lying on the segment between its
// neighbours. The first and last points are always kept.
func (ps Points) ReduceFree() Points {
	return ps.reduce(func(a, b, c Point) bool {
		return OnSegment(b, a, c)
	})
}

func (ps Points) reduce(redundant func(prev, cur, next Point) bool) Points {
	if len(ps) < 3 {
		return ps.Clone()
	}
	out := Points{ps[0]}
	for i := 1; i < len(ps)-1; i++ {
		if redundant(out[len(out)-1], ps[i], ps[i+1]) {
			continue
		}
		out = append(out, ps[i])
	}
	return append(out, ps[len(ps)-1])
}

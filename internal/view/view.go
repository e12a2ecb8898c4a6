// Package view declares the capability contract the interaction core needs
// from the shape layer. Concrete shapes live outside the core; the core
// only dispatches on the structural Kind and reads the capability fields.
package view

import (
	"github.com/inamate/diagrammer/internal/geom"
)

// View is a shape on the diagram.
type View interface {
	ID() string
	Kind() Kind
	BoundingBox() geom.Rect
	Sizable() SizableMode
	Movable() MovableMode
	MinSize() (width, height float64)
	// Container returns the view holding this one, or nil at top level.
	Container() View
}

// Edge is a View of KindEdge.
type Edge interface {
	View
	Points() geom.Points
	LineStyle() LineStyle
	// Tail is the view attached at Points().First(), Head at Points().Last().
	Tail() View
	Head() View
}

// Parasitic is a View of KindParasitic, placed by a polar offset from an
// anchor on its host.
type Parasitic interface {
	View
	Host() View
	EdgePosition() EdgePosition
}

// Layer answers the hit-test and compatibility questions of a diagram.
type Layer interface {
	// ViewAt returns the topmost view under p, skipping the excluded views
	// and everything they contain.
	ViewAt(p geom.Point, exclude ...View) View
	// ViewsIn returns the top-level views lying entirely inside area.
	ViewsIn(area geom.Rect) []View
	// CanContainKind is the structural check: can container hold a child
	// of this kind at all.
	CanContainKind(container, child View) bool
	// CanContainView is the semantic check for this specific child.
	CanContainView(container, child View) bool
	// CanAttach reports whether the tail (or head) of edge may attach to
	// candidate.
	CanAttach(edge Edge, candidate View, tail bool) bool
}

// Same reports whether a and b denote the same view; two nils are the same.
func Same(a, b View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// Contains reports whether v is in views.
func Contains(views []View, v View) bool {
	for _, w := range views {
		if Same(w, v) {
			return true
		}
	}
	return false
}

// IDs returns the ids of views in order.
func IDs(views []View) []string {
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID()
	}
	return ids
}

// Anchor returns the line a parasitic view hangs from. For a host node it is
// the node centre twice; for a host edge it is the pair of points nearest
// the edge position, with the middle of an even-length polyline averaged.
func Anchor(host View, pos EdgePosition) (geom.Point, geom.Point) {
	edge, ok := host.(Edge)
	if !ok {
		c := host.BoundingBox().Center()
		return c, c
	}
	pts := edge.Points()
	n := len(pts)
	switch {
	case n == 0:
		c := host.BoundingBox().Center()
		return c, c
	case n == 1:
		return pts[0], pts[0]
	}
	switch pos {
	case EdgeTail:
		return pts[0], pts[1]
	case EdgeHead:
		return pts[n-1], pts[n-2]
	default:
		mid := n / 2
		if n%2 == 0 {
			return geom.Midpoint(pts[mid-1], pts[mid]), pts[mid]
		}
		return pts[mid], pts[mid+1]
	}
}

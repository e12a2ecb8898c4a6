// Package hover picks the pointer cursor while no gesture is running.
package hover

import (
	"math"

	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/manip"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// Cursor is a CSS cursor name.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorPointer   Cursor = "pointer"
	CursorMove      Cursor = "move"
	CursorCrosshair Cursor = "crosshair"
	CursorNWSE      Cursor = "nwse-resize"
	CursorNESW      Cursor = "nesw-resize"
	CursorNS        Cursor = "ns-resize"
	CursorEW        Cursor = "ew-resize"
)

var handleCursors = map[manip.Handle]Cursor{
	manip.HandleTopLeft:     CursorNWSE,
	manip.HandleBottomRight: CursorNWSE,
	manip.HandleTopRight:    CursorNESW,
	manip.HandleBottomLeft:  CursorNESW,
	manip.HandleTop:         CursorNS,
	manip.HandleBottom:      CursorNS,
	manip.HandleLeft:        CursorEW,
	manip.HandleRight:       CursorEW,
}

// Notifier remembers the last cursor so callers only touch the DOM on a
// change.
type Notifier struct {
	tolerance float64 // device pixels
	current   Cursor
}

func New(tolerance float64) *Notifier {
	return &Notifier{tolerance: tolerance, current: CursorDefault}
}

// Cursor returns the cursor set by the last Update.
func (n *Notifier) Cursor() Cursor {
	return n.current
}

// Reset returns to the default cursor.
func (n *Notifier) Reset() {
	n.current = CursorDefault
}

// Update resolves the cursor for e. Handles of a single selected view win;
// otherwise any selected view shows move and any other view under the
// pointer shows pointer. It reports whether the cursor changed.
func (n *Notifier) Update(t geom.Transform, selected []view.View, under view.View, e pointer.Event) (Cursor, bool) {
	next := n.resolve(t, selected, under, e)
	changed := next != n.current
	n.current = next
	return next, changed
}

func (n *Notifier) resolve(t geom.Transform, selected []view.View, under view.View, e pointer.Event) Cursor {
	if len(selected) == 1 {
		if c, ok := n.handleCursor(t, selected[0], e); ok {
			return c
		}
	}
	for _, v := range selected {
		if v.Kind() != view.KindEdge && v.BoundingBox().Contains(e.Model) && v.Movable() != view.MovableNone {
			return CursorMove
		}
	}
	if under != nil {
		return CursorPointer
	}
	return CursorDefault
}

func (n *Notifier) handleCursor(t geom.Transform, v view.View, e pointer.Event) (Cursor, bool) {
	if edge, ok := v.(view.Edge); ok {
		return n.edgeCursor(t, edge, e)
	}
	h := manip.HitHandle(t.ForwardRect(v.BoundingBox()), e.Device, v.Sizable(), n.tolerance)
	if c, ok := handleCursors[h]; ok {
		return c, true
	}
	if h == manip.HandleArea && v.Movable() != view.MovableNone {
		return CursorMove, true
	}
	return "", false
}

func (n *Notifier) edgeCursor(t geom.Transform, edge view.Edge, e pointer.Event) (Cursor, bool) {
	pts := edge.Points()
	tol := t.ToModel(n.tolerance)
	style := edge.LineStyle()

	if i := pts.VertexAt(e.Model, tol); i >= 0 {
		switch {
		case i == 0 || i == len(pts)-1:
			return CursorCrosshair, true
		case style == view.LineDirect:
			return CursorPointer, true
		}
		return CursorMove, true
	}
	i := pts.SegmentAt(e.Model, tol)
	if i < 0 {
		return "", false
	}
	switch {
	case style == view.LineDirect:
		return CursorPointer, true
	case style == view.LineOblique:
		return CursorCrosshair, true
	case math.Abs(pts[i].Y-pts[i+1].Y) < geom.Epsilon:
		return CursorNS, true
	}
	return CursorEW, true
}

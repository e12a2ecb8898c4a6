package manip

import (
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// NodeManipulator moves or resizes a rectangular view.
type NodeManipulator struct {
	env    *Env
	view   view.View
	handle Handle
	start  pointer.Event

	origin  geom.Rect // snapshot at Begin, the snap-back target
	minRect geom.Rect // the moving edges may not cross into it
	current geom.Rect
	dragged bool

	contain   bool
	container view.View
	changed   bool
}

// NewNode returns an idle node manipulator.
func NewNode() *NodeManipulator {
	return &NodeManipulator{}
}

// Handle returns the handle grabbed at Begin.
func (m *NodeManipulator) Handle() Handle {
	return m.handle
}

// Current returns the candidate rect of the running drag.
func (m *NodeManipulator) Current() geom.Rect {
	return m.current
}

func (m *NodeManipulator) Begin(env *Env, v view.View, e pointer.Event) bool {
	*m = NodeManipulator{env: env, view: v, start: e}
	m.origin = v.BoundingBox().Normalize()
	m.current = m.origin

	screen := env.Transform.ForwardRect(m.origin)
	m.handle = HitHandle(screen, env.Transform.Forward(e.Model), v.Sizable(), env.Tolerance)
	if m.handle == HandleNone {
		m.handle = HandleArea
	}
	if m.handle == HandleArea && v.Movable() == view.MovableNone {
		return false
	}

	minW, minH := v.MinSize()
	m.minRect = minimumRect(m.origin, m.handle, minW, minH)

	if m.handle == HandleArea && v.Kind() == view.KindNode && env.Containment != nil {
		m.contain = env.Containment.BeginHandling([]view.View{v})
	}
	return true
}

// minimumRect is the smallest rect allowed, anchored at the corner
// opposite the grabbed handle.
func minimumRect(origin geom.Rect, h Handle, minW, minH float64) geom.Rect {
	r := origin
	if h.movesLeft() {
		r.X1 = origin.X2 - minW
	} else {
		r.X2 = origin.X1 + minW
	}
	if h.movesTop() {
		r.Y1 = origin.Y2 - minH
	} else {
		r.Y2 = origin.Y1 + minH
	}
	return r
}

func (m *NodeManipulator) Drag(e pointer.Event) {
	if !m.dragged {
		if !m.env.Exceeds(m.start, e) {
			return
		}
		m.dragged = true
	}
	m.current = m.compute(e.Model.Sub(m.start.Model))
	m.env.Canvas.Clear(overlay.LayerSkeleton)
	m.env.Canvas.StrokeRect(overlay.LayerSkeleton, m.current)
	if m.contain {
		m.env.Containment.Update(e.Model)
	}
}

func (m *NodeManipulator) compute(d geom.Point) geom.Rect {
	o := m.origin
	g := m.env.Transform.Grid
	r := o

	if m.handle == HandleArea {
		mv := m.view.Movable()
		if mv.AlongX() {
			dx := fit(o.X1, d.X, g.Width) - o.X1
			r.X1, r.X2 = o.X1+dx, o.X2+dx
		}
		if mv.AlongY() {
			dy := fit(o.Y1, d.Y, g.Height) - o.Y1
			r.Y1, r.Y2 = o.Y1+dy, o.Y2+dy
		}
		return slideInto(r, m.env.Region)
	}

	h := m.handle
	if h.movesLeft() {
		r.X1 = min(fit(o.X1, d.X, g.Width), m.minRect.X1)
	}
	if h.movesRight() {
		r.X2 = max(fit(o.X2, d.X, g.Width), m.minRect.X2)
	}
	if h.movesTop() {
		r.Y1 = min(fit(o.Y1, d.Y, g.Height), m.minRect.Y1)
	}
	if h.movesBottom() {
		r.Y2 = max(fit(o.Y2, d.Y, g.Height), m.minRect.Y2)
	}
	if m.view.Sizable() == view.SizableRatio {
		minW, minH := m.view.MinSize()
		r = keepRatio(r, o.Ratio(), h, minW, minH)
	}
	return clipInto(r, m.env.Region)
}

// keepRatio derives the height from the width so the rect keeps ratio,
// growing both when the height would drop below minH.
func keepRatio(r geom.Rect, ratio float64, h Handle, minW, minH float64) geom.Rect {
	w := max(r.Width(), minW)
	ht := w / ratio
	if ht < minH {
		ht = minH
		w = ht * ratio
	}
	if h.movesLeft() {
		r.X1 = r.X2 - w
	} else {
		r.X2 = r.X1 + w
	}
	if h.movesTop() {
		r.Y1 = r.Y2 - ht
	} else {
		r.Y2 = r.Y1 + ht
	}
	return r
}

// settle applies the final pointer position, erases all feedback and
// reports whether the geometry differs from the origin.
func (m *NodeManipulator) settle(e pointer.Event) bool {
	m.Drag(e)
	m.env.Canvas.Clear(overlay.LayerSkeleton)
	if m.contain {
		m.container, m.changed = m.env.Containment.Finish()
		m.env.Containment.EndHandling()
	}
	return m.dragged && !m.current.Equal(m.origin, geom.Epsilon)
}

func (m *NodeManipulator) End(e pointer.Event) {
	if !m.settle(e) {
		return
	}
	if m.handle == HandleArea {
		dx, dy := m.current.X1-m.origin.X1, m.current.Y1-m.origin.Y1
		emitMove(m.env, []view.View{m.view}, dx, dy, m.container, m.changed)
		return
	}
	m.env.Sink.Emit(event.NodeResized{
		Node:   m.view,
		Left:   m.current.X1,
		Top:    m.current.Y1,
		Right:  m.current.X2,
		Bottom: m.current.Y2,
	})
}

func (m *NodeManipulator) Cancel() {
	m.env.Canvas.Clear(overlay.LayerSkeleton)
	if m.contain {
		m.env.Containment.EndHandling()
	}
	m.dragged = false
}

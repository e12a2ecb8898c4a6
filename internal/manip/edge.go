package manip

import (
	"math"

	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

type grab int

const (
	grabNone grab = iota
	grabVertex
	grabSegment
)

// EdgeManipulator edits the point list of an edge according to its line
// style.
type EdgeManipulator struct {
	env   *Env
	edge  view.Edge
	style view.LineStyle
	start pointer.Event

	origin  geom.Points // points as stored on the edge
	working geom.Points // origin plus any points inserted at Begin
	current geom.Points
	grab    grab
	index   int // grabbed vertex, or first point of the grabbed segment
	dragged bool
}

// NewEdge returns an idle edge manipulator.
func NewEdge() *EdgeManipulator {
	return &EdgeManipulator{}
}

// Current returns the candidate points of the running drag.
func (m *EdgeManipulator) Current() geom.Points {
	return m.current
}

func (m *EdgeManipulator) Begin(env *Env, v view.View, e pointer.Event) bool {
	edge, ok := v.(view.Edge)
	if !ok {
		return false
	}
	*m = EdgeManipulator{env: env, edge: edge, style: edge.LineStyle(), start: e}
	m.origin = edge.Points().Clone()
	m.working = m.origin.Clone()

	tol := env.modelTolerance()
	vi := m.working.VertexAt(e.Model, tol)
	si := m.working.SegmentAt(e.Model, tol)
	last := len(m.working) - 1

	switch {
	case m.style == view.LineDirect:
		// The middle of a direct line is selectable but not editable.
		if vi == 0 || vi == last {
			m.grab, m.index = grabVertex, vi
		}
	case m.style == view.LineOblique:
		if vi >= 0 {
			m.grab, m.index = grabVertex, vi
		} else if si >= 0 {
			m.working.Insert(si+1, e.Model)
			m.grab, m.index = grabVertex, si+1
		}
	default:
		if vi >= 0 {
			m.grabOrthogonalVertex(vi)
		} else if si >= 0 {
			m.grabOrthogonalSegment(si)
		}
	}
	m.current = m.working.Clone()
	return true
}

// grabOrthogonalVertex grabs point i. A two-point line first gets an elbow
// so that the other endpoint stays where it is.
func (m *EdgeManipulator) grabOrthogonalVertex(i int) {
	m.grab, m.index = grabVertex, i
	if len(m.working) != 2 {
		return
	}
	if i == 0 {
		m.working.Insert(1, m.working[1])
		return
	}
	m.working.Insert(1, m.working[0])
	m.index = 2
}

// grabOrthogonalSegment grabs segment i. A segment touching an endpoint
// gets that endpoint duplicated so the endpoint itself never slides.
func (m *EdgeManipulator) grabOrthogonalSegment(i int) {
	n := len(m.working)
	if i == n-2 {
		m.working.Insert(n-1, m.working[n-1])
	}
	if i == 0 {
		m.working.Insert(1, m.working[0])
		i = 1
	}
	m.grab, m.index = grabSegment, i
}

func (m *EdgeManipulator) Drag(e pointer.Event) {
	if m.grab == grabNone {
		return
	}
	if !m.dragged {
		if !m.env.Exceeds(m.start, e) {
			return
		}
		m.dragged = true
	}
	m.current = m.compute(e.Model.Sub(m.start.Model))
	m.env.Canvas.Clear(overlay.LayerSkeleton)
	m.env.Canvas.StrokePolyline(overlay.LayerSkeleton, m.current)
}

func (m *EdgeManipulator) compute(d geom.Point) geom.Points {
	g := m.env.Transform.Grid
	w := m.working
	cur := w.Clone()
	k := m.index

	if m.grab == grabSegment {
		a, b := w[k], w[k+1]
		if math.Abs(a.Y-b.Y) < geom.Epsilon {
			y := fit(a.Y, d.Y, g.Height)
			cur[k].Y, cur[k+1].Y = y, y
		} else {
			x := fit(a.X, d.X, g.Width)
			cur[k].X, cur[k+1].X = x, x
		}
		return cur
	}

	q := w[k]
	np := geom.Point{X: fit(q.X, d.X, g.Width), Y: fit(q.Y, d.Y, g.Height)}
	cur[k] = np
	if !m.style.Orthogonal() {
		return cur
	}
	// Neighbours slide along the axis they share with the grabbed point.
	for _, j := range []int{k - 1, k + 1} {
		if j < 0 || j >= len(w) {
			continue
		}
		switch {
		case math.Abs(w[j].Y-q.Y) < geom.Epsilon:
			cur[j].Y = np.Y
		case math.Abs(w[j].X-q.X) < geom.Epsilon:
			cur[j].X = np.X
		}
	}
	return cur
}

func (m *EdgeManipulator) End(e pointer.Event) {
	m.Drag(e)
	m.env.Canvas.Clear(overlay.LayerSkeleton)
	if m.grab == grabNone || !m.dragged {
		return
	}

	var pts geom.Points
	if m.style.Orthogonal() {
		pts = m.current.ReduceOrthogonal()
	} else {
		pts = m.current.ReduceFree()
	}
	if pts.Equal(m.origin) {
		return
	}

	if ev, ok := m.reconnect(pts); ok {
		m.env.Sink.Emit(ev)
		return
	}
	m.env.Sink.Emit(event.EdgeModified{Edge: m.edge, Points: pts})
}

// reconnect checks the moved endpoints against the views now under them.
func (m *EdgeManipulator) reconnect(pts geom.Points) (event.EdgeReconnected, bool) {
	ends := []struct {
		tail     bool
		now, was geom.Point
		attached view.View
	}{
		{tail: true, now: pts.First(), was: m.origin.First(), attached: m.edge.Tail()},
		{tail: false, now: pts.Last(), was: m.origin.Last(), attached: m.edge.Head()},
	}
	for _, end := range ends {
		if end.now.Equal(end.was, geom.Epsilon) {
			continue
		}
		candidate := m.env.Layer.ViewAt(end.now, m.edge)
		if candidate == nil || view.Same(candidate, end.attached) {
			continue
		}
		if !m.env.Layer.CanAttach(m.edge, candidate, end.tail) {
			continue
		}
		return event.EdgeReconnected{Edge: m.edge, Points: pts, Endpoint: candidate, Tail: end.tail}, true
	}
	return event.EdgeReconnected{}, false
}

func (m *EdgeManipulator) Cancel() {
	m.env.Canvas.Clear(overlay.LayerSkeleton)
	m.dragged = false
}

package manip

import (
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// ParasiticManipulator repositions a label relative to its host. A free
// drag is committed as a polar offset from the host's anchor line so the
// label keeps following the host; resize handles behave as for nodes.
type ParasiticManipulator struct {
	NodeManipulator
	label view.Parasitic
}

// NewParasitic returns an idle parasitic manipulator.
func NewParasitic() *ParasiticManipulator {
	return &ParasiticManipulator{}
}

func (m *ParasiticManipulator) Begin(env *Env, v view.View, e pointer.Event) bool {
	p, ok := v.(view.Parasitic)
	if !ok || p.Host() == nil {
		return false
	}
	m.label = p
	return m.NodeManipulator.Begin(env, v, e)
}

func (m *ParasiticManipulator) End(e pointer.Event) {
	if m.handle != HandleArea {
		m.NodeManipulator.End(e)
		return
	}
	if !m.settle(e) {
		return
	}
	p1, p2 := view.Anchor(m.label.Host(), m.label.EdgePosition())
	angle, distance := geom.PolarOffset(p1, p2, m.current.Center())
	m.env.Sink.Emit(event.ParasiticViewMoved{View: m.label, Angle: angle, Distance: distance})
}

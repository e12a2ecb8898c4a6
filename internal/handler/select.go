package handler

import (
	"slices"

	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/hover"
	"github.com/inamate/diagrammer/internal/manip"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

type gesture int

const (
	gestureIdle gesture = iota
	gestureRubberband
	gestureSingle
	gestureGroup
)

// SelectHandler owns the selection. A press on empty canvas starts a
// rubberband, a press on a view selects it and drags it with the
// manipulator of its kind, and a press inside a multi-selection drags the
// whole group.
type SelectHandler struct {
	hover     *hover.Notifier
	selection []view.View

	env     *manip.Env
	start   pointer.Event
	gesture gesture
	single  manip.Manipulator
	group   *manip.GroupMover
}

var _ Handler = (*SelectHandler)(nil)

// NewSelect creates a select handler; tolerance is the handle hit distance
// in device pixels.
func NewSelect(tolerance float64) *SelectHandler {
	return &SelectHandler{hover: hover.New(tolerance)}
}

// Selection returns the selected views in selection order.
func (h *SelectHandler) Selection() []view.View {
	return slices.Clone(h.selection)
}

// Select replaces the selection, emitting SelectionChanged on a change.
func (h *SelectHandler) Select(sink event.Sink, views []view.View) {
	if sameSelection(h.selection, views) {
		return
	}
	h.selection = slices.Clone(views)
	sink.Emit(event.SelectionChanged{Views: h.Selection()})
}

func sameSelection(a, b []view.View) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !view.Same(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (h *SelectHandler) Active() bool {
	return h.gesture != gestureIdle
}

func (h *SelectHandler) PointerDown(env *manip.Env, e pointer.Event) {
	if h.Active() || e.Button != pointer.ButtonLeft {
		return
	}
	h.env, h.start = env, e

	target := env.Layer.ViewAt(e.Model)
	if len(h.selection) == 1 && h.onHandle(h.selection[0], e) {
		target = h.selection[0]
	}

	if e.ClickCount >= 2 {
		if target != nil {
			env.Sink.Emit(event.ViewDoubleClicked{View: target, X: e.Model.X, Y: e.Model.Y})
		}
		return
	}

	switch {
	case target == nil:
		if !e.Shift {
			h.Select(env.Sink, nil)
		}
		h.gesture = gestureRubberband
	case e.Shift:
		h.toggle(target)
		if view.Contains(h.selection, target) {
			h.beginGroup(e)
		}
	case view.Contains(h.selection, target) && len(h.selection) > 1:
		h.beginGroup(e)
	default:
		h.Select(env.Sink, []view.View{target})
		if m := manip.Bind(env, target, e); m != nil {
			h.single = m
			h.gesture = gestureSingle
		}
	}
}

// onHandle reports whether e grabs a resize handle or a point of v. Handles
// straddle the outline, so they are checked before hit-testing the layer.
func (h *SelectHandler) onHandle(v view.View, e pointer.Event) bool {
	t := h.env.Transform
	if edge, ok := v.(view.Edge); ok {
		return edge.Points().VertexAt(e.Model, t.ToModel(h.env.Tolerance)) >= 0
	}
	return manip.HitHandle(t.ForwardRect(v.BoundingBox()), e.Device, v.Sizable(), h.env.Tolerance).IsResize()
}

func (h *SelectHandler) toggle(v view.View) {
	next := slices.DeleteFunc(slices.Clone(h.selection), func(w view.View) bool { return view.Same(w, v) })
	if len(next) == len(h.selection) {
		next = append(next, v)
	}
	h.Select(h.env.Sink, next)
}

func (h *SelectHandler) beginGroup(e pointer.Event) {
	g := manip.NewGroup()
	if g.Begin(h.env, h.selection, e) {
		h.group = g
		h.gesture = gestureGroup
	}
}

func (h *SelectHandler) PointerDrag(e pointer.Event) {
	switch h.gesture {
	case gestureRubberband:
		h.env.Canvas.Clear(overlay.LayerRubberband)
		h.env.Canvas.StrokeRect(overlay.LayerRubberband, geom.RectFromPoints(h.start.Model, e.Model))
	case gestureSingle:
		h.single.Drag(e)
	case gestureGroup:
		h.group.Drag(e)
	}
}

func (h *SelectHandler) PointerUp(e pointer.Event) {
	switch h.gesture {
	case gestureRubberband:
		h.env.Canvas.Clear(overlay.LayerRubberband)
		if h.env.Exceeds(h.start, e) {
			h.selectArea(geom.RectFromPoints(h.start.Model, e.Model), e.Shift)
		}
	case gestureSingle:
		h.single.End(e)
	case gestureGroup:
		h.group.End(e)
	}
	h.reset()
}

func (h *SelectHandler) selectArea(area geom.Rect, extend bool) {
	found := h.env.Layer.ViewsIn(area)
	if !extend {
		h.Select(h.env.Sink, found)
		return
	}
	next := slices.Clone(h.selection)
	for _, v := range found {
		if !view.Contains(next, v) {
			next = append(next, v)
		}
	}
	h.Select(h.env.Sink, next)
}

func (h *SelectHandler) Cancel() {
	switch h.gesture {
	case gestureRubberband:
		h.env.Canvas.Clear(overlay.LayerRubberband)
	case gestureSingle:
		h.single.Cancel()
	case gestureGroup:
		h.group.Cancel()
	}
	h.reset()
}

func (h *SelectHandler) reset() {
	h.gesture = gestureIdle
	h.single = nil
	h.group = nil
}

func (h *SelectHandler) Hover(env *manip.Env, e pointer.Event) hover.Cursor {
	c, _ := h.hover.Update(env.Transform, h.selection, env.Layer.ViewAt(e.Model), e)
	return c
}

package manip

import (
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// GroupMover drags several selected views together. The union of their
// bounding boxes is moved like a single node so grid fitting and region
// clamping apply to the group as a whole.
type GroupMover struct {
	env   *Env
	views []view.View
	start pointer.Event

	origin  geom.Rect
	current geom.Rect
	alongX  bool
	alongY  bool
	dragged bool

	contain   bool
	container view.View
	changed   bool
}

// NewGroup returns an idle group mover.
func NewGroup() *GroupMover {
	return &GroupMover{}
}

// Views returns the views being moved.
func (g *GroupMover) Views() []view.View {
	return g.views
}

// Begin starts dragging the movable views among views. Parasitic views are
// left out; they follow their hosts.
func (g *GroupMover) Begin(env *Env, views []view.View, e pointer.Event) bool {
	*g = GroupMover{env: env, start: e, alongX: true, alongY: true}
	allNodes := true
	for _, v := range views {
		if v.Kind() == view.KindParasitic || v.Movable() == view.MovableNone {
			continue
		}
		if len(g.views) == 0 {
			g.origin = v.BoundingBox().Normalize()
		} else {
			g.origin = g.origin.Union(v.BoundingBox().Normalize())
		}
		g.views = append(g.views, v)
		g.alongX = g.alongX && v.Movable().AlongX()
		g.alongY = g.alongY && v.Movable().AlongY()
		allNodes = allNodes && v.Kind() == view.KindNode
	}
	if len(g.views) == 0 {
		return false
	}
	g.current = g.origin
	if allNodes && env.Containment != nil {
		g.contain = env.Containment.BeginHandling(g.views)
	}
	return true
}

func (g *GroupMover) Drag(e pointer.Event) {
	if !g.dragged {
		if !g.env.Exceeds(g.start, e) {
			return
		}
		g.dragged = true
	}
	d := e.Model.Sub(g.start.Model)
	grid := g.env.Transform.Grid
	r := g.origin
	if g.alongX {
		dx := fit(r.X1, d.X, grid.Width) - r.X1
		r = r.Translate(dx, 0)
	}
	if g.alongY {
		dy := fit(r.Y1, d.Y, grid.Height) - r.Y1
		r = r.Translate(0, dy)
	}
	g.current = slideInto(r, g.env.Region)

	dx, dy := g.delta()
	g.env.Canvas.Clear(overlay.LayerSkeleton)
	for _, v := range g.views {
		if edge, ok := v.(view.Edge); ok {
			g.env.Canvas.StrokePolyline(overlay.LayerSkeleton, edge.Points().Translate(dx, dy))
			continue
		}
		g.env.Canvas.StrokeRect(overlay.LayerSkeleton, v.BoundingBox().Translate(dx, dy))
	}
	if g.contain {
		g.env.Containment.Update(e.Model)
	}
}

func (g *GroupMover) delta() (float64, float64) {
	return g.current.X1 - g.origin.X1, g.current.Y1 - g.origin.Y1
}

func (g *GroupMover) End(e pointer.Event) {
	g.Drag(e)
	g.env.Canvas.Clear(overlay.LayerSkeleton)
	if g.contain {
		g.container, g.changed = g.env.Containment.Finish()
		g.env.Containment.EndHandling()
	}
	dx, dy := g.delta()
	if !g.dragged || (dx == 0 && dy == 0) {
		return
	}
	emitMove(g.env, g.views, dx, dy, g.container, g.changed)
}

func (g *GroupMover) Cancel() {
	g.env.Canvas.Clear(overlay.LayerSkeleton)
	if g.contain {
		g.env.Containment.EndHandling()
	}
	g.dragged = false
}

package document

import (
	"slices"

	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/view"
)

// DefaultHitTolerance is the edge hit distance in model units.
const DefaultHitTolerance = 4.0

var _ view.Layer = (*Diagram)(nil)

func (d *Diagram) tolerance() float64 {
	if d.HitTolerance > 0 {
		return d.HitTolerance
	}
	return DefaultHitTolerance
}

// ViewAt walks the tree in reverse paint order so the topmost view wins.
// Excluded views are skipped along with their children.
func (d *Diagram) ViewAt(p geom.Point, exclude ...view.View) view.View {
	skip := make(map[string]bool, len(exclude))
	for _, v := range exclude {
		if v != nil {
			skip[v.ID()] = true
		}
	}
	if n := d.hitTest(d.Root, p, skip); n != nil {
		return d.wrap(n)
	}
	return nil
}

func (d *Diagram) hitTest(ids []string, p geom.Point, skip map[string]bool) *ViewNode {
	for i := len(ids) - 1; i >= 0; i-- {
		n, ok := d.Views[ids[i]]
		if !ok || skip[n.ID] {
			continue
		}
		if hit := d.hitTest(n.Children, p, skip); hit != nil {
			return hit
		}
		if d.hits(n, p) {
			return n
		}
	}
	return nil
}

func (d *Diagram) hits(n *ViewNode, p geom.Point) bool {
	if n.Kind == ViewKindEdge {
		tol := d.tolerance()
		for i := 0; i+1 < len(n.Points); i++ {
			if geom.DistanceToSegment(p, n.Points[i], n.Points[i+1]) <= tol {
				return true
			}
		}
		return false
	}
	return d.wrap(n).BoundingBox().Contains(p)
}

// ViewsIn returns the top-level views lying entirely inside area.
func (d *Diagram) ViewsIn(area geom.Rect) []view.View {
	area = area.Normalize()
	var out []view.View
	for _, id := range d.Root {
		n, ok := d.Views[id]
		if !ok {
			continue
		}
		v := d.wrap(n)
		if area.ContainsRect(v.BoundingBox()) {
			out = append(out, v)
		}
	}
	return out
}

// CanContainKind: only container nodes hold children, and only nodes are
// held. Edges and labels stay where their ends and hosts are.
func (d *Diagram) CanContainKind(container, child view.View) bool {
	if container == nil || child == nil {
		return false
	}
	c, ok := d.Views[container.ID()]
	if !ok || c.Kind != ViewKindNode || !c.Container {
		return false
	}
	return child.Kind() == view.KindNode
}

// CanContainView checks the container's accepted categories and refuses to
// nest a view inside itself.
func (d *Diagram) CanContainView(container, child view.View) bool {
	if container == nil || child == nil {
		return false
	}
	c, ok := d.Views[container.ID()]
	if !ok {
		return false
	}
	n, ok := d.Views[child.ID()]
	if !ok || d.isAncestor(n.ID, c.ID) {
		return false
	}
	return len(c.Accepts) == 0 || slices.Contains(c.Accepts, n.Category)
}

// CanAttach lets an edge end attach to any node whose category the edge
// connects.
func (d *Diagram) CanAttach(edge view.Edge, candidate view.View, tail bool) bool {
	if edge == nil || candidate == nil || candidate.Kind() != view.KindNode {
		return false
	}
	e, ok := d.Views[edge.ID()]
	if !ok {
		return false
	}
	c, ok := d.Views[candidate.ID()]
	if !ok {
		return false
	}
	return len(e.Connects) == 0 || slices.Contains(e.Connects, c.Category)
}

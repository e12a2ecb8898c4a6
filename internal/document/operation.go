package document

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/typeid"
	"github.com/inamate/diagrammer/internal/view"
)

type OpType string

const (
	OpViewMove      OpType = "view.move"
	OpViewReparent  OpType = "view.reparent"
	OpNodeResize    OpType = "node.resize"
	OpEdgePoints    OpType = "edge.points"
	OpEdgeReconnect OpType = "edge.reconnect"
	OpLabelMove     OpType = "label.move"
	OpViewCreate    OpType = "view.create"
)

// Operation is a committed edit in wire form.
type Operation struct {
	ID        string `json:"id"`
	Type      OpType `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq,omitempty"`

	ViewIDs []string `json:"viewIds,omitempty"`
	DX      float64  `json:"dx,omitempty"`
	DY      float64  `json:"dy,omitempty"`

	// For view.reparent; empty is the diagram itself.
	ContainerID string `json:"containerId,omitempty"`

	// For node.resize
	Bounds *geom.Rect `json:"bounds,omitempty"`

	// For edge.points and edge.reconnect
	Points     geom.Points `json:"points,omitempty"`
	EndpointID string      `json:"endpointId,omitempty"`
	Tail       bool        `json:"tail,omitempty"`

	// For label.move
	Angle    float64 `json:"angle,omitempty"`
	Distance float64 `json:"distance,omitempty"`

	// For view.create
	View *ViewNode `json:"view,omitempty"`
}

var (
	// ErrNotMutation is returned for events that leave the diagram unchanged.
	ErrNotMutation = errors.New("event does not mutate the diagram")
	ErrNotFound    = errors.New("view not found")
	ErrUnknownOp   = errors.New("unknown operation type")
	ErrWrongKind   = errors.New("operation does not fit the view kind")
)

// OperationFromEvent converts a committed edit into an operation with a
// fresh id.
func OperationFromEvent(ev event.Event) (Operation, error) {
	op := Operation{ID: typeid.NewOpID(), Timestamp: time.Now().UnixMilli()}
	switch e := ev.(type) {
	case event.ViewMoved:
		op.Type = OpViewMove
		op.ViewIDs = view.IDs(e.Views)
		op.DX, op.DY = e.DX, e.DY
	case event.ContainerViewChanged:
		op.Type = OpViewReparent
		op.ViewIDs = view.IDs(e.Views)
		op.DX, op.DY = e.DX, e.DY
		if e.Container != nil {
			op.ContainerID = e.Container.ID()
		}
	case event.NodeResized:
		op.Type = OpNodeResize
		op.ViewIDs = []string{e.Node.ID()}
		r := geom.R(e.Left, e.Top, e.Right, e.Bottom)
		op.Bounds = &r
	case event.EdgeModified:
		op.Type = OpEdgePoints
		op.ViewIDs = []string{e.Edge.ID()}
		op.Points = e.Points.Clone()
	case event.EdgeReconnected:
		op.Type = OpEdgeReconnect
		op.ViewIDs = []string{e.Edge.ID()}
		op.Points = e.Points.Clone()
		op.EndpointID = e.Endpoint.ID()
		op.Tail = e.Tail
	case event.ParasiticViewMoved:
		op.Type = OpLabelMove
		op.ViewIDs = []string{e.View.ID()}
		op.Angle, op.Distance = e.Angle, e.Distance
	default:
		return Operation{}, fmt.Errorf("%w: %s", ErrNotMutation, ev.Type())
	}
	return op, nil
}

// Apply mutates the diagram. It checks every referenced view, and the
// view as it will be after the edit, before changing anything.
func (d *Diagram) Apply(op Operation) error {
	if op.Type == OpViewCreate {
		return d.create(op.View)
	}
	nodes := make([]*ViewNode, 0, len(op.ViewIDs))
	for _, id := range op.ViewIDs {
		n, ok := d.Views[id]
		if !ok {
			return fmt.Errorf("%s: %w: %s", op.Type, ErrNotFound, id)
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%s: no views", op.Type)
	}

	switch op.Type {
	case OpViewMove:
		d.move(nodes, op.DX, op.DY)
		return nil
	case OpViewReparent:
		if op.ContainerID != "" {
			c, ok := d.Views[op.ContainerID]
			if !ok {
				return fmt.Errorf("%s: %w: %s", op.Type, ErrNotFound, op.ContainerID)
			}
			if c.Kind != ViewKindNode {
				return fmt.Errorf("%s: %w: container %s is a %s", op.Type, ErrWrongKind, c.ID, c.Kind)
			}
			for _, n := range nodes {
				if d.isAncestor(n.ID, op.ContainerID) {
					return fmt.Errorf("%s: %s cannot hold its own container %s", op.Type, op.ContainerID, n.ID)
				}
			}
		}
		d.move(nodes, op.DX, op.DY)
		for _, n := range nodes {
			d.reparent(n, op.ContainerID)
		}
		return nil
	}

	target := nodes[0]
	next := *target
	switch op.Type {
	case OpNodeResize:
		if op.Bounds == nil {
			return fmt.Errorf("%s: missing bounds", op.Type)
		}
		r := op.Bounds.Normalize()
		switch target.Kind {
		case ViewKindNode:
			next.Bounds = r
		case ViewKindLabel:
			// A label keeps no bounds: the new box becomes its size and offset.
			host := d.View(target.Host)
			if host == nil {
				return fmt.Errorf("%s: %w: host %s", op.Type, ErrNotFound, target.Host)
			}
			p1, p2 := view.Anchor(host, d.wrap(target).(view.Parasitic).EdgePosition())
			next.Angle, next.Distance = geom.PolarOffset(p1, p2, r.Center())
			next.Size = Size{Width: r.Width(), Height: r.Height()}
		default:
			return fmt.Errorf("%s: %w: %s is a %s", op.Type, ErrWrongKind, target.ID, target.Kind)
		}
	case OpEdgePoints, OpEdgeReconnect:
		if target.Kind != ViewKindEdge {
			return fmt.Errorf("%s: %w: %s is a %s", op.Type, ErrWrongKind, target.ID, target.Kind)
		}
		next.Points = op.Points.Clone()
		if op.Type == OpEdgeReconnect {
			end, ok := d.Views[op.EndpointID]
			if !ok {
				return fmt.Errorf("%s: %w: %s", op.Type, ErrNotFound, op.EndpointID)
			}
			if end.Kind != ViewKindNode {
				return fmt.Errorf("%s: %w: endpoint %s is a %s", op.Type, ErrWrongKind, end.ID, end.Kind)
			}
			if op.Tail {
				next.Tail = op.EndpointID
			} else {
				next.Head = op.EndpointID
			}
		}
	case OpLabelMove:
		if target.Kind != ViewKindLabel {
			return fmt.Errorf("%s: %w: %s is a %s", op.Type, ErrWrongKind, target.ID, target.Kind)
		}
		next.Angle, next.Distance = op.Angle, op.Distance
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, op.Type)
	}

	if err := d.validateView(&next); err != nil {
		return fmt.Errorf("%s: %w", op.Type, err)
	}
	*target = next
	return nil
}

// move translates nodes and everything inside them once each. Edge ends
// attached to a moved node follow it.
func (d *Diagram) move(nodes []*ViewNode, dx, dy float64) {
	moved := map[string]bool{}
	var walk func(n *ViewNode)
	walk = func(n *ViewNode) {
		if moved[n.ID] {
			return
		}
		moved[n.ID] = true
		switch n.Kind {
		case ViewKindNode:
			n.Bounds = n.Bounds.Translate(dx, dy)
		case ViewKindEdge:
			n.Points = n.Points.Translate(dx, dy)
		}
		for _, id := range n.Children {
			if c, ok := d.Views[id]; ok {
				walk(c)
			}
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	for _, e := range d.Views {
		if e.Kind != ViewKindEdge || moved[e.ID] || len(e.Points) == 0 {
			continue
		}
		if moved[e.Tail] && moved[e.Head] {
			e.Points = e.Points.Translate(dx, dy)
			continue
		}
		if moved[e.Tail] {
			e.Points[0] = e.Points[0].Add(geom.Pt(dx, dy))
		}
		if moved[e.Head] {
			last := len(e.Points) - 1
			e.Points[last] = e.Points[last].Add(geom.Pt(dx, dy))
		}
	}
}

func (d *Diagram) reparent(n *ViewNode, containerID string) {
	if n.Parent == containerID {
		return
	}
	from := d.siblings(n)
	*from = slices.DeleteFunc(*from, func(id string) bool { return id == n.ID })
	n.Parent = containerID
	to := d.siblings(n)
	*to = append(*to, n.ID)
}

func (d *Diagram) create(n *ViewNode) error {
	if n == nil || n.ID == "" {
		return errors.New("view.create: missing view")
	}
	if _, ok := d.Views[n.ID]; ok {
		return fmt.Errorf("view.create: duplicate id %s", n.ID)
	}
	if len(n.Children) > 0 {
		return fmt.Errorf("view.create: %s arrives with children", n.ID)
	}
	if n.Parent != "" {
		p, ok := d.Views[n.Parent]
		if !ok {
			return fmt.Errorf("view.create: %w: parent %s", ErrNotFound, n.Parent)
		}
		if p.Kind != ViewKindNode {
			return fmt.Errorf("view.create: %w: parent %s is a %s", ErrWrongKind, p.ID, p.Kind)
		}
	}
	if err := d.validateView(n); err != nil {
		return fmt.Errorf("view.create: %w", err)
	}
	if d.Views == nil {
		d.Views = map[string]*ViewNode{}
	}
	d.Views[n.ID] = n
	siblings := d.siblings(n)
	*siblings = append(*siblings, n.ID)
	return nil
}

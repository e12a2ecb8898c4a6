package document

import (
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/view"
)

// Diagram is an in-memory diagram: a tree of views painted in Root order,
// each view painted before its children.
type Diagram struct {
	ID     string               `json:"id"`
	Name   string               `json:"name"`
	Width  float64              `json:"width"`
	Height float64              `json:"height"`
	Views  map[string]*ViewNode `json:"views"`
	Root   []string             `json:"root"`

	// HitTolerance is the model distance within which a point hits an
	// edge. Zero means DefaultHitTolerance.
	HitTolerance float64 `json:"-"`
}

type ViewKind string

const (
	ViewKindNode  ViewKind = "node"
	ViewKindEdge  ViewKind = "edge"
	ViewKindLabel ViewKind = "label"
)

type ViewNode struct {
	ID       string   `json:"id"`
	Kind     ViewKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Category string   `json:"category,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`

	Sizable   string  `json:"sizable,omitempty"`
	Movable   string  `json:"movable,omitempty"`
	MinWidth  float64 `json:"minWidth,omitempty"`
	MinHeight float64 `json:"minHeight,omitempty"`

	// Nodes
	Bounds    geom.Rect `json:"bounds"`
	Container bool      `json:"container,omitempty"`
	Accepts   []string  `json:"accepts,omitempty"` // child categories; empty accepts any

	// Edges
	Points    geom.Points `json:"points,omitempty"`
	LineStyle string      `json:"lineStyle,omitempty"`
	Tail      string      `json:"tail,omitempty"`
	Head      string      `json:"head,omitempty"`
	Connects  []string    `json:"connects,omitempty"` // endpoint categories; empty connects any node

	// Labels
	Host     string  `json:"host,omitempty"`
	Position string  `json:"position,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Size     Size    `json:"size"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (n *ViewNode) kind() view.Kind {
	switch n.Kind {
	case ViewKindEdge:
		return view.KindEdge
	case ViewKindLabel:
		return view.KindParasitic
	}
	return view.KindNode
}

// View returns the view with id, or nil.
func (d *Diagram) View(id string) view.View {
	n, ok := d.Views[id]
	if !ok || n == nil {
		return nil
	}
	return d.wrap(n)
}

// Node returns the stored node of id, or nil.
func (d *Diagram) Node(id string) *ViewNode {
	return d.Views[id]
}

func (d *Diagram) wrap(n *ViewNode) view.View {
	s := shape{d: d, n: n}
	switch n.Kind {
	case ViewKindEdge:
		return line{s}
	case ViewKindLabel:
		return label{s}
	}
	return s
}

// Bounds returns the whole canvas.
func (d *Diagram) Bounds() geom.Rect {
	return geom.R(0, 0, d.Width, d.Height)
}

// siblings returns the child list holding n: its parent's children or Root.
func (d *Diagram) siblings(n *ViewNode) *[]string {
	if p, ok := d.Views[n.Parent]; ok && n.Parent != "" {
		return &p.Children
	}
	return &d.Root
}

// isAncestor reports whether a is b or one of b's containers.
func (d *Diagram) isAncestor(a, b string) bool {
	for id := b; id != ""; {
		if id == a {
			return true
		}
		n, ok := d.Views[id]
		if !ok {
			return false
		}
		id = n.Parent
	}
	return false
}

// shape adapts a stored node to view.View.
type shape struct {
	d *Diagram
	n *ViewNode
}

func (s shape) ID() string      { return s.n.ID }
func (s shape) Kind() view.Kind { return s.n.kind() }

func (s shape) Container() view.View {
	if s.n.Parent == "" {
		return nil
	}
	return s.d.View(s.n.Parent)
}

func (s shape) BoundingBox() geom.Rect {
	return s.n.Bounds.Normalize()
}

func (s shape) Sizable() view.SizableMode {
	m, err := view.ParseSizable(s.n.Sizable)
	if err != nil {
		return view.SizableNone
	}
	return m
}

func (s shape) Movable() view.MovableMode {
	m, err := view.ParseMovable(s.n.Movable)
	if err != nil {
		return view.MovableNone
	}
	return m
}

func (s shape) MinSize() (float64, float64) {
	return s.n.MinWidth, s.n.MinHeight
}

// line adapts a stored edge to view.Edge.
type line struct{ shape }

func (l line) BoundingBox() geom.Rect {
	return l.n.Points.Bounds()
}

func (l line) Sizable() view.SizableMode { return view.SizableNone }
func (l line) Points() geom.Points       { return l.n.Points }
func (l line) Tail() view.View           { return l.d.View(l.n.Tail) }
func (l line) Head() view.View           { return l.d.View(l.n.Head) }

func (l line) LineStyle() view.LineStyle {
	s, err := view.ParseLineStyle(l.n.LineStyle)
	if err != nil {
		return view.LineRectilinear
	}
	return s
}

// label adapts a stored label to view.Parasitic. Its box is centred on the
// polar offset from the host's anchor line.
type label struct{ shape }

func (l label) Host() view.View { return l.d.View(l.n.Host) }

func (l label) EdgePosition() view.EdgePosition {
	p, err := view.ParseEdgePosition(l.n.Position)
	if err != nil {
		return view.EdgeMiddle
	}
	return p
}

func (l label) BoundingBox() geom.Rect {
	host := l.Host()
	if host == nil {
		return geom.Rect{}
	}
	p1, p2 := view.Anchor(host, l.EdgePosition())
	c := geom.PointAwayLine(p1, p2, l.n.Angle, l.n.Distance)
	w, h := l.n.Size.Width/2, l.n.Size.Height/2
	return geom.R(c.X-w, c.Y-h, c.X+w, c.Y+h)
}

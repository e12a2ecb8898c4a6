// Package event defines the committed edits emitted by the editor. Each
// gesture emits at most one event, synchronously, in model coordinates.
package event

import (
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/view"
)

// Type names an event.
type Type string

const (
	TypeSelectionChanged     Type = "selection.changed"
	TypeViewDoubleClicked    Type = "view.doubleClicked"
	TypeViewMoved            Type = "view.moved"
	TypeNodeResized          Type = "node.resized"
	TypeEdgeModified         Type = "edge.modified"
	TypeEdgeReconnected      Type = "edge.reconnected"
	TypeContainerViewChanged Type = "view.containerChanged"
	TypeParasiticViewMoved   Type = "parasitic.moved"
	TypeScroll               Type = "canvas.scroll"
	TypeZoom                 Type = "canvas.zoom"
)

// Event is one of the concrete event structs below.
type Event interface {
	Type() Type
}

type SelectionChanged struct {
	Views []view.View
}

type ViewDoubleClicked struct {
	View view.View
	X, Y float64
}

type ViewMoved struct {
	Views  []view.View
	DX, DY float64
}

type NodeResized struct {
	Node                     view.View
	Left, Top, Right, Bottom float64
}

type EdgeModified struct {
	Edge   view.Edge
	Points geom.Points
}

type EdgeReconnected struct {
	Edge     view.Edge
	Points   geom.Points
	Endpoint view.View
	Tail     bool
}

type ContainerViewChanged struct {
	Views     []view.View
	DX, DY    float64
	Container view.View // nil means the diagram itself
}

type ParasiticViewMoved struct {
	View            view.View
	Angle, Distance float64
}

type Scroll struct {
	DX, DY float64
}

type Zoom struct {
	Scale float64
}

func (SelectionChanged) Type() Type     { return TypeSelectionChanged }
func (ViewDoubleClicked) Type() Type    { return TypeViewDoubleClicked }
func (ViewMoved) Type() Type            { return TypeViewMoved }
func (NodeResized) Type() Type          { return TypeNodeResized }
func (EdgeModified) Type() Type         { return TypeEdgeModified }
func (EdgeReconnected) Type() Type      { return TypeEdgeReconnected }
func (ContainerViewChanged) Type() Type { return TypeContainerViewChanged }
func (ParasiticViewMoved) Type() Type   { return TypeParasiticViewMoved }
func (Scroll) Type() Type               { return TypeScroll }
func (Zoom) Type() Type                 { return TypeZoom }

// Mutates reports whether applying ev changes the diagram model.
func Mutates(ev Event) bool {
	switch ev.(type) {
	case SelectionChanged, ViewDoubleClicked, Scroll, Zoom:
		return false
	}
	return true
}

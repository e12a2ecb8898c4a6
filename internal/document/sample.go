package document

import (
	"math"

	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/typeid"
)

// NewEmptyDiagram creates a blank canvas.
func NewEmptyDiagram(id, name string, width, height float64) *Diagram {
	return &Diagram{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: height,
		Views:  map[string]*ViewNode{},
		Root:   []string{},
	}
}

// NewSampleDiagram builds a small class diagram: a package holding one
// class, a second class and a note at top level, an association between the
// classes and a label on the association.
func NewSampleDiagram(id string) *Diagram {
	d := NewEmptyDiagram(id, "Untitled", 1280, 720)

	pkgID := typeid.NewViewID()
	orderID := typeid.NewViewID()
	customerID := typeid.NewViewID()
	noteID := typeid.NewViewID()
	assocID := typeid.NewViewID()
	labelID := typeid.NewViewID()

	d.Views[pkgID] = &ViewNode{
		ID:        pkgID,
		Kind:      ViewKindNode,
		Name:      "sales",
		Category:  "package",
		Children:  []string{orderID},
		Bounds:    geom.R(40, 40, 360, 320),
		MinWidth:  120,
		MinHeight: 80,
		Container: true,
		Accepts:   []string{"class", "package"},
	}
	d.Views[orderID] = &ViewNode{
		ID:        orderID,
		Kind:      ViewKindNode,
		Name:      "Order",
		Category:  "class",
		Parent:    pkgID,
		Bounds:    geom.R(80, 96, 224, 176),
		MinWidth:  64,
		MinHeight: 40,
	}
	d.Views[customerID] = &ViewNode{
		ID:        customerID,
		Kind:      ViewKindNode,
		Name:      "Customer",
		Category:  "class",
		Bounds:    geom.R(480, 96, 624, 176),
		MinWidth:  64,
		MinHeight: 40,
	}
	d.Views[noteID] = &ViewNode{
		ID:        noteID,
		Kind:      ViewKindNode,
		Name:      "note",
		Category:  "note",
		Sizable:   "ratio",
		Bounds:    geom.R(480, 240, 600, 300),
		MinWidth:  40,
		MinHeight: 20,
	}
	d.Views[assocID] = &ViewNode{
		ID:        assocID,
		Kind:      ViewKindEdge,
		Name:      "places",
		Category:  "association",
		Sizable:   "none",
		Points:    geom.Points{{X: 224, Y: 136}, {X: 480, Y: 136}},
		LineStyle: "rectilinear",
		Tail:      orderID,
		Head:      customerID,
		Connects:  []string{"class"},
	}
	d.Views[labelID] = &ViewNode{
		ID:       labelID,
		Kind:     ViewKindLabel,
		Name:     "places",
		Sizable:  "none",
		Host:     assocID,
		Position: "middle",
		Angle:    -math.Pi / 2,
		Distance: 16,
		Size:     Size{Width: 56, Height: 16},
	}
	d.Root = []string{pkgID, customerID, noteID, assocID, labelID}
	return d
}

package engine

import (
	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/style"
	"github.com/inamate/diagrammer/internal/view"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string                `json:"op"`                    // "path" or "text"
	ObjectID    string                `json:"objectId,omitempty"`    // For hit correlation
	Transform   []float64             `json:"transform,omitempty"`   // [a, b, c, d, e, f] model to device
	Path        []overlay.PathCommand `json:"path,omitempty"`        // Model-space path data
	Fill        string                `json:"fill,omitempty"`        // Fill color
	Stroke      string                `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64               `json:"strokeWidth,omitempty"` // Stroke width in model units
	Text        string                `json:"text,omitempty"`        // For "text" ops
	X           float64               `json:"x,omitempty"`
	Y           float64               `json:"y,omitempty"`
}

const handleSize = 6 // device pixels

// CompileDrawCommands generates a draw command buffer from a diagram.
// Commands are in painter's order (back to front).
func CompileDrawCommands(d *document.Diagram, sheet *style.Sheet, m geom.Matrix2D) []DrawCommand {
	if d == nil {
		return nil
	}
	tr := m.ToSlice()
	var commands []DrawCommand
	for _, id := range d.Root {
		compileView(d, sheet, id, tr, &commands)
	}
	return commands
}

// compileView emits a view and then its children.
func compileView(d *document.Diagram, sheet *style.Sheet, id string, tr []float64, commands *[]DrawCommand) {
	n := d.Node(id)
	if n == nil {
		return
	}
	v := d.View(id)

	st := sheet.For(n.Category)

	switch n.Kind {
	case document.ViewKindNode:
		r := v.BoundingBox()
		*commands = append(*commands, DrawCommand{
			Op:          "path",
			ObjectID:    id,
			Transform:   tr,
			Path:        rectPath(r),
			Fill:        st.Fill,
			Stroke:      st.Stroke,
			StrokeWidth: 1,
		})
		if n.Name != "" {
			*commands = append(*commands, DrawCommand{
				Op:        "text",
				ObjectID:  id,
				Transform: tr,
				Text:      n.Name,
				X:         r.Center().X,
				Y:         r.Y1 + 14,
			})
		}
	case document.ViewKindEdge:
		*commands = append(*commands, DrawCommand{
			Op:          "path",
			ObjectID:    id,
			Transform:   tr,
			Path:        polylinePath(n.Points),
			Stroke:      st.Stroke,
			StrokeWidth: 1,
		})
	case document.ViewKindLabel:
		c := v.BoundingBox().Center()
		*commands = append(*commands, DrawCommand{
			Op:        "text",
			ObjectID:  id,
			Transform: tr,
			Text:      n.Name,
			X:         c.X,
			Y:         c.Y,
		})
	}

	for _, child := range n.Children {
		compileView(d, sheet, child, tr, commands)
	}
}

// SelectionCommands outlines the selected views and marks their handles.
// Handles keep their device size at any zoom.
func SelectionCommands(selected []view.View, t geom.Transform, pixelRatio float64, color string) []DrawCommand {
	tr := t.DeviceMatrix(pixelRatio).ToSlice()
	half := t.ToModel(handleSize) / 2
	var commands []DrawCommand
	for _, v := range selected {
		var handles geom.Points
		if e, ok := v.(view.Edge); ok {
			handles = e.Points()
		} else {
			r := v.BoundingBox()
			commands = append(commands, DrawCommand{
				Op:          "path",
				ObjectID:    v.ID(),
				Transform:   tr,
				Path:        rectPath(r),
				Stroke:      color,
				StrokeWidth: t.ToModel(1),
			})
			handles = handlePoints(r, v.Sizable())
		}
		for _, p := range handles {
			commands = append(commands, DrawCommand{
				Op:        "path",
				ObjectID:  v.ID(),
				Transform: tr,
				Path:      rectPath(geom.R(p.X-half, p.Y-half, p.X+half, p.Y+half)),
				Fill:      color,
			})
		}
	}
	return commands
}

// handlePoints lists where resize handles sit for a sizing mode.
func handlePoints(r geom.Rect, mode view.SizableMode) geom.Points {
	corners := geom.Points{{X: r.X1, Y: r.Y1}, {X: r.X2, Y: r.Y1}, {X: r.X1, Y: r.Y2}, {X: r.X2, Y: r.Y2}}
	c := r.Center()
	switch mode {
	case view.SizableFree:
		return append(corners, geom.Points{{X: c.X, Y: r.Y1}, {X: c.X, Y: r.Y2}, {X: r.X1, Y: c.Y}, {X: r.X2, Y: c.Y}}...)
	case view.SizableRatio:
		return corners
	case view.SizableHorizontal:
		return geom.Points{{X: r.X1, Y: c.Y}, {X: r.X2, Y: c.Y}}
	case view.SizableVertical:
		return geom.Points{{X: c.X, Y: r.Y1}, {X: c.X, Y: r.Y2}}
	}
	return nil
}

func rectPath(r geom.Rect) []overlay.PathCommand {
	return []overlay.PathCommand{
		{"M", r.X1, r.Y1},
		{"L", r.X2, r.Y1},
		{"L", r.X2, r.Y2},
		{"L", r.X1, r.Y2},
		{"Z"},
	}
}

func polylinePath(pts geom.Points) []overlay.PathCommand {
	path := make([]overlay.PathCommand, 0, len(pts))
	for i, p := range pts {
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, overlay.PathCommand{op, p.X, p.Y})
	}
	return path
}

package handler

import (
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/hover"
	"github.com/inamate/diagrammer/internal/manip"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
)

// Shape is what a CreateHandler drags out.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeLine
	ShapePoint
)

var shapeNames = [...]string{"rect", "line", "point"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// ParseShape parses a shape name.
func ParseShape(s string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == s {
			return Shape(i), true
		}
	}
	return 0, false
}

// Creation is the grid-snapped model geometry a user dragged out.
type Creation struct {
	Shape  Shape
	Rect   geom.Rect
	Points geom.Points
}

// CreateHandler drags out the skeleton of a new shape and hands its
// geometry to a callback. Creating the shape is up to the callback.
type CreateHandler struct {
	shape    Shape
	onCreate func(Creation)

	env    *manip.Env
	start  geom.Point
	active bool
}

var _ Handler = (*CreateHandler)(nil)

func NewCreate(shape Shape, onCreate func(Creation)) *CreateHandler {
	return &CreateHandler{shape: shape, onCreate: onCreate}
}

// Shape returns the shape being created.
func (h *CreateHandler) Shape() Shape {
	return h.shape
}

func (h *CreateHandler) Active() bool {
	return h.active
}

func (h *CreateHandler) PointerDown(env *manip.Env, e pointer.Event) {
	if h.active || e.Button != pointer.ButtonLeft {
		return
	}
	h.env = env
	h.start = env.Transform.ReverseSnapped(e.Device)
	h.active = true
}

func (h *CreateHandler) PointerDrag(e pointer.Event) {
	if !h.active {
		return
	}
	c := h.creation(e)
	h.env.Canvas.Clear(overlay.LayerSkeleton)
	switch h.shape {
	case ShapeRect:
		h.env.Canvas.StrokeRect(overlay.LayerSkeleton, c.Rect)
	case ShapeLine:
		h.env.Canvas.StrokePolyline(overlay.LayerSkeleton, c.Points)
	}
}

func (h *CreateHandler) creation(e pointer.Event) Creation {
	end := h.env.Transform.ReverseSnapped(e.Device)
	c := Creation{Shape: h.shape}
	switch h.shape {
	case ShapeRect:
		c.Rect = geom.RectFromPoints(h.start, end)
	case ShapeLine:
		c.Points = geom.Points{h.start, end}
		c.Rect = c.Points.Bounds()
	default:
		c.Points = geom.Points{h.start}
		c.Rect = geom.RectFromPoints(h.start, h.start)
	}
	return c
}

func (h *CreateHandler) PointerUp(e pointer.Event) {
	if !h.active {
		return
	}
	c := h.creation(e)
	h.env.Canvas.Clear(overlay.LayerSkeleton)
	h.active = false
	if h.onCreate != nil {
		h.onCreate(c)
	}
}

func (h *CreateHandler) Cancel() {
	if h.active {
		h.env.Canvas.Clear(overlay.LayerSkeleton)
	}
	h.active = false
}

func (h *CreateHandler) Hover(*manip.Env, pointer.Event) hover.Cursor {
	return hover.CursorCrosshair
}

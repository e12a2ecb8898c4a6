package manip

import (
	"math"

	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/view"
)

// Handle is the grab zone of a selected node.
type Handle int

const (
	HandleNone Handle = iota
	HandleArea
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTop
	HandleBottom
	HandleLeft
	HandleRight
)

var handleNames = [...]string{"none", "area", "top-left", "top-right", "bottom-left", "bottom-right", "top", "bottom", "left", "right"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "unknown"
	}
	return handleNames[h]
}

// IsResize reports whether h is a resize handle.
func (h Handle) IsResize() bool {
	return h >= HandleTopLeft
}

func (h Handle) movesLeft() bool {
	return h == HandleTopLeft || h == HandleBottomLeft || h == HandleLeft
}

func (h Handle) movesRight() bool {
	return h == HandleTopRight || h == HandleBottomRight || h == HandleRight
}

func (h Handle) movesTop() bool {
	return h == HandleTopLeft || h == HandleTopRight || h == HandleTop
}

func (h Handle) movesBottom() bool {
	return h == HandleBottomLeft || h == HandleBottomRight || h == HandleBottom
}

// HitHandle resolves which handle of the screen-space rect r lies under p.
// Corners win over mid-edge handles, vertical mids over horizontal ones,
// and only handles allowed by mode are considered.
func HitHandle(r geom.Rect, p geom.Point, mode view.SizableMode, tol float64) Handle {
	r = r.Normalize()
	near := func(x, y float64) bool {
		return math.Abs(p.X-x) <= tol && math.Abs(p.Y-y) <= tol
	}
	if mode.Corners() {
		switch {
		case near(r.X1, r.Y1):
			return HandleTopLeft
		case near(r.X2, r.Y1):
			return HandleTopRight
		case near(r.X1, r.Y2):
			return HandleBottomLeft
		case near(r.X2, r.Y2):
			return HandleBottomRight
		}
	}
	c := r.Center()
	if mode.Vertical() {
		switch {
		case near(c.X, r.Y1):
			return HandleTop
		case near(c.X, r.Y2):
			return HandleBottom
		}
	}
	if mode.Horizontal() {
		switch {
		case near(r.X1, c.Y):
			return HandleLeft
		case near(r.X2, c.Y):
			return HandleRight
		}
	}
	if r.Contains(p) {
		return HandleArea
	}
	return HandleNone
}

package editor

import (
	"math"

	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
)

// WheelEvent carries the fields of a DOM WheelEvent the editor reads.
type WheelEvent struct {
	DeltaX  float64 `json:"deltaX"`
	DeltaY  float64 `json:"deltaY"`
	CtrlKey bool    `json:"ctrlKey"`
	MetaKey bool    `json:"metaKey"`
}

// Wheel zooms by one step with ctrl (or meta) held and scrolls otherwise.
// It is ignored during a gesture.
func (ed *Editor) Wheel(ev WheelEvent) {
	if ed.Busy() {
		return
	}
	if ev.CtrlKey || ev.MetaKey {
		switch {
		case ev.DeltaY < 0:
			ed.ZoomIn()
		case ev.DeltaY > 0:
			ed.ZoomOut()
		}
		return
	}
	z := ed.transform.Zoom.Value()
	ed.scrollTo(ed.transform.Origin.Sub(geom.Pt(ev.DeltaX/z, ev.DeltaY/z)))
}

// SetOrigin scrolls to origin, clamped to the permitted region.
func (ed *Editor) SetOrigin(origin geom.Point) {
	if ed.Busy() {
		return
	}
	ed.scrollTo(origin)
}

func (ed *Editor) scrollTo(origin geom.Point) {
	next := ed.clampOrigin(origin)
	d := next.Sub(ed.transform.Origin)
	if d.X == 0 && d.Y == 0 {
		return
	}
	ed.transform.Origin = next
	ed.overlay.SetTransform(ed.transform)
	ed.sink.Emit(event.Scroll{DX: d.X, DY: d.Y})
}

// clampOrigin keeps the origin at or below zero and, on a bounded axis, no
// further than the far edge of the region.
func (ed *Editor) clampOrigin(o geom.Point) geom.Point {
	o.X = math.Min(o.X, 0)
	o.Y = math.Min(o.Y, 0)
	if ed.opts.Width > 0 {
		o.X = math.Max(o.X, -ed.opts.Width)
	}
	if ed.opts.Height > 0 {
		o.Y = math.Max(o.Y, -ed.opts.Height)
	}
	return o
}

// Zoom returns the current scale.
func (ed *Editor) Zoom() float64 {
	return ed.transform.Zoom.Value()
}

// SetZoom sets the scale, clamped to the configured bounds, and reports
// whether it changed.
func (ed *Editor) SetZoom(scale float64) bool {
	if ed.Busy() || math.IsNaN(scale) {
		return false
	}
	scale = math.Max(ed.opts.ZoomMin, math.Min(ed.opts.ZoomMax, scale))
	z := geom.ZoomFromScale(scale)
	if z.Value() == ed.transform.Zoom.Value() {
		return false
	}
	ed.transform.Zoom = z
	ed.overlay.SetTransform(ed.transform)
	ed.logger.Debug("zoom changed", "scale", z.Value())
	ed.sink.Emit(event.Zoom{Scale: z.Value()})
	return true
}

func (ed *Editor) ZoomIn() bool {
	return ed.SetZoom(ed.Zoom() + ed.opts.ZoomStep)
}

func (ed *Editor) ZoomOut() bool {
	return ed.SetZoom(ed.Zoom() - ed.opts.ZoomStep)
}

// SetGrid changes the grid cell size; 1 or less disables snapping.
func (ed *Editor) SetGrid(size float64) bool {
	if ed.Busy() {
		return false
	}
	size = math.Max(size, 1)
	ed.opts.GridSize = size
	ed.transform.Grid = geom.GridFactor{Width: size, Height: size}
	return true
}

// SetPixelRatio follows window.devicePixelRatio.
func (ed *Editor) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		return
	}
	ed.opts.PixelRatio = ratio
	ed.overlay.SetPixelRatio(ratio)
}

package geom

import "math"

// ZoomFactor is a rational scale applied uniformly to both axes.
type ZoomFactor struct {
	Numer float64 `json:"numer"`
	Denom float64 `json:"denom"`
}

// DefaultZoom is the 1:1 zoom.
var DefaultZoom = ZoomFactor{Numer: 1, Denom: 1}

// ZoomFromScale expresses scale as a percentage ratio.
func ZoomFromScale(scale float64) ZoomFactor {
	return ZoomFactor{Numer: math.Round(scale * 100), Denom: 100}
}

// Value returns numer/denom, treating a zero factor as 1.
func (z ZoomFactor) Value() float64 {
	if z.Numer <= 0 || z.Denom <= 0 {
		return 1
	}
	return z.Numer / z.Denom
}

// GridFactor is the snapping cell size. (1,1) disables snapping.
type GridFactor struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NoGrid is the identity grid.
var NoGrid = GridFactor{Width: 1, Height: 1}

// Active reports whether either axis snaps to a cell larger than 1.
func (g GridFactor) Active() bool {
	return g.Width > 1 || g.Height > 1
}

// SnapX truncates x toward the lower grid line.
func (g GridFactor) SnapX(x float64) float64 {
	return snap(x, g.Width)
}

// SnapY truncates y toward the lower grid line.
func (g GridFactor) SnapY(y float64) float64 {
	return snap(y, g.Height)
}

// Snap truncates both coordinates toward the lower grid lines.
func (g GridFactor) Snap(p Point) Point {
	return Point{X: g.SnapX(p.X), Y: g.SnapY(p.Y)}
}

func snap(v, cell float64) float64 {
	if cell <= 1 {
		return v
	}
	return math.Floor(v/cell+Epsilon) * cell
}

// Transform maps between model space and device space. Origin is the
// scroll offset and is never positive.
type Transform struct {
	Origin Point      `json:"origin"`
	Zoom   ZoomFactor `json:"zoom"`
	Grid   GridFactor `json:"grid"`
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Zoom: DefaultZoom, Grid: NoGrid}
}

// Forward maps a model point to device space: offset by origin, then scale.
func (t Transform) Forward(p Point) Point {
	z := t.Zoom.Value()
	return Point{X: (p.X + t.Origin.X) * z, Y: (p.Y + t.Origin.Y) * z}
}

// Reverse maps a device point back to model space.
func (t Transform) Reverse(p Point) Point {
	z := t.Zoom.Value()
	return Point{X: p.X/z - t.Origin.X, Y: p.Y/z - t.Origin.Y}
}

// ReverseSnapped maps a device point to model space and snaps it to the grid.
func (t Transform) ReverseSnapped(p Point) Point {
	return t.Grid.Snap(t.Reverse(p))
}

// ForwardRect maps a model rect to device space.
func (t Transform) ForwardRect(r Rect) Rect {
	a, b := t.Forward(Point{X: r.X1, Y: r.Y1}), t.Forward(Point{X: r.X2, Y: r.Y2})
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// ReverseRect maps a device rect to model space.
func (t Transform) ReverseRect(r Rect) Rect {
	a, b := t.Reverse(Point{X: r.X1, Y: r.Y1}), t.Reverse(Point{X: r.X2, Y: r.Y2})
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// ToModel converts a device-space length to model units.
func (t Transform) ToModel(length float64) float64 {
	return length / t.Zoom.Value()
}

// Matrix returns the forward transform as an affine matrix.
func (t Transform) Matrix() Matrix2D {
	z := t.Zoom.Value()
	return Scale(z, z).Multiply(Translate(t.Origin.X, t.Origin.Y))
}

// DeviceMatrix is Matrix scaled by the device pixel ratio for high-DPI
// backing stores.
func (t Transform) DeviceMatrix(pixelRatio float64) Matrix2D {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return Scale(pixelRatio, pixelRatio).Multiply(t.Matrix())
}

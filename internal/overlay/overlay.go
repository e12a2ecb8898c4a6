// Package overlay records the transient feedback drawn during a gesture
// (skeletons, rubberbands, container highlights) as Canvas2D draw commands.
// The frontend strokes the commands above the rendered diagram and the
// editor clears a layer before redrawing it.
package overlay

import (
	"encoding/json"

	"github.com/inamate/diagrammer/internal/geom"
)

// Layer names a group of commands that is cleared and redrawn together.
type Layer string

const (
	LayerHighlight  Layer = "highlight"
	LayerSkeleton   Layer = "skeleton"
	LayerRubberband Layer = "rubberband"
)

// paintOrder lists layers back to front.
var paintOrder = []Layer{LayerHighlight, LayerSkeleton, LayerRubberband}

// Canvas is what manipulators and handlers draw feedback on. Geometry is
// given in model space.
type Canvas interface {
	StrokeRect(layer Layer, r geom.Rect)
	StrokePolyline(layer Layer, pts geom.Points)
	Clear(layer Layer)
}

// DrawCommand represents a single drawing operation for the frontend to execute.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "path"
	Layer       Layer         `json:"layer"`                 // owning layer
	Path        []PathCommand `json:"path,omitempty"`        // device-pixel path data
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width in device pixels
	Dash        []float64     `json:"dash,omitempty"`        // setLineDash pattern
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []interface{}

// Style is the paint used for one layer.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
}

var defaultStyles = map[Layer]Style{
	LayerHighlight:  {Fill: "rgba(66,133,244,0.12)", Stroke: "#4285f4", StrokeWidth: 2},
	LayerSkeleton:   {Stroke: "#202020", StrokeWidth: 1, Dash: []float64{4, 2}},
	LayerRubberband: {Fill: "rgba(32,32,32,0.05)", Stroke: "#606060", StrokeWidth: 1, Dash: []float64{2, 2}},
}

// Overlay is the recording Canvas. It is owned by one editor and, like the
// editor, used from a single goroutine.
type Overlay struct {
	transform  geom.Transform
	pixelRatio float64
	layers     map[Layer][]DrawCommand
}

// New creates an empty overlay for a backing store with the given device
// pixel ratio.
func New(pixelRatio float64) *Overlay {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return &Overlay{
		transform:  geom.NewTransform(),
		pixelRatio: pixelRatio,
		layers:     make(map[Layer][]DrawCommand),
	}
}

// SetTransform sets the model to screen mapping used for new commands.
func (o *Overlay) SetTransform(t geom.Transform) {
	o.transform = t
}

// SetPixelRatio changes the device pixel ratio used for new commands.
func (o *Overlay) SetPixelRatio(r float64) {
	if r > 0 {
		o.pixelRatio = r
	}
}

// StrokeRect outlines a model-space rect on layer.
func (o *Overlay) StrokeRect(layer Layer, r geom.Rect) {
	r = r.Normalize()
	o.StrokePolyline(layer, geom.Points{
		{X: r.X1, Y: r.Y1}, {X: r.X2, Y: r.Y1}, {X: r.X2, Y: r.Y2}, {X: r.X1, Y: r.Y2}, {X: r.X1, Y: r.Y1},
	})
}

// StrokePolyline strokes a model-space polyline on layer.
func (o *Overlay) StrokePolyline(layer Layer, pts geom.Points) {
	if len(pts) == 0 {
		return
	}
	m := o.transform.DeviceMatrix(o.pixelRatio)
	path := make([]PathCommand, 0, len(pts))
	for i, p := range pts {
		d := m.Apply(p)
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, d.X, d.Y})
	}
	style := defaultStyles[layer]
	o.layers[layer] = append(o.layers[layer], DrawCommand{
		Op:          "path",
		Layer:       layer,
		Path:        path,
		Fill:        style.Fill,
		Stroke:      style.Stroke,
		StrokeWidth: style.StrokeWidth * o.pixelRatio,
		Dash:        style.Dash,
	})
}

// Clear erases every command on layer.
func (o *Overlay) Clear(layer Layer) {
	delete(o.layers, layer)
}

// Reset erases all layers.
func (o *Overlay) Reset() {
	clear(o.layers)
}

// Empty reports whether nothing is drawn.
func (o *Overlay) Empty() bool {
	for _, cmds := range o.layers {
		if len(cmds) > 0 {
			return false
		}
	}
	return true
}

// Layer returns the commands currently on layer.
func (o *Overlay) Layer(layer Layer) []DrawCommand {
	return o.layers[layer]
}

// Commands returns all commands in painter's order (back to front).
func (o *Overlay) Commands() []DrawCommand {
	var commands []DrawCommand
	for _, l := range paintOrder {
		commands = append(commands, o.layers[l]...)
	}
	return commands
}

// JSON serializes Commands.
func (o *Overlay) JSON() (string, error) {
	return DrawCommandsToJSON(o.Commands())
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

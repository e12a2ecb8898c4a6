// Package editor is the entry point of the interaction core. It turns DOM
// pointer and wheel events into handler callbacks, owns the view transform
// and the overlay, and forwards committed edits to the context's sink.
package editor

import (
	"log/slog"
	"math"

	"github.com/inamate/diagrammer/internal/containment"
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/handler"
	"github.com/inamate/diagrammer/internal/hover"
	"github.com/inamate/diagrammer/internal/manip"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// Context is everything the editor needs from its host.
type Context struct {
	Layer   view.Layer
	Sink    event.Sink
	Logger  *slog.Logger
	Options Options
}

// Editor is single threaded: the host calls it from one event loop.
type Editor struct {
	layer  view.Layer
	sink   event.Sink
	logger *slog.Logger
	opts   Options

	transform   geom.Transform
	overlay     *overlay.Overlay
	containment *containment.Proxy

	selector *handler.SelectHandler
	handler  handler.Handler
	pressed  bool
	cursor   hover.Cursor
}

// New creates an editor at 100% zoom with the select handler active.
func New(ctx Context) *Editor {
	logger := ctx.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := ctx.Sink
	if sink == nil {
		sink = event.Discard
	}
	opts := ctx.Options.normalized()

	ed := &Editor{
		layer:     ctx.Layer,
		sink:      event.Logged(sink, logger),
		logger:    logger,
		opts:      opts,
		transform: geom.NewTransform(),
		overlay:   overlay.New(opts.PixelRatio),
		cursor:    hover.CursorDefault,
	}
	ed.transform.Grid = geom.GridFactor{Width: opts.GridSize, Height: opts.GridSize}
	ed.overlay.SetTransform(ed.transform)
	ed.containment = containment.New(ctx.Layer, ed.overlay, logger)
	ed.selector = handler.NewSelect(opts.Tolerance)
	ed.handler = ed.selector
	return ed
}

// SetLayer swaps the diagram, abandoning any gesture and the selection.
func (ed *Editor) SetLayer(layer view.Layer) {
	ed.Cancel()
	ed.layer = layer
	ed.containment = containment.New(layer, ed.overlay, ed.logger)
	ed.selector = handler.NewSelect(ed.opts.Tolerance)
	ed.handler = ed.selector
	ed.cursor = hover.CursorDefault
}

func (ed *Editor) env() *manip.Env {
	return &manip.Env{
		Transform:   ed.transform,
		Region:      ed.region(),
		Tolerance:   ed.opts.Tolerance,
		MinDrag:     ed.opts.MinDrag,
		Canvas:      ed.overlay,
		Layer:       ed.layer,
		Sink:        ed.sink,
		Containment: ed.containment,
		Logger:      ed.logger,
	}
}

// region is the permitted model region. An unset side is unbounded.
func (ed *Editor) region() geom.Rect {
	w, h := ed.opts.Width, ed.opts.Height
	if w <= 0 && h <= 0 {
		return geom.Rect{}
	}
	if w <= 0 {
		w = math.MaxFloat64 / 4
	}
	if h <= 0 {
		h = math.MaxFloat64 / 4
	}
	return geom.R(0, 0, w, h)
}

// --- Handlers ---

// UseSelectHandler returns to selecting and dragging views.
func (ed *Editor) UseSelectHandler() {
	ed.Cancel()
	ed.handler = ed.selector
}

// UseCreateHandler switches to dragging out new shapes. The selection is
// kept for when the select handler comes back.
func (ed *Editor) UseCreateHandler(shape handler.Shape, onCreate func(handler.Creation)) {
	ed.Cancel()
	ed.handler = handler.NewCreate(shape, onCreate)
}

// Handler returns the active handler.
func (ed *Editor) Handler() handler.Handler {
	return ed.handler
}

// --- Pointer input ---

// DOMEvent carries the fields of a DOM MouseEvent the editor reads.
type DOMEvent struct {
	OffsetX  float64 `json:"offsetX"`
	OffsetY  float64 `json:"offsetY"`
	Button   int     `json:"button"`
	Detail   int     `json:"detail"`
	ShiftKey bool    `json:"shiftKey"`
	CtrlKey  bool    `json:"ctrlKey"`
	AltKey   bool    `json:"altKey"`
	MetaKey  bool    `json:"metaKey"`
}

func (ed *Editor) translate(ev DOMEvent) pointer.Event {
	device := geom.Pt(ev.OffsetX, ev.OffsetY)
	clicks := ev.Detail
	if clicks < 1 {
		clicks = 1
	}
	return pointer.Event{
		Device:     device,
		Model:      ed.transform.Reverse(device),
		Button:     pointer.Button(ev.Button),
		ClickCount: clicks,
		Shift:      ev.ShiftKey,
		Ctrl:       ev.CtrlKey,
		Alt:        ev.AltKey,
		Meta:       ev.MetaKey,
	}
}

func (ed *Editor) PointerDown(ev DOMEvent) {
	if ed.pressed || ed.layer == nil {
		return
	}
	e := ed.translate(ev)
	if e.Button != pointer.ButtonLeft {
		return
	}
	ed.pressed = true
	ed.handler.PointerDown(ed.env(), e)
}

// PointerMove drags while a button is held and hovers otherwise.
func (ed *Editor) PointerMove(ev DOMEvent) {
	if ed.layer == nil {
		return
	}
	e := ed.translate(ev)
	if ed.pressed {
		ed.handler.PointerDrag(e)
		return
	}
	ed.cursor = ed.handler.Hover(ed.env(), e)
}

func (ed *Editor) PointerUp(ev DOMEvent) {
	if !ed.pressed {
		return
	}
	ed.pressed = false
	ed.handler.PointerUp(ed.translate(ev))
}

// Cancel abandons the running gesture, erasing its feedback without
// emitting anything.
func (ed *Editor) Cancel() {
	if ed.handler != nil && ed.handler.Active() {
		ed.logger.Debug("gesture cancelled")
		ed.handler.Cancel()
	}
	ed.pressed = false
	ed.overlay.Reset()
}

// Busy reports whether a gesture is running.
func (ed *Editor) Busy() bool {
	return ed.pressed || ed.handler.Active()
}

// --- Queries ---

func (ed *Editor) Transform() geom.Transform {
	return ed.transform
}

func (ed *Editor) Overlay() *overlay.Overlay {
	return ed.overlay
}

func (ed *Editor) Selection() []view.View {
	return ed.selector.Selection()
}

// Select replaces the selection programmatically.
func (ed *Editor) Select(views []view.View) {
	ed.selector.Select(ed.sink, views)
}

func (ed *Editor) Cursor() hover.Cursor {
	return ed.cursor
}

func (ed *Editor) Options() Options {
	return ed.opts
}

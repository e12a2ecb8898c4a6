// Package engine owns one diagram and the editor editing it. The WASM
// bridge drives it from the browser's event loop; every method must be
// called from that single goroutine.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/editor"
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/handler"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/style"
	"github.com/inamate/diagrammer/internal/typeid"
	"github.com/inamate/diagrammer/internal/view"
)

// Default size of a shape created with a click instead of a drag.
const (
	defaultShapeWidth  = 96
	defaultShapeHeight = 48
)

// NoticeResync asks the frontend to reload the diagram from the relay.
const NoticeResync event.Type = "document.resync"

// Notice tells the frontend about an event that did not edit the diagram.
type Notice struct {
	Type    event.Type `json:"type"`
	ViewIDs []string   `json:"viewIds,omitempty"`
	X       float64    `json:"x,omitempty"`
	Y       float64    `json:"y,omitempty"`
	Scale   float64    `json:"scale,omitempty"`
}

// Frame is everything the frontend paints for one animation frame.
type Frame struct {
	Commands  []DrawCommand         `json:"commands"`
	Selection []DrawCommand         `json:"selection"`
	Overlay   []overlay.DrawCommand `json:"overlay"`
	Cursor    string                `json:"cursor"`
}

type Engine struct {
	diagram *document.Diagram
	editor  *editor.Editor
	logger  *slog.Logger
	styles  *style.Sheet

	category  string // category given to created shapes
	clientSeq int64

	// Local edits not yet taken by the relay.
	pending []document.Operation
	// Remote edits held back until the current gesture ends.
	deferred []document.Operation
	notices []Notice
}

// NewEngine creates an engine editing an empty canvas.
func NewEngine(opts editor.Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{logger: logger, styles: style.Default()}
	e.diagram = document.NewEmptyDiagram(typeid.NewDiagramID(), "Untitled", opts.Width, opts.Height)
	e.editor = editor.New(editor.Context{
		Layer:   e.diagram,
		Sink:    event.SinkFunc(e.emit),
		Logger:  logger,
		Options: opts,
	})
	return e
}

// --- Commands (frontend → engine) ---

// LoadDocument replaces the diagram, for example with a relay doc.sync.
// Unsent local edits are dropped.
func (e *Engine) LoadDocument(jsonData string) error {
	d, err := document.Parse([]byte(jsonData))
	if err != nil {
		return err
	}
	e.setDiagram(d)
	return nil
}

// LoadSampleDocument loads the built-in sample diagram.
func (e *Engine) LoadSampleDocument(diagramID string) {
	e.setDiagram(document.NewSampleDiagram(diagramID))
}

func (e *Engine) setDiagram(d *document.Diagram) {
	d.HitTolerance = e.editor.Options().Tolerance
	e.diagram = d
	e.editor.SetLayer(d)
	e.pending = nil
	e.deferred = nil
	e.notices = nil
}

// LoadStyles replaces the style sheet with one read from TOML.
func (e *Engine) LoadStyles(tomlData string) error {
	s, err := style.Decode(strings.NewReader(tomlData))
	if err != nil {
		return err
	}
	e.styles = s
	return nil
}

func (e *Engine) PointerDown(ev editor.DOMEvent) { e.editor.PointerDown(ev) }
func (e *Engine) PointerMove(ev editor.DOMEvent) { e.editor.PointerMove(ev) }
func (e *Engine) Wheel(ev editor.WheelEvent)     { e.editor.Wheel(ev) }

func (e *Engine) PointerUp(ev editor.DOMEvent) {
	e.editor.PointerUp(ev)
	e.applyDeferred()
}

func (e *Engine) Cancel() {
	e.editor.Cancel()
	e.applyDeferred()
}

func (e *Engine) SetZoom(scale float64) bool { return e.editor.SetZoom(scale) }
func (e *Engine) ZoomIn() bool               { return e.editor.ZoomIn() }
func (e *Engine) ZoomOut() bool              { return e.editor.ZoomOut() }
func (e *Engine) SetGrid(size float64) bool  { return e.editor.SetGrid(size) }
func (e *Engine) SetPixelRatio(r float64)    { e.editor.SetPixelRatio(r) }

// UseSelect returns to selecting and dragging.
func (e *Engine) UseSelect() {
	e.editor.UseSelectHandler()
}

// UseCreate makes the next drag create a shape of the given category.
func (e *Engine) UseCreate(shape handler.Shape, category string) {
	e.category = category
	e.editor.UseCreateHandler(shape, e.create)
}

// SetSelection selects the views with the given ids; unknown ids are skipped.
func (e *Engine) SetSelection(ids []string) {
	views := make([]view.View, 0, len(ids))
	for _, id := range ids {
		if v := e.diagram.View(id); v != nil {
			views = append(views, v)
		}
	}
	e.editor.Select(views)
}

// ApplyRemote applies an operation another editor committed. During a
// gesture the operation is held and applied when the gesture ends, ahead
// of the gesture's own edit, which is the order the relay sequences them.
func (e *Engine) ApplyRemote(op document.Operation) error {
	if e.editor.Busy() {
		e.deferred = append(e.deferred, op)
		return nil
	}
	return e.applyRemote(op)
}

func (e *Engine) applyRemote(op document.Operation) error {
	if err := e.diagram.Apply(op); err != nil {
		return fmt.Errorf("apply remote %s: %w", op.ID, err)
	}
	return nil
}

// applyDeferred applies the held remote edits. One that fails leaves the
// diagram diverged from the relay, so the rest are dropped and the
// frontend is told to resync.
func (e *Engine) applyDeferred() {
	ops := e.deferred
	e.deferred = nil
	for _, op := range ops {
		if err := e.applyRemote(op); err != nil {
			e.logger.Warn("deferred remote edit failed", "error", err)
			e.notices = append(e.notices, Notice{Type: NoticeResync})
			return
		}
	}
}

// TakeOperations returns the local edits since the last call, oldest first.
func (e *Engine) TakeOperations() []document.Operation {
	ops := e.pending
	e.pending = nil
	return ops
}

// TakeNotices returns the notices since the last call.
func (e *Engine) TakeNotices() []Notice {
	n := e.notices
	e.notices = nil
	return n
}

// emit is the editor's sink: edits are applied to the diagram and queued
// for the relay, everything else becomes a notice.
func (e *Engine) emit(ev event.Event) {
	op, err := document.OperationFromEvent(ev)
	if errors.Is(err, document.ErrNotMutation) {
		e.notice(ev)
		return
	}
	if err != nil {
		e.logger.Error("convert event", "type", ev.Type(), "error", err)
		return
	}
	e.commit(op)
}

func (e *Engine) commit(op document.Operation) {
	e.applyDeferred()
	if err := e.diagram.Apply(op); err != nil {
		e.logger.Error("apply local edit", "op", op.Type, "error", err)
		return
	}
	e.clientSeq++
	op.ClientSeq = e.clientSeq
	e.pending = append(e.pending, op)
}

func (e *Engine) notice(ev event.Event) {
	n := Notice{Type: ev.Type()}
	switch ev := ev.(type) {
	case event.SelectionChanged:
		n.ViewIDs = view.IDs(ev.Views)
	case event.ViewDoubleClicked:
		n.ViewIDs = []string{ev.View.ID()}
		n.X, n.Y = ev.X, ev.Y
	case event.Scroll:
		n.X, n.Y = ev.DX, ev.DY
	case event.Zoom:
		n.Scale = ev.Scale
	}
	e.notices = append(e.notices, n)
}

// create turns a dragged-out shape into a view.create operation.
func (e *Engine) create(c handler.Creation) {
	n := &document.ViewNode{ID: typeid.NewViewID(), Category: e.category}
	switch c.Shape {
	case handler.ShapeLine:
		tail, head := e.nodeAt(c.Points.First()), e.nodeAt(c.Points.Last())
		if tail == nil || head == nil {
			e.logger.Debug("line not created: both ends must be on nodes")
			return
		}
		if c.Points.First().Equal(c.Points.Last(), geom.Epsilon) {
			return
		}
		n.Kind = document.ViewKindEdge
		n.Points = elbow(c.Points.First(), c.Points.Last())
		n.Tail, n.Head = tail.ID(), head.ID()
	default:
		r := c.Rect
		if r.Width() < 1 || r.Height() < 1 {
			p := c.Rect.Center()
			if c.Shape == handler.ShapeRect {
				p = geom.Pt(c.Rect.X1+defaultShapeWidth/2, c.Rect.Y1+defaultShapeHeight/2)
			}
			r = geom.R(p.X-defaultShapeWidth/2, p.Y-defaultShapeHeight/2, p.X+defaultShapeWidth/2, p.Y+defaultShapeHeight/2)
		}
		n.Kind = document.ViewKindNode
		n.Bounds = r
		n.Parent = e.containerFor(n)
	}

	e.commit(document.Operation{
		ID:        typeid.NewOpID(),
		Type:      document.OpViewCreate,
		Timestamp: time.Now().UnixMilli(),
		View:      n,
	})
}

// containerFor finds the topmost container under the new node's centre
// that accepts its category.
func (e *Engine) containerFor(n *document.ViewNode) string {
	var skip []view.View
	for {
		v := e.diagram.ViewAt(n.Bounds.Center(), skip...)
		if v == nil {
			return ""
		}
		c := e.diagram.Node(v.ID())
		if c.Kind == document.ViewKindNode && c.Container &&
			(len(c.Accepts) == 0 || slices.Contains(c.Accepts, n.Category)) {
			return c.ID
		}
		skip = append(skip, v)
	}
}

// nodeAt is ViewAt looking through edges and labels.
func (e *Engine) nodeAt(p geom.Point) view.View {
	var skip []view.View
	for {
		v := e.diagram.ViewAt(p, skip...)
		if v == nil || v.Kind() == view.KindNode {
			return v
		}
		skip = append(skip, v)
	}
}

// elbow joins two points with right angles, horizontal leg first.
func elbow(a, b geom.Point) geom.Points {
	if a.X == b.X || a.Y == b.Y {
		return geom.Points{a, b}
	}
	return geom.Points{a, {X: b.X, Y: a.Y}, b}
}

// --- Queries (frontend ← engine) ---

// Render returns the frame to paint.
func (e *Engine) Render() Frame {
	t := e.editor.Transform()
	ratio := e.editor.Options().PixelRatio
	return Frame{
		Commands:  CompileDrawCommands(e.diagram, e.styles, t.DeviceMatrix(ratio)),
		Selection: SelectionCommands(e.editor.Selection(), t, ratio, e.styles.Selection),
		Overlay:   e.editor.Overlay().Commands(),
		Cursor:    string(e.editor.Cursor()),
	}
}

// RenderJSON serializes Render.
func (e *Engine) RenderJSON() string {
	data, err := json.Marshal(e.Render())
	if err != nil {
		e.logger.Error("marshal frame", "error", err)
		return "{}"
	}
	return string(data)
}

// HitTest returns the id of the topmost view at a device point, or "".
func (e *Engine) HitTest(x, y float64) string {
	v := e.diagram.ViewAt(e.editor.Transform().Reverse(geom.Pt(x, y)))
	if v == nil {
		return ""
	}
	return v.ID()
}

// SelectionBounds returns the model box around the selection.
func (e *Engine) SelectionBounds() geom.Rect {
	var r geom.Rect
	for i, v := range e.editor.Selection() {
		if i == 0 {
			r = v.BoundingBox()
			continue
		}
		r = r.Union(v.BoundingBox())
	}
	return r
}

func (e *Engine) Selection() []string {
	return view.IDs(e.editor.Selection())
}

func (e *Engine) Document() *document.Diagram {
	return e.diagram
}

func (e *Engine) Editor() *editor.Editor {
	return e.editor
}

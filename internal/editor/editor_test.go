package editor

import (
	"testing"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/handler"
	"github.com/inamate/diagrammer/internal/hover"
)

func diagram() *document.Diagram {
	d := document.NewEmptyDiagram("dgm", "test", 800, 600)
	d.Views["n"] = &document.ViewNode{ID: "n", Kind: document.ViewKindNode, Bounds: geom.R(100, 100, 200, 150)}
	d.Root = []string{"n"}
	return d
}

func newEditor(t *testing.T, grid float64) (*Editor, *event.Recorder) {
	t.Helper()
	opts := DefaultOptions()
	opts.GridSize = grid
	opts.MinDrag = 0
	opts.Width, opts.Height = 800, 600
	rec := &event.Recorder{}
	return New(Context{Layer: diagram(), Sink: rec, Options: opts}), rec
}

func at(x, y float64) DOMEvent {
	return DOMEvent{OffsetX: x, OffsetY: y, Detail: 1}
}

func TestDragCommitsOneEvent(t *testing.T) {
	ed, rec := newEditor(t, 8)
	ed.PointerDown(at(150, 125))
	ed.PointerMove(at(170, 140))
	ed.PointerMove(at(190, 150))
	if ed.Overlay().Empty() {
		t.Fatal("no skeleton during drag")
	}
	ed.PointerUp(at(190, 150))

	moves := rec.OfType(event.TypeViewMoved)
	if len(moves) != 1 {
		t.Fatalf("got %d moves: %#v", len(moves), rec.Events)
	}
	mv := moves[0].(event.ViewMoved)
	// 140 and 125 fall to the grid lines at 136 and 120.
	if mv.DX != 36 || mv.DY != 20 {
		t.Errorf("moved by (%v,%v), want (36,20)", mv.DX, mv.DY)
	}
	if !ed.Overlay().Empty() {
		t.Error("overlay not erased")
	}
	if len(ed.Selection()) != 1 {
		t.Error("dragged view not selected")
	}
}

func TestPointerUsesZoomAndOrigin(t *testing.T) {
	ed, rec := newEditor(t, 1)
	ed.SetZoom(2)
	ed.SetOrigin(geom.Pt(-50, -50))
	rec.Reset()

	// Device (200,150) is model (100,75) at origin 0 and (150,125) at origin -50.
	ed.PointerDown(at(200, 150))
	ed.PointerUp(at(200, 150))
	sel := rec.OfType(event.TypeSelectionChanged)
	if len(sel) != 1 {
		t.Fatalf("got %#v, want a selection change", rec.Events)
	}
	if v := sel[0].(event.SelectionChanged).Views; len(v) != 1 || v[0].ID() != "n" {
		t.Errorf("selected %v", v)
	}
}

func TestHoverSetsCursor(t *testing.T) {
	ed, _ := newEditor(t, 1)
	ed.PointerMove(at(150, 125))
	if ed.Cursor() != hover.CursorPointer {
		t.Errorf("cursor = %s, want pointer", ed.Cursor())
	}
	ed.PointerDown(at(150, 125))
	ed.PointerUp(at(150, 125))
	ed.PointerMove(at(200, 150))
	if ed.Cursor() != hover.CursorNWSE {
		t.Errorf("cursor = %s, want nwse-resize", ed.Cursor())
	}
	ed.PointerMove(at(700, 500))
	if ed.Cursor() != hover.CursorDefault {
		t.Errorf("cursor = %s, want default", ed.Cursor())
	}
}

func TestCancelMidDrag(t *testing.T) {
	ed, rec := newEditor(t, 1)
	ed.PointerDown(at(150, 125))
	rec.Reset()
	ed.PointerMove(at(300, 300))
	ed.Cancel()
	ed.PointerUp(at(300, 300))
	if len(rec.Events) != 0 {
		t.Errorf("got %#v after cancel", rec.Events)
	}
	if !ed.Overlay().Empty() || ed.Busy() {
		t.Error("cancel left feedback or a gesture")
	}
}

func TestWheelScrolls(t *testing.T) {
	ed, rec := newEditor(t, 1)
	ed.Wheel(WheelEvent{DeltaY: 100})
	if got := ed.Transform().Origin; got != geom.Pt(0, -100) {
		t.Errorf("origin = %v", got)
	}
	sc, ok := rec.Last().(event.Scroll)
	if !ok || sc.DX != 0 || sc.DY != -100 {
		t.Errorf("last event = %#v", rec.Last())
	}

	rec.Reset()
	ed.Wheel(WheelEvent{DeltaY: -500, DeltaX: -10})
	if got := ed.Transform().Origin; got != geom.Pt(0, 0) {
		t.Errorf("origin = %v, want clamped to 0", got)
	}
	ed.Wheel(WheelEvent{DeltaY: -10})
	if n := len(rec.Events); n != 1 {
		t.Errorf("got %d scroll events, want 1", n)
	}

	ed.Wheel(WheelEvent{DeltaX: 5000})
	if got := ed.Transform().Origin.X; got != -800 {
		t.Errorf("origin x = %v, want -800", got)
	}
}

func TestWheelZooms(t *testing.T) {
	ed, rec := newEditor(t, 1)
	ed.Wheel(WheelEvent{DeltaY: -1, CtrlKey: true})
	z, ok := rec.Last().(event.Zoom)
	if !ok || z.Scale != 1.1 {
		t.Fatalf("last event = %#v, want zoom 1.1", rec.Last())
	}
	for i := 0; i < 100; i++ {
		ed.Wheel(WheelEvent{DeltaY: -1, CtrlKey: true})
	}
	if ed.Zoom() != 4 {
		t.Errorf("zoom = %v, want clamped to 4", ed.Zoom())
	}
	rec.Reset()
	if ed.ZoomIn() || len(rec.Events) != 0 {
		t.Error("zoom past the maximum reported a change")
	}
	if !ed.ZoomOut() || ed.Zoom() != 3.9 {
		t.Errorf("zoom out = %v, want 3.9", ed.Zoom())
	}
}

func TestViewportFrozenDuringGesture(t *testing.T) {
	ed, rec := newEditor(t, 1)
	ed.PointerDown(at(150, 125))
	rec.Reset()
	ed.Wheel(WheelEvent{DeltaY: 100})
	ed.Wheel(WheelEvent{DeltaY: -1, CtrlKey: true})
	if ed.SetGrid(16) || ed.SetZoom(2) {
		t.Error("viewport changed mid gesture")
	}
	if len(rec.Events) != 0 {
		t.Errorf("got %#v mid gesture", rec.Events)
	}
	ed.PointerUp(at(150, 125))
}

func TestCreateHandler(t *testing.T) {
	ed, rec := newEditor(t, 10)
	var got []handler.Creation
	ed.UseCreateHandler(handler.ShapeRect, func(c handler.Creation) { got = append(got, c) })
	ed.PointerDown(at(13, 17))
	ed.PointerMove(at(55, 48))
	ed.PointerUp(at(55, 48))
	if len(got) != 1 || !got[0].Rect.Equal(geom.R(10, 10, 50, 40), 1e-9) {
		t.Fatalf("creations = %+v", got)
	}
	if len(rec.Events) != 0 {
		t.Errorf("create emitted %#v", rec.Events)
	}
	ed.UseSelectHandler()
	if _, ok := ed.Handler().(*handler.SelectHandler); !ok {
		t.Error("select handler not restored")
	}
}

func TestSetLayerClearsSelection(t *testing.T) {
	ed, _ := newEditor(t, 1)
	ed.PointerDown(at(150, 125))
	ed.PointerUp(at(150, 125))
	ed.SetLayer(diagram())
	if len(ed.Selection()) != 0 {
		t.Error("selection survived a layer swap")
	}
}

func TestRightButtonIgnored(t *testing.T) {
	ed, rec := newEditor(t, 1)
	ev := at(150, 125)
	ev.Button = 2
	ed.PointerDown(ev)
	ed.PointerUp(ev)
	if len(rec.Events) != 0 || ed.Busy() {
		t.Errorf("right button produced %#v", rec.Events)
	}
}

func TestOptionsNormalized(t *testing.T) {
	d := DefaultOptions()
	tests := []struct {
		name             string
		in               Options
		zoomMin, zoomMax float64
	}{
		{"zero value", Options{}, d.ZoomMin, d.ZoomMax},
		{"max only", Options{ZoomMax: 2}, d.ZoomMin, 2},
		{"max below min", Options{ZoomMin: 3, ZoomMax: 2}, 3, 3},
		{"explicit range", Options{ZoomMin: 0.5, ZoomMax: 8}, 0.5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalized()
			if got.ZoomMin != tt.zoomMin || got.ZoomMax != tt.zoomMax {
				t.Errorf("zoom range = [%v, %v], want [%v, %v]", got.ZoomMin, got.ZoomMax, tt.zoomMin, tt.zoomMax)
			}
			if got.PixelRatio != 1 || got.GridSize < 1 || got.ZoomStep <= 0 {
				t.Errorf("normalized = %+v", got)
			}
		})
	}
}

package handler

import (
	"testing"

	"github.com/inamate/diagrammer/internal/containment"
	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/hover"
	"github.com/inamate/diagrammer/internal/manip"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// diagram: container x holding a and b, container y, and a top-level note.
func diagram() *document.Diagram {
	d := document.NewEmptyDiagram("dgm", "test", 800, 600)
	d.Views["x"] = &document.ViewNode{ID: "x", Kind: document.ViewKindNode, Category: "package",
		Bounds: geom.R(0, 0, 300, 300), Container: true, Children: []string{"a", "b"}}
	d.Views["a"] = &document.ViewNode{ID: "a", Kind: document.ViewKindNode, Category: "class", Parent: "x",
		Bounds: geom.R(50, 50, 150, 100)}
	d.Views["b"] = &document.ViewNode{ID: "b", Kind: document.ViewKindNode, Category: "class", Parent: "x",
		Bounds: geom.R(50, 150, 150, 200)}
	d.Views["y"] = &document.ViewNode{ID: "y", Kind: document.ViewKindNode, Category: "package",
		Bounds: geom.R(400, 300, 780, 580), Container: true}
	d.Views["note"] = &document.ViewNode{ID: "note", Kind: document.ViewKindNode, Category: "note",
		Bounds: geom.R(400, 50, 500, 100)}
	d.Root = []string{"x", "y", "note"}
	return d
}

type harness struct {
	d   *document.Diagram
	env *manip.Env
	rec *event.Recorder
	ov  *overlay.Overlay
}

func newHarness(t *testing.T, grid float64) *harness {
	t.Helper()
	d := diagram()
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}
	tr := geom.NewTransform()
	if grid > 1 {
		tr.Grid = geom.GridFactor{Width: grid, Height: grid}
	}
	ov := overlay.New(1)
	rec := &event.Recorder{}
	return &harness{d: d, rec: rec, ov: ov, env: &manip.Env{
		Transform:   tr,
		Region:      d.Bounds(),
		Tolerance:   3,
		Canvas:      ov,
		Layer:       d,
		Sink:        rec,
		Containment: containment.New(d, ov, nil),
	}}
}

func (h *harness) at(x, y float64) pointer.Event {
	return pointer.At(h.env.Transform, geom.Pt(x, y))
}

func (h *harness) click(hd Handler, e pointer.Event) {
	hd.PointerDown(h.env, e)
	hd.PointerUp(e)
}

func (h *harness) drag(hd Handler, from, to pointer.Event) {
	hd.PointerDown(h.env, from)
	hd.PointerDrag(to)
	hd.PointerUp(to)
}

func ids(views []view.View) []string { return view.IDs(views) }

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClickSelects(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)

	h.click(s, h.at(100, 75))
	if !equalIDs(ids(s.Selection()), "a") {
		t.Fatalf("selection = %v, want [a]", ids(s.Selection()))
	}
	if n := len(h.rec.OfType(event.TypeSelectionChanged)); n != 1 {
		t.Fatalf("got %d selection events, want 1", n)
	}

	h.click(s, h.at(100, 75))
	if n := len(h.rec.Events); n != 1 {
		t.Errorf("reselecting emitted %d events in total, want 1", n)
	}

	h.click(s, h.at(700, 100))
	if len(s.Selection()) != 0 {
		t.Errorf("click on empty canvas kept %v", ids(s.Selection()))
	}
	h.click(s, h.at(700, 100))
	if n := len(h.rec.OfType(event.TypeSelectionChanged)); n != 2 {
		t.Errorf("got %d selection events, want 2", n)
	}
}

func TestShiftClickToggles(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	h.click(s, h.at(100, 75))
	h.click(s, h.at(100, 175).WithShift())
	if !equalIDs(ids(s.Selection()), "a", "b") {
		t.Fatalf("selection = %v, want [a b]", ids(s.Selection()))
	}
	h.click(s, h.at(100, 75).WithShift())
	if !equalIDs(ids(s.Selection()), "b") {
		t.Fatalf("selection = %v, want [b]", ids(s.Selection()))
	}
	if h.rec.OfType(event.TypeViewMoved) != nil {
		t.Error("shift clicks moved views")
	}
}

func TestRubberband(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	s.PointerDown(h.env, h.at(350, 20))
	s.PointerDrag(h.at(550, 200))
	if len(h.ov.Layer(overlay.LayerRubberband)) != 1 {
		t.Fatal("no rubberband drawn")
	}
	s.PointerUp(h.at(550, 200))
	if !h.ov.Empty() {
		t.Error("rubberband left on the overlay")
	}
	if !equalIDs(ids(s.Selection()), "note") {
		t.Fatalf("selection = %v, want [note]", ids(s.Selection()))
	}

	h.drag(s, h.at(-10, -10).WithShift(), h.at(310, 310).WithShift())
	if !equalIDs(ids(s.Selection()), "note", "x") {
		t.Errorf("selection = %v, want [note x]", ids(s.Selection()))
	}
}

func TestDoubleClick(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	s.PointerDown(h.env, h.at(450, 75).WithClicks(2))
	s.PointerDrag(h.at(480, 95))
	s.PointerUp(h.at(480, 95))

	ev, ok := h.rec.Last().(event.ViewDoubleClicked)
	if !ok {
		t.Fatalf("last event %T, want ViewDoubleClicked", h.rec.Last())
	}
	if ev.View.ID() != "note" || ev.X != 450 || ev.Y != 75 {
		t.Errorf("got %s at (%v,%v)", ev.View.ID(), ev.X, ev.Y)
	}
	if s.Active() {
		t.Error("double click left a gesture running")
	}
}

func TestDragSingleView(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	h.drag(s, h.at(450, 75), h.at(470, 95))
	ev, ok := h.rec.Last().(event.ViewMoved)
	if !ok {
		t.Fatalf("last event %T, want ViewMoved", h.rec.Last())
	}
	if !equalIDs(ids(ev.Views), "note") || ev.DX != 20 || ev.DY != 20 {
		t.Errorf("got %v by (%v,%v)", ids(ev.Views), ev.DX, ev.DY)
	}
}

func TestResizeFromHandleOutsideOutline(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	h.click(s, h.at(450, 75))
	h.drag(s, h.at(502, 102), h.at(522, 122))
	ev, ok := h.rec.Last().(event.NodeResized)
	if !ok {
		t.Fatalf("last event %T, want NodeResized", h.rec.Last())
	}
	if ev.Right != 520 || ev.Bottom != 120 {
		t.Errorf("resized to right=%v bottom=%v", ev.Right, ev.Bottom)
	}
}

func TestGroupDragReparentsOnce(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	s.Select(h.rec, []view.View{h.d.View("a"), h.d.View("b")})
	h.rec.Reset()

	h.drag(s, h.at(100, 75), h.at(500, 375))
	if len(h.rec.Events) != 1 {
		t.Fatalf("got %d events, want 1: %#v", len(h.rec.Events), h.rec.Events)
	}
	ev, ok := h.rec.Events[0].(event.ContainerViewChanged)
	if !ok {
		t.Fatalf("got %T, want ContainerViewChanged", h.rec.Events[0])
	}
	if !equalIDs(ids(ev.Views), "a", "b") || ev.Container.ID() != "y" {
		t.Errorf("got %v into %s", ids(ev.Views), ev.Container.ID())
	}
}

func TestCancelEmitsNothing(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	s.PointerDown(h.env, h.at(450, 75))
	h.rec.Reset()
	s.PointerDrag(h.at(500, 200))
	s.Cancel()
	s.PointerUp(h.at(500, 200))
	if len(h.rec.Events) != 0 {
		t.Errorf("got %#v after cancel", h.rec.Events)
	}
	if !h.ov.Empty() || s.Active() {
		t.Error("cancel left feedback or a gesture")
	}
}

func TestSelectHover(t *testing.T) {
	h := newHarness(t, 0)
	s := NewSelect(3)
	if c := s.Hover(h.env, h.at(450, 75)); c != hover.CursorPointer {
		t.Errorf("hover over unselected = %s", c)
	}
	h.click(s, h.at(450, 75))
	if c := s.Hover(h.env, h.at(500, 100)); c != hover.CursorNWSE {
		t.Errorf("hover over corner = %s", c)
	}
}

func TestCreateRectSnaps(t *testing.T) {
	h := newHarness(t, 8)
	var got []Creation
	c := NewCreate(ShapeRect, func(cr Creation) { got = append(got, cr) })

	c.PointerDown(h.env, h.at(13, 21))
	c.PointerDrag(h.at(70, 50))
	if len(h.ov.Layer(overlay.LayerSkeleton)) != 1 {
		t.Fatal("no skeleton while creating")
	}
	c.PointerUp(h.at(70, 50))

	if len(got) != 1 {
		t.Fatalf("got %d creations", len(got))
	}
	if want := geom.R(8, 16, 64, 48); !got[0].Rect.Equal(want, 1e-9) {
		t.Errorf("rect = %v, want %v", got[0].Rect, want)
	}
	if !h.ov.Empty() || c.Active() {
		t.Error("create left feedback or a gesture")
	}
	if len(h.rec.Events) != 0 {
		t.Errorf("create emitted %#v", h.rec.Events)
	}
}

func TestCreateLineAndPoint(t *testing.T) {
	h := newHarness(t, 0)
	var got Creation
	line := NewCreate(ShapeLine, func(cr Creation) { got = cr })
	h.drag(line, h.at(10, 10), h.at(110, 60))
	if want := (geom.Points{{X: 10, Y: 10}, {X: 110, Y: 60}}); !got.Points.Equal(want) {
		t.Errorf("line points = %v", got.Points)
	}

	point := NewCreate(ShapePoint, func(cr Creation) { got = cr })
	h.drag(point, h.at(30, 40), h.at(90, 90))
	if len(got.Points) != 1 || got.Points[0] != geom.Pt(30, 40) || got.Shape != ShapePoint {
		t.Errorf("point creation = %+v", got)
	}
	if c := point.Hover(h.env, h.at(0, 0)); c != hover.CursorCrosshair {
		t.Errorf("create hover = %s", c)
	}
}

func TestCreateCancel(t *testing.T) {
	h := newHarness(t, 0)
	called := false
	c := NewCreate(ShapeRect, func(Creation) { called = true })
	c.PointerDown(h.env, h.at(10, 10))
	c.PointerDrag(h.at(50, 50))
	c.Cancel()
	c.PointerUp(h.at(50, 50))
	if called || !h.ov.Empty() {
		t.Error("cancelled creation still reported or drawn")
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range []Shape{ShapeRect, ShapeLine, ShapePoint} {
		got, ok := ParseShape(s.String())
		if !ok || got != s {
			t.Errorf("ParseShape(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseShape("hexagon"); ok {
		t.Error("parsed unknown shape")
	}
}

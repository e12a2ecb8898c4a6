package engine

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/editor"
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/handler"
	"github.com/inamate/diagrammer/internal/typeid"
)

func fixture() *document.Diagram {
	d := document.NewEmptyDiagram("dgm", "test", 800, 600)
	d.Views["pkg"] = &document.ViewNode{ID: "pkg", Kind: document.ViewKindNode, Category: "package",
		Bounds: geom.R(0, 0, 300, 300), Container: true, Accepts: []string{"class"}}
	d.Views["a"] = &document.ViewNode{ID: "a", Kind: document.ViewKindNode, Category: "class",
		Bounds: geom.R(400, 100, 500, 150)}
	d.Views["b"] = &document.ViewNode{ID: "b", Kind: document.ViewKindNode, Category: "class",
		Bounds: geom.R(400, 300, 500, 350)}
	d.Root = []string{"pkg", "a", "b"}
	return d
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	opts := editor.DefaultOptions()
	opts.GridSize = 1
	opts.MinDrag = 0
	opts.Width, opts.Height = 800, 600
	e := NewEngine(opts, nil)
	e.setDiagram(fixture())
	return e
}

func at(x, y float64) editor.DOMEvent {
	return editor.DOMEvent{OffsetX: x, OffsetY: y, Detail: 1}
}

func drag(e *Engine, x1, y1, x2, y2 float64) {
	e.PointerDown(at(x1, y1))
	e.PointerMove(at(x2, y2))
	e.PointerUp(at(x2, y2))
}

func TestDragQueuesOperation(t *testing.T) {
	e := newEngine(t)
	drag(e, 450, 125, 470, 145)

	ops := e.TakeOperations()
	if len(ops) != 1 {
		t.Fatalf("got %d operations", len(ops))
	}
	op := ops[0]
	if op.Type != document.OpViewMove || op.DX != 20 || op.DY != 20 || op.ClientSeq != 1 {
		t.Errorf("op = %+v", op)
	}
	if err := typeid.Validate(op.ID, typeid.PrefixOp); err != nil {
		t.Error(err)
	}
	if got := e.Document().Views["a"].Bounds; got != geom.R(420, 120, 520, 170) {
		t.Errorf("bounds = %v, want the move applied locally", got)
	}
	if len(e.TakeOperations()) != 0 {
		t.Error("operations not drained")
	}

	notices := e.TakeNotices()
	if len(notices) != 1 || notices[0].Type != event.TypeSelectionChanged || !slices.Equal(notices[0].ViewIDs, []string{"a"}) {
		t.Errorf("notices = %+v", notices)
	}
}

func TestCreateNode(t *testing.T) {
	tests := []struct {
		name     string
		category string
		from, to geom.Point
		parent   string
		bounds   geom.Rect
	}{
		{"into accepting container", "class", geom.Pt(20, 20), geom.Pt(120, 80), "pkg", geom.R(20, 20, 120, 80)},
		{"refused by container", "note", geom.Pt(20, 20), geom.Pt(60, 60), "", geom.R(20, 20, 60, 60)},
		{"on empty canvas", "class", geom.Pt(600, 400), geom.Pt(650, 450), "", geom.R(600, 400, 650, 450)},
		{"click uses default size", "class", geom.Pt(600, 400), geom.Pt(600, 400), "", geom.R(600, 400, 696, 448)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			e.UseCreate(handler.ShapeRect, tt.category)
			drag(e, tt.from.X, tt.from.Y, tt.to.X, tt.to.Y)

			ops := e.TakeOperations()
			if len(ops) != 1 || ops[0].Type != document.OpViewCreate {
				t.Fatalf("ops = %+v", ops)
			}
			n := e.Document().Views[ops[0].View.ID]
			if n == nil {
				t.Fatal("created view missing")
			}
			if n.Parent != tt.parent || n.Bounds != tt.bounds || n.Category != tt.category {
				t.Errorf("created %+v", n)
			}
			if err := e.Document().Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestCreateLine(t *testing.T) {
	e := newEngine(t)
	e.UseCreate(handler.ShapeLine, "association")

	drag(e, 450, 125, 450, 325)
	ops := e.TakeOperations()
	if len(ops) != 1 {
		t.Fatalf("ops = %+v", ops)
	}
	n := e.Document().Views[ops[0].View.ID]
	if n.Kind != document.ViewKindEdge || n.Tail != "a" || n.Head != "b" || len(n.Points) != 2 {
		t.Errorf("edge = %+v", n)
	}

	drag(e, 450, 125, 480, 325)
	ops = e.TakeOperations()
	if len(ops) != 1 || len(ops[0].View.Points) != 3 {
		t.Fatalf("diagonal line not bent: %+v", ops)
	}

	drag(e, 450, 125, 700, 500)
	if ops := e.TakeOperations(); len(ops) != 0 {
		t.Errorf("line to empty canvas created %+v", ops)
	}
}

func TestApplyRemote(t *testing.T) {
	e := newEngine(t)
	op := document.Operation{ID: typeid.NewOpID(), Type: document.OpViewMove, ViewIDs: []string{"b"}, DX: -10}
	if err := e.ApplyRemote(op); err != nil {
		t.Fatal(err)
	}
	if got := e.Document().Views["b"].Bounds; got != geom.R(390, 300, 490, 350) {
		t.Errorf("bounds = %v", got)
	}
	if len(e.TakeOperations()) != 0 {
		t.Error("remote edit queued for sending")
	}
	op.ViewIDs = []string{"ghost"}
	if err := e.ApplyRemote(op); err == nil {
		t.Error("remote edit on a missing view accepted")
	}
}

func TestApplyRemoteDuringDrag(t *testing.T) {
	e := newEngine(t)
	e.SetSelection([]string{"a"})
	e.PointerDown(at(500, 150))
	e.PointerMove(at(520, 170))

	moveA := document.Operation{ID: typeid.NewOpID(), Type: document.OpViewMove, ViewIDs: []string{"a"}, DX: -200}
	moveB := document.Operation{ID: typeid.NewOpID(), Type: document.OpViewMove, ViewIDs: []string{"b"}, DX: -10}
	for _, op := range []document.Operation{moveA, moveB} {
		if err := e.ApplyRemote(op); err != nil {
			t.Fatal(err)
		}
	}
	if got := e.Document().Views["a"].Bounds; got != geom.R(400, 100, 500, 150) {
		t.Errorf("diagram changed mid-drag: a = %v", got)
	}
	if got := e.Document().Views["b"].Bounds; got != geom.R(400, 300, 500, 350) {
		t.Errorf("diagram changed mid-drag: b = %v", got)
	}

	e.PointerUp(at(520, 170))
	ops := e.TakeOperations()
	if len(ops) != 1 || ops[0].Type != document.OpNodeResize {
		t.Fatalf("ops = %+v", ops)
	}

	// The relay sequences the remote edits before the resize.
	want := fixture()
	for _, op := range []document.Operation{moveA, moveB, ops[0]} {
		if err := want.Apply(op); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"a", "b"} {
		if got, w := e.Document().Views[id].Bounds, want.Views[id].Bounds; got != w {
			t.Errorf("%s = %v, relay has %v", id, got, w)
		}
	}
	if got := e.Document().Views["a"].Bounds; got != geom.R(400, 100, 520, 170) {
		t.Errorf("a = %v", got)
	}
}

func TestDeferredRemoteFailureAsksResync(t *testing.T) {
	e := newEngine(t)
	e.PointerDown(at(450, 125))
	e.PointerMove(at(460, 135))

	bad := document.Operation{ID: typeid.NewOpID(), Type: document.OpViewMove, ViewIDs: []string{"ghost"}}
	later := document.Operation{ID: typeid.NewOpID(), Type: document.OpViewMove, ViewIDs: []string{"b"}, DX: 5}
	for _, op := range []document.Operation{bad, later} {
		if err := e.ApplyRemote(op); err != nil {
			t.Fatal(err)
		}
	}
	e.Cancel()

	var resync bool
	for _, n := range e.TakeNotices() {
		resync = resync || n.Type == NoticeResync
	}
	if !resync {
		t.Error("no resync notice after a failed deferred edit")
	}
	if got := e.Document().Views["b"].Bounds; got != geom.R(400, 300, 500, 350) {
		t.Errorf("edit after the failure applied: b = %v", got)
	}
	if len(e.TakeOperations()) != 0 {
		t.Error("cancelled drag committed")
	}
}

func TestRender(t *testing.T) {
	e := newEngine(t)
	f := e.Render()
	var ids []string
	for _, c := range f.Commands {
		ids = append(ids, c.ObjectID)
	}
	if !slices.Equal(ids, []string{"pkg", "a", "b"}) {
		t.Errorf("paint order = %v", ids)
	}
	if len(f.Selection) != 0 || len(f.Overlay) != 0 || f.Cursor != "default" {
		t.Errorf("idle frame = %+v", f)
	}

	e.SetSelection([]string{"a", "missing"})
	f = e.Render()
	// Outline plus eight handles for a freely sizable node.
	if len(f.Selection) != 9 {
		t.Errorf("got %d selection commands", len(f.Selection))
	}

	var decoded Frame
	if err := json.Unmarshal([]byte(e.RenderJSON()), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Commands) != 3 {
		t.Errorf("decoded %d commands", len(decoded.Commands))
	}
}

func TestQueries(t *testing.T) {
	e := newEngine(t)
	if got := e.HitTest(450, 125); got != "a" {
		t.Errorf("HitTest = %q, want a", got)
	}
	if got := e.HitTest(700, 500); got != "" {
		t.Errorf("HitTest on empty canvas = %q", got)
	}
	e.SetZoom(2)
	if got := e.HitTest(900, 250); got != "a" {
		t.Errorf("zoomed HitTest = %q, want a", got)
	}

	e.SetSelection([]string{"a", "b"})
	if got := e.SelectionBounds(); got != geom.R(400, 100, 500, 350) {
		t.Errorf("SelectionBounds = %v", got)
	}
	if got := e.Selection(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Selection = %v", got)
	}

	var zooms int
	for _, n := range e.TakeNotices() {
		if n.Type == event.TypeZoom && n.Scale == 2 {
			zooms++
		}
	}
	if zooms != 1 {
		t.Error("zoom notice missing")
	}
}

func TestLoadDocument(t *testing.T) {
	e := newEngine(t)
	drag(e, 450, 125, 470, 145)
	if err := e.LoadDocument("{"); err == nil {
		t.Fatal("bad JSON accepted")
	}
	if len(e.TakeOperations()) != 1 {
		t.Error("failed load dropped pending edits")
	}

	drag(e, 470, 145, 490, 165)
	data, err := fixture().JSON()
	if err != nil {
		t.Fatal(err)
	}
	if err := e.LoadDocument(string(data)); err != nil {
		t.Fatal(err)
	}
	if len(e.TakeOperations()) != 0 || len(e.Selection()) != 0 {
		t.Error("load kept stale state")
	}
	if got := e.Document().Views["a"].Bounds; got != geom.R(400, 100, 500, 150) {
		t.Errorf("bounds = %v", got)
	}

	e.LoadSampleDocument("dgm_sample")
	if e.Document().ID != "dgm_sample" || len(e.Document().Root) == 0 {
		t.Error("sample not loaded")
	}
}

func TestLoadStyles(t *testing.T) {
	e := newEngine(t)
	if err := e.LoadStyles("[category.package]\nfill = \"#eeeeee\"\n"); err != nil {
		t.Fatal(err)
	}
	f := e.Render()
	if f.Commands[0].Fill != "#eeeeee" || f.Commands[0].Stroke != "#333333" {
		t.Errorf("package painted %s/%s", f.Commands[0].Fill, f.Commands[0].Stroke)
	}
	if err := e.LoadStyles(`selection = "blue"`); err == nil {
		t.Error("bad colour accepted")
	}
	e.SetSelection([]string{"a"})
	if got := e.Render().Selection[0].Stroke; got != "#4285f4" {
		t.Errorf("selection stroke = %s, previous sheet should stay", got)
	}
}

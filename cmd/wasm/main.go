//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/editor"
	"github.com/inamate/diagrammer/internal/engine"
	"github.com/inamate/diagrammer/internal/handler"
)

var eng *engine.Engine

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	eng = engine.NewEngine(editor.DefaultOptions(), logger)

	// Create the engine API object
	diagramEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	diagramEngine.Set("loadDocument", js.FuncOf(loadDocument))
	diagramEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	diagramEngine.Set("loadStyles", js.FuncOf(loadStyles))
	diagramEngine.Set("pointerDown", js.FuncOf(pointerDown))
	diagramEngine.Set("pointerMove", js.FuncOf(pointerMove))
	diagramEngine.Set("pointerUp", js.FuncOf(pointerUp))
	diagramEngine.Set("wheel", js.FuncOf(wheel))
	diagramEngine.Set("cancel", js.FuncOf(cancel))
	diagramEngine.Set("setZoom", js.FuncOf(setZoom))
	diagramEngine.Set("zoomIn", js.FuncOf(zoomIn))
	diagramEngine.Set("zoomOut", js.FuncOf(zoomOut))
	diagramEngine.Set("setGrid", js.FuncOf(setGrid))
	diagramEngine.Set("setPixelRatio", js.FuncOf(setPixelRatio))
	diagramEngine.Set("useSelect", js.FuncOf(useSelect))
	diagramEngine.Set("useCreate", js.FuncOf(useCreate))
	diagramEngine.Set("setSelection", js.FuncOf(setSelection))
	diagramEngine.Set("applyRemote", js.FuncOf(applyRemote))

	// --- Queries (frontend ← engine) ---
	diagramEngine.Set("render", js.FuncOf(render))
	diagramEngine.Set("hitTest", js.FuncOf(hitTest))
	diagramEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	diagramEngine.Set("getSelection", js.FuncOf(getSelection))
	diagramEngine.Set("getDocument", js.FuncOf(getDocument))
	diagramEngine.Set("takeOperations", js.FuncOf(takeOperations))
	diagramEngine.Set("takeNotices", js.FuncOf(takeNotices))

	// Register on global scope
	js.Global().Set("diagramEngine", diagramEngine)

	// Signal that WASM is ready
	js.Global().Set("diagramWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(err string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err})
}

func toJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing document JSON")
	}
	if err := eng.LoadDocument(args[0].String()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	diagramID := "dgm_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		diagramID = args[0].String()
	}
	eng.LoadSampleDocument(diagramID)
	return ok()
}

func loadStyles(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing style sheet")
	}
	if err := eng.LoadStyles(args[0].String()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

// domEvent reads the fields the editor needs off a MouseEvent.
func domEvent(v js.Value) editor.DOMEvent {
	return editor.DOMEvent{
		OffsetX:  v.Get("offsetX").Float(),
		OffsetY:  v.Get("offsetY").Float(),
		Button:   v.Get("button").Int(),
		Detail:   v.Get("detail").Int(),
		ShiftKey: v.Get("shiftKey").Bool(),
		CtrlKey:  v.Get("ctrlKey").Bool(),
		AltKey:   v.Get("altKey").Bool(),
		MetaKey:  v.Get("metaKey").Bool(),
	}
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.PointerDown(domEvent(args[0]))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.PointerMove(domEvent(args[0]))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.PointerUp(domEvent(args[0]))
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	v := args[0]
	eng.Wheel(editor.WheelEvent{
		DeltaX:  v.Get("deltaX").Float(),
		DeltaY:  v.Get("deltaY").Float(),
		CtrlKey: v.Get("ctrlKey").Bool(),
		MetaKey: v.Get("metaKey").Bool(),
	})
	return nil
}

func cancel(this js.Value, args []js.Value) interface{} {
	eng.Cancel()
	return nil
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.SetZoom(args[0].Float()))
}

func zoomIn(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ZoomIn())
}

func zoomOut(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ZoomOut())
}

func setGrid(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.SetGrid(args[0].Float()))
}

func setPixelRatio(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetPixelRatio(args[0].Float())
	return nil
}

func useSelect(this js.Value, args []js.Value) interface{} {
	eng.UseSelect()
	return nil
}

// useCreate(shape, category) where shape is "rect", "line" or "point".
func useCreate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing shape")
	}
	shape, found := handler.ParseShape(args[0].String())
	if !found {
		return fail("unknown shape " + args[0].String())
	}
	category := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		category = args[1].String()
	}
	eng.UseCreate(shape, category)
	return ok()
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

// applyRemote takes the operation JSON of an op.broadcast payload. An
// error, or a later document.resync notice for an edit held during a drag,
// means the local copy diverged and the frontend should resync.
func applyRemote(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing operation JSON")
	}
	var op document.Operation
	if err := json.Unmarshal([]byte(args[0].String()), &op); err != nil {
		return fail(err.Error())
	}
	if err := eng.ApplyRemote(op); err != nil {
		return fail(err.Error())
	}
	return ok()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.SelectionBounds())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.Selection())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	data, err := eng.Document().JSON()
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func takeOperations(this js.Value, args []js.Value) interface{} {
	ops := eng.TakeOperations()
	if ops == nil {
		ops = []document.Operation{}
	}
	return toJSON(ops)
}

func takeNotices(this js.Value, args []js.Value) interface{} {
	notices := eng.TakeNotices()
	if notices == nil {
		notices = []engine.Notice{}
	}
	return toJSON(notices)
}

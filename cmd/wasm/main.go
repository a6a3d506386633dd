//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/engine"
	"github.com/inamate/whiteboard/internal/geom"
	"github.com/inamate/whiteboard/internal/session"
)

var sess *session.Session

func main() {
	sess = session.New(document.NewSampleBoard(session.PlaygroundBoardID), session.Options{})

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	api.Set("loadBoard", js.FuncOf(loadBoard))
	api.Set("loadSampleBoard", js.FuncOf(loadSampleBoard))
	api.Set("pointer", js.FuncOf(pointer))
	api.Set("wheel", js.FuncOf(wheel))
	api.Set("zoomIn", js.FuncOf(zoomIn))
	api.Set("zoomOut", js.FuncOf(zoomOut))
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("setViewport", js.FuncOf(setViewport))
	api.Set("cancelArrow", js.FuncOf(cancelArrow))
	api.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← engine) ---
	api.Set("getBoard", js.FuncOf(getBoard))
	api.Set("getViewport", js.FuncOf(getViewport))
	api.Set("getArrowPreview", js.FuncOf(getArrowPreview))
	api.Set("getArrowState", js.FuncOf(getArrowState))
	api.Set("render", js.FuncOf(render))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))

	// --- Geometry helpers ---
	api.Set("screenToWorld", js.FuncOf(screenToWorld))
	api.Set("worldToScreen", js.FuncOf(worldToScreen))
	api.Set("zoomAtPoint", js.FuncOf(zoomAtPoint))
	api.Set("snap", js.FuncOf(snap))
	api.Set("resize", js.FuncOf(resize))
	api.Set("route", js.FuncOf(route))
	api.Set("computeMembers", js.FuncOf(computeMembers))

	js.Global().Set("whiteboardEngine", api)
	js.Global().Set("whiteboardWasmReady", js.ValueOf(true))

	select {}
}

func errorResult(msg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func jsonResult(v any) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(string(data))
}

// messages runs one protocol message through the session and returns the
// replies as a JSON array string.
func messages(typ string, payload string) interface{} {
	return jsonResult(sess.Handle(session.Message{Type: typ, Payload: json.RawMessage(payload)}))
}

func point(args []js.Value) geom.Point {
	return geom.Point{X: args[0].Float(), Y: args[1].Float()}
}

// --- Command Handlers ---

func loadBoard(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing board JSON")
	}
	var b document.Board
	if err := json.Unmarshal([]byte(args[0].String()), &b); err != nil {
		return errorResult(err.Error())
	}
	if err := b.Validate(); err != nil {
		return errorResult(err.Error())
	}
	sess = session.New(&b, session.Options{})
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleBoard(this js.Value, args []js.Value) interface{} {
	boardID := session.PlaygroundBoardID
	if len(args) > 0 && args[0].Type() == js.TypeString {
		boardID = args[0].String()
	}
	sess = session.New(document.NewSampleBoard(boardID), session.Options{})
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// pointer(eventJSON) where the event carries phase, x, y, target, handle and space.
func pointer(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing pointer event")
	}
	return messages(session.TypePointer, args[0].String())
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing wheel event")
	}
	return messages(session.TypeWheel, args[0].String())
}

func zoomIn(this js.Value, args []js.Value) interface{} {
	return messages(session.TypeZoom, `{"direction":"in"}`)
}

func zoomOut(this js.Value, args []js.Value) interface{} {
	return messages(session.TypeZoom, `{"direction":"out"}`)
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing tool")
	}
	if err := sess.Engine().SetTool(engine.Tool(args[0].String())); err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing viewport JSON")
	}
	var vp engine.Viewport
	if err := json.Unmarshal([]byte(args[0].String()), &vp); err != nil {
		return errorResult(err.Error())
	}
	sess.Engine().SetViewport(vp)
	return jsonResult(sess.Engine().Viewport())
}

func cancelArrow(this js.Value, args []js.Value) interface{} {
	sess.Engine().CancelArrow()
	return nil
}

func tick(this js.Value, args []js.Value) interface{} {
	return jsonResult(sess.Tick())
}

// --- Query Handlers ---

func getBoard(this js.Value, args []js.Value) interface{} {
	return jsonResult(sess.Store().Board())
}

func getViewport(this js.Value, args []js.Value) interface{} {
	return jsonResult(sess.Engine().Viewport())
}

func getArrowPreview(this js.Value, args []js.Value) interface{} {
	p, ok := sess.Engine().ArrowPreview()
	if !ok {
		return js.Null()
	}
	return jsonResult(map[string]any{
		"from":   p.From,
		"target": p.Target,
		"points": p.Points(),
	})
}

// getArrowState(id) returns "idle", "drawing" or "bound" for a stored arrow.
func getArrowState(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing arrow id")
	}
	w, ok := sess.Store().Board().Find(args[0].String())
	if !ok || !w.IsArrow() {
		return errorResult("arrow not found")
	}
	return js.ValueOf(engine.ArrowState(w.Arrow).String())
}

func render(this js.Value, args []js.Value) interface{} {
	return jsonResult(engine.CompileScene(sess.Store().Snapshot(), sess.Engine().Viewport()))
}

// hitTest(screenX, screenY) returns the topmost widget id or "".
func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(sess.Engine().HitTestScreen(point(args), sess.Store().Snapshot()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	var ids []string
	if err := json.Unmarshal([]byte(args[0].String()), &ids); err != nil {
		return errorResult(err.Error())
	}
	b, ok := engine.SelectionBounds(sess.Store().Snapshot(), ids)
	if !ok {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{
		"x":      b.X,
		"y":      b.Y,
		"width":  b.Width,
		"height": b.Height,
	})
}

// --- Geometry Handlers ---

func screenToWorld(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("expected x, y")
	}
	p := engine.ScreenToWorld(point(args), sess.Engine().Viewport())
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}

func worldToScreen(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("expected x, y")
	}
	p := engine.WorldToScreen(point(args), sess.Engine().Viewport())
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}

// zoomAtPoint(screenX, screenY, factor) zooms the session viewport around a
// canvas-relative point.
func zoomAtPoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("expected x, y, factor")
	}
	e := sess.Engine()
	e.SetViewport(engine.ZoomAtPoint(e.Viewport(), point(args), geom.Point{}, args[2].Float()))
	return jsonResult(e.Viewport())
}

// snap(value[, spacing]) uses the spacing of the current zoom level when none
// is given.
func snap(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	spacing := sess.Engine().Spacing()
	if len(args) > 1 {
		spacing = args[1].Float()
	}
	return js.ValueOf(engine.Snap(args[0].Float(), spacing))
}

// resize(requestJSON) with direction, start, current and bounds; the scale
// and spacing come from the session viewport.
func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing resize request")
	}
	var req struct {
		Direction engine.Direction `json:"direction"`
		Start     geom.Point       `json:"start"`
		Current   geom.Point       `json:"current"`
		Bounds    geom.Rect        `json:"bounds"`
		Node      bool             `json:"node"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return errorResult(err.Error())
	}
	opts := engine.ResizeOptions{Spacing: sess.Engine().Spacing()}
	if req.Node {
		opts.Margin = engine.NodeGutter
	}
	return jsonResult(engine.Resize(req.Direction, req.Start, req.Current, req.Bounds, sess.Engine().Viewport().Scale, opts))
}

// route(fromRectJSON, toRectJSON)
func route(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("expected from and to rects")
	}
	var from, to geom.Rect
	if err := json.Unmarshal([]byte(args[0].String()), &from); err != nil {
		return errorResult(err.Error())
	}
	if err := json.Unmarshal([]byte(args[1].String()), &to); err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(engine.Route(from, to))
}

// computeMembers(sectionID) returns the members the section would have now.
func computeMembers(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing section id")
	}
	b := sess.Store().Board()
	section, ok := b.Find(args[0].String())
	if !ok || !section.IsSection() {
		return errorResult("section not found")
	}
	return jsonResult(engine.ComputeMembers(section, b.Widgets))
}

package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/inamate/whiteboard/internal/board"
	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

// Tool is the active editing mode.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolArrow  Tool = "arrow"
	ToolPan    Tool = "pan"
)

func (t Tool) Valid() bool {
	switch t {
	case ToolSelect, ToolArrow, ToolPan:
		return true
	default:
		return false
	}
}

// PointerEvent is a pointer sample in canvas-relative screen pixels.
type PointerEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Target is the widget under the pointer as seen by the host. When empty
	// the engine hit-tests itself.
	Target string `json:"target,omitempty"`
	// Handle is set when the pointer went down on a resize handle.
	Handle Direction `json:"handle,omitempty"`
	// Space is true while the pan modifier is held.
	Space bool `json:"space,omitempty"`
}

func (ev PointerEvent) Screen() geom.Point { return geom.Point{X: ev.X, Y: ev.Y} }

// WheelEvent is a scroll sample. With Ctrl (or Cmd) held it zooms around the
// pointer, otherwise it pans.
type WheelEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
	Ctrl   bool    `json:"ctrl"`
}

// ZoomDirection is a zoom button press.
type ZoomDirection string

const (
	ZoomDirIn  ZoomDirection = "in"
	ZoomDirOut ZoomDirection = "out"
)

type Options struct {
	Clock    clockwork.Clock
	Debounce time.Duration
	Logger   *slog.Logger
}

// Engine turns input events into widget ops. It keeps only interaction state
// and the viewport; widgets are passed in as a snapshot on every call and are
// never modified. An Engine is not safe for concurrent use.
type Engine struct {
	vp      Viewport
	tool    Tool
	current *interaction
	drawing *ArrowDrawing
	members *MembershipDebouncer
	logger  *slog.Logger
}

// New creates an engine with the default viewport and the select tool.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		vp:      DefaultViewport(),
		tool:    ToolSelect,
		drawing: NewArrowDrawing(),
		members: NewMembershipDebouncer(opts.Clock, opts.Debounce),
		logger:  logger,
	}
}

func (e *Engine) Viewport() Viewport { return e.vp }

// SetViewport replaces the viewport, clamping its scale.
func (e *Engine) SetViewport(vp Viewport) {
	e.vp = vp.Normalize()
}

func (e *Engine) Tool() Tool { return e.tool }

// Spacing is the snap spacing for the current zoom level.
func (e *Engine) Spacing() float64 { return GridSpacing(e.vp.Scale) }

// SetTool switches the editing mode. Leaving arrow mode cancels any arrow
// being drawn.
func (e *Engine) SetTool(t Tool) error {
	if !t.Valid() {
		return fmt.Errorf("unknown tool %q", t)
	}
	if e.tool == ToolArrow && t != ToolArrow {
		e.CancelArrow()
	}
	e.tool = t
	return nil
}

// CancelArrow abandons an in-progress arrow, if any.
func (e *Engine) CancelArrow() {
	if e.drawing.State() == StateDrawing {
		e.logger.Debug("arrow drawing cancelled")
	}
	e.drawing.Cancel()
	if e.current != nil && e.current.kind == interactDraw {
		e.current = nil
	}
}

// ArrowPreview returns the provisional connector while an arrow is drawn.
func (e *Engine) ArrowPreview() (Preview, bool) {
	return e.drawing.Preview()
}

// Interacting reports whether a pointer sequence is in progress.
func (e *Engine) Interacting() bool { return e.current != nil }

// PointerDown starts an interaction. A previous interaction whose pointer-up
// never arrived is ended first.
func (e *Engine) PointerDown(ev PointerEvent, widgets []document.Widget) []board.Op {
	var ops []board.Op
	if e.current != nil {
		ops = e.PointerUp(ev, widgets)
	}

	world := ScreenToWorld(ev.Screen(), e.vp)
	it := &interaction{
		startScreen: ev.Screen(),
		startView:   e.vp,
		spacing:     e.Spacing(),
	}

	if ev.Space || e.tool == ToolPan {
		it.kind = interactPan
		e.current = it
		return ops
	}

	target, ok := e.pointerTarget(ev.Target, world, widgets)
	if !ok {
		it.kind = interactPan
		e.current = it
		return ops
	}

	if e.tool == ToolArrow {
		if err := e.drawing.Begin(target, world); err != nil {
			e.logger.Debug("arrow drawing not started", "target", target.ID, "error", err)
			return ops
		}
		it.kind = interactDraw
		it.target = target
		e.current = it
		e.logger.Debug("arrow drawing started", "from", target.ID)
		return ops
	}

	if !target.Kind.Positioned() {
		return ops
	}

	it.target = target.Clone()
	it.startWidgets = document.CloneWidgets(widgets)
	it.kind = interactDrag
	if ev.Handle != "" && ev.Handle.Valid() {
		it.kind = interactResize
		it.handle = ev.Handle
	}
	it.held = true
	e.members.Hold()
	e.current = it
	e.logger.Debug("interaction started", "kind", it.kind, "target", target.ID)
	return ops
}

// PointerMove advances the current interaction.
func (e *Engine) PointerMove(ev PointerEvent, widgets []document.Widget) []board.Op {
	it := e.current
	if it == nil {
		return nil
	}

	switch it.kind {
	case interactPan:
		d := ev.Screen().Sub(it.startScreen)
		e.vp = Pan(it.startView, d.X, d.Y)
		return nil
	case interactDraw:
		e.drawing.Move(ScreenToWorld(ev.Screen(), e.vp), widgets)
		return nil
	default:
		return e.layout(it, ev.Screen(), widgets)
	}
}

// PointerUp ends the current interaction wherever the pointer is released.
func (e *Engine) PointerUp(ev PointerEvent, widgets []document.Widget) []board.Op {
	it := e.current
	if it == nil {
		return nil
	}
	e.current = nil

	var ops []board.Op
	switch it.kind {
	case interactDraw:
		arrow, ok := e.drawing.Release(ScreenToWorld(ev.Screen(), e.vp), widgets)
		if ok {
			ops = append(ops, board.CreateOp(arrow))
			e.logger.Debug("arrow bound", "arrow", arrow.ID, "from", arrow.Arrow.From, "to", arrow.Arrow.To)
		} else {
			e.logger.Debug("arrow drawing cancelled", "from", it.target.ID)
		}
	case interactDrag, interactResize:
		ops = e.layout(it, ev.Screen(), widgets)
	}

	if it.held {
		e.members.Release()
	}
	return ops
}

// layout computes the ops for a drag or resize with the pointer at screen.
func (e *Engine) layout(it *interaction, screen geom.Point, widgets []document.Widget) []board.Op {
	next := it.step(screen)
	if next == nil {
		return nil
	}
	next, _ = RerouteArrows(next, it.touched())

	if it.target.IsSection() {
		e.members.Schedule(it.target.ID)
	} else {
		for _, w := range next {
			if w.IsSection() {
				e.members.Schedule(w.ID)
			}
		}
	}
	return board.Diff(widgets, next)
}

// Wheel zooms around the pointer when Ctrl is held and pans otherwise.
func (e *Engine) Wheel(ev WheelEvent) Viewport {
	if ev.Ctrl {
		e.vp = ZoomAtPoint(e.vp, geom.Point{X: ev.X, Y: ev.Y}, geom.Point{}, WheelZoomFactor(ev.DeltaY))
	} else {
		e.vp = Pan(e.vp, -ev.DeltaX, -ev.DeltaY)
	}
	return e.vp
}

// Zoom steps the scale by ZoomStep for a zoom button press.
func (e *Engine) Zoom(dir ZoomDirection) (Viewport, error) {
	switch dir {
	case ZoomDirIn:
		e.vp = ZoomIn(e.vp)
	case ZoomDirOut:
		e.vp = ZoomOut(e.vp)
	default:
		return e.vp, fmt.Errorf("unknown zoom direction %q", dir)
	}
	return e.vp, nil
}

// Tick runs membership recomputes whose debounce window has elapsed.
func (e *Engine) Tick(widgets []document.Widget) []board.Op {
	ready := e.members.Ready()
	if len(ready) == 0 {
		return nil
	}

	var ops []board.Op
	for _, id := range ready {
		section, ok := findWidget(widgets, id)
		if !ok {
			continue
		}
		if next, changed := UpdateMembership(section, widgets); changed {
			ops = append(ops, board.MembersOp(id, next.Members()))
			e.logger.Debug("section members changed", "section", id, "members", len(next.Members()))
		}
	}
	return ops
}

// ScheduleAllSections queues a membership recompute for every section.
func (e *Engine) ScheduleAllSections(widgets []document.Widget) {
	for _, w := range widgets {
		if w.IsSection() {
			e.members.Schedule(w.ID)
		}
	}
}

// HitTestScreen returns the topmost widget under a screen point.
func (e *Engine) HitTestScreen(screen geom.Point, widgets []document.Widget) string {
	return HitTest(widgets, e.vp.InverseMatrix().TransformPoint(screen))
}

func (e *Engine) pointerTarget(id string, world geom.Point, widgets []document.Widget) (document.Widget, bool) {
	if id == "" {
		id = HitTest(widgets, world)
	}
	if id == "" {
		return document.Widget{}, false
	}
	return findWidget(widgets, id)
}

// Settle routes every bound arrow and recomputes every section's members so a
// board loaded from outside the engine starts out consistent.
func Settle(widgets []document.Widget) []document.Widget {
	out, _ := RerouteArrows(widgets, nil)
	out, _ = RecomputeAllMembers(out)
	return out
}

package engine

import (
	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

type interactionKind int

const (
	interactDrag interactionKind = iota + 1
	interactResize
	interactPan
	interactDraw
)

func (k interactionKind) String() string {
	switch k {
	case interactDrag:
		return "drag"
	case interactResize:
		return "resize"
	case interactPan:
		return "pan"
	case interactDraw:
		return "draw"
	default:
		return "none"
	}
}

// interaction is the transient state of one pointer-down to pointer-up
// sequence. Every move is computed from the state captured here, never from
// the previous move.
type interaction struct {
	kind        interactionKind
	target      document.Widget
	handle      Direction
	startScreen geom.Point
	startView   Viewport
	spacing     float64
	// widgets as they were at pointer-down
	startWidgets []document.Widget
	// held is true when this interaction suspended membership recompute
	held bool
}

// step computes the widget list for the pointer at screen. It returns nil for
// interactions that do not move widgets.
func (it *interaction) step(screen geom.Point) []document.Widget {
	s := ClampScale(it.startView.Scale)
	delta := screen.Sub(it.startScreen)
	start := it.target.Bounds()

	switch it.kind {
	case interactDrag:
		if it.target.IsSection() {
			return PropagateMove(it.target, delta.X/s, delta.Y/s, it.startWidgets, it.spacing)
		}
		pos := SnapWidgetPosition(start.X*s+delta.X, start.Y*s+delta.Y, s, it.spacing)
		return replaceWidget(it.startWidgets, it.target.WithBounds(geom.Rect{
			X: pos.X, Y: pos.Y, Width: it.target.Width, Height: it.target.Height,
		}))

	case interactResize:
		next := ResizeWidget(it.target, it.handle, it.startScreen, screen, start, s, it.spacing)
		if it.target.IsSection() {
			return PropagateResize(it.target, next.Bounds(), it.startWidgets, it.spacing)
		}
		return replaceWidget(it.startWidgets, next)

	default:
		return nil
	}
}

// touched returns the ids whose geometry this interaction may change.
func (it *interaction) touched() []string {
	ids := []string{it.target.ID}
	if it.target.IsSection() {
		ids = append(ids, it.target.Members()...)
	}
	return ids
}

func replaceWidget(widgets []document.Widget, w document.Widget) []document.Widget {
	out := document.CloneWidgets(widgets)
	for i := range out {
		if out[i].ID == w.ID {
			out[i] = w
		}
	}
	return out
}

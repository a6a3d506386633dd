package engine

import (
	"errors"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
	"github.com/inamate/whiteboard/internal/typeid"
)

var (
	ErrAlreadyDrawing = errors.New("arrow drawing already in progress")
	ErrNotConnectable = errors.New("widget cannot be an arrow endpoint")
)

// DrawState is the lifecycle of an arrow being drawn.
type DrawState int

const (
	StateIdle DrawState = iota
	StateDrawing
	StateBound
)

func (s DrawState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateBound:
		return "bound"
	default:
		return "unknown"
	}
}

// ArrowState classifies a stored arrow record.
func ArrowState(a *document.ArrowData) DrawState {
	switch {
	case a == nil || (a.From == "" && len(a.Points) == 0):
		return StateIdle
	case a.Pending():
		return StateDrawing
	default:
		return StateBound
	}
}

// Preview is the provisional connector shown while drawing. It is never
// written to the board.
type Preview struct {
	From   string     `json:"from"`
	Target string     `json:"target,omitempty"`
	Start  geom.Point `json:"start"`
	End    geom.Point `json:"end"`
}

// Points returns the preview as a flat two point polyline.
func (p Preview) Points() []float64 {
	return []float64{p.Start.X, p.Start.Y, p.End.X, p.End.Y}
}

// ArrowDrawing is the state machine for drawing one arrow at a time. A
// successful Release yields a bound arrow and returns the machine to idle.
type ArrowDrawing struct {
	state   DrawState
	preview Preview
	newID   func() string
}

func NewArrowDrawing() *ArrowDrawing {
	return &ArrowDrawing{newID: typeid.NewArrowID}
}

func (d *ArrowDrawing) State() DrawState { return d.state }

// Preview returns the current provisional connector, if drawing.
func (d *ArrowDrawing) Preview() (Preview, bool) {
	if d.state != StateDrawing {
		return Preview{}, false
	}
	return d.preview, true
}

// Begin starts drawing from the given widget at world point p.
func (d *ArrowDrawing) Begin(from document.Widget, p geom.Point) error {
	if d.state == StateDrawing {
		return ErrAlreadyDrawing
	}
	if !from.Kind.Positioned() {
		return ErrNotConnectable
	}
	start, _ := NearestSidePoint(from.Bounds(), p)
	d.state = StateDrawing
	d.preview = Preview{From: from.ID, Start: start, End: p}
	return nil
}

// Move updates the provisional end point. Within SnapDistance of another
// widget the end point snaps to that widget's nearest side midpoint.
func (d *ArrowDrawing) Move(p geom.Point, widgets []document.Widget) (Preview, bool) {
	if d.state != StateDrawing {
		return Preview{}, false
	}

	from, ok := findWidget(widgets, d.preview.From)
	if !ok {
		d.Cancel()
		return Preview{}, false
	}

	d.preview.End = p
	d.preview.Target = ""
	if target, ok := d.target(p, widgets); ok {
		d.preview.End, _ = NearestSidePoint(target.Bounds(), p)
		d.preview.Target = target.ID
	}
	d.preview.Start, _ = NearestSidePoint(from.Bounds(), d.preview.End)
	return d.preview, true
}

// Release finishes the drawing at p. If p is over a target widget the arrow
// is bound and routed once; otherwise the drawing is cancelled.
func (d *ArrowDrawing) Release(p geom.Point, widgets []document.Widget) (document.Widget, bool) {
	if d.state != StateDrawing {
		return document.Widget{}, false
	}
	defer d.reset()

	from, ok := findWidget(widgets, d.preview.From)
	if !ok {
		return document.Widget{}, false
	}
	to, ok := d.target(p, widgets)
	if !ok {
		return document.Widget{}, false
	}

	d.state = StateBound
	r := Route(from.Bounds(), to.Bounds())
	return document.Widget{
		ID:   d.newID(),
		Kind: document.KindArrow,
		Arrow: &document.ArrowData{
			From:       from.ID,
			To:         to.ID,
			Points:     r.Points,
			ArrowTipX:  r.ArrowTipX,
			ArrowTipY:  r.ArrowTipY,
			ArrowHeads: document.ArrowHeads{Right: true},
		},
	}, true
}

// Cancel abandons any drawing in progress.
func (d *ArrowDrawing) Cancel() {
	d.reset()
}

func (d *ArrowDrawing) reset() {
	d.state = StateIdle
	d.preview = Preview{}
}

func (d *ArrowDrawing) target(p geom.Point, widgets []document.Widget) (document.Widget, bool) {
	candidates := make([]document.Widget, 0, len(widgets))
	for _, w := range widgets {
		if w.ID != d.preview.From {
			candidates = append(candidates, w)
		}
	}
	return FindClosestWidget(p, candidates, SnapDistance)
}

func findWidget(widgets []document.Widget, id string) (document.Widget, bool) {
	for _, w := range widgets {
		if w.ID == id {
			return w, true
		}
	}
	return document.Widget{}, false
}

package board

import (
	"time"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
	"github.com/inamate/whiteboard/internal/typeid"
)

const (
	OpWidgetCreate   = "widget.create"
	OpWidgetUpdate   = "widget.update"
	OpWidgetDelete   = "widget.delete"
	OpWidgetBounds   = "widget.bounds"
	OpSectionMembers = "section.members"
	OpArrowRoute     = "arrow.route"
	OpArrowEndpoints = "arrow.endpoints"
)

// Op is a single widget mutation keyed by id.
type Op struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	WidgetID  string `json:"widgetId,omitempty"`

	// For widget.create / widget.update
	Widget *document.Widget `json:"widget,omitempty"`

	// For widget.bounds
	Bounds *geom.Rect `json:"bounds,omitempty"`

	// For section.members
	Members *MembersChange `json:"members,omitempty"`

	// For arrow.route
	Route *RouteChange `json:"route,omitempty"`

	// For arrow.endpoints
	Endpoints *EndpointsChange `json:"endpoints,omitempty"`
}

type MembersChange struct {
	MemberIDs []string `json:"memberIds"`
}

type RouteChange struct {
	Points    []float64 `json:"points"`
	ArrowTipX float64   `json:"arrowTipX"`
	ArrowTipY float64   `json:"arrowTipY"`
}

type EndpointsChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func newOp(typ, widgetID string) Op {
	return Op{
		ID:        typeid.NewOpID(),
		Type:      typ,
		Timestamp: time.Now().UnixMilli(),
		WidgetID:  widgetID,
	}
}

func CreateOp(w document.Widget) Op {
	op := newOp(OpWidgetCreate, w.ID)
	c := w.Clone()
	op.Widget = &c
	return op
}

func UpdateOp(w document.Widget) Op {
	op := newOp(OpWidgetUpdate, w.ID)
	c := w.Clone()
	op.Widget = &c
	return op
}

func DeleteOp(id string) Op {
	return newOp(OpWidgetDelete, id)
}

func BoundsOp(id string, r geom.Rect) Op {
	op := newOp(OpWidgetBounds, id)
	op.Bounds = &r
	return op
}

func MembersOp(sectionID string, memberIDs []string) Op {
	op := newOp(OpSectionMembers, sectionID)
	ids := make([]string, len(memberIDs))
	copy(ids, memberIDs)
	op.Members = &MembersChange{MemberIDs: ids}
	return op
}

func RouteOp(arrowID string, points []float64, tipX, tipY float64) Op {
	op := newOp(OpArrowRoute, arrowID)
	pts := make([]float64, len(points))
	copy(pts, points)
	op.Route = &RouteChange{Points: pts, ArrowTipX: tipX, ArrowTipY: tipY}
	return op
}

func EndpointsOp(arrowID, from, to string) Op {
	op := newOp(OpArrowEndpoints, arrowID)
	op.Endpoints = &EndpointsChange{From: from, To: to}
	return op
}

// Diff returns the ops that turn before into after. Widgets are matched by
// id; only bounds, member sets and arrow routes are compared, which covers
// every change the layout engine makes.
func Diff(before, after []document.Widget) []Op {
	prev := make(map[string]document.Widget, len(before))
	for _, w := range before {
		prev[w.ID] = w
	}

	var ops []Op
	for _, w := range after {
		old, ok := prev[w.ID]
		if !ok {
			ops = append(ops, CreateOp(w))
			continue
		}
		if w.Kind.Positioned() && w.Bounds() != old.Bounds() {
			ops = append(ops, BoundsOp(w.ID, w.Bounds()))
		}
		if w.IsSection() && !sameIDs(w.Members(), old.Members()) {
			ops = append(ops, MembersOp(w.ID, w.Members()))
		}
		if w.Arrow != nil && old.Arrow != nil && !sameRoute(w.Arrow, old.Arrow) {
			ops = append(ops, RouteOp(w.ID, w.Arrow.Points, w.Arrow.ArrowTipX, w.Arrow.ArrowTipY))
		}
	}
	return ops
}

func sameIDs(a, b []string) bool {
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

func sameRoute(a, b *document.ArrowData) bool {
	if a.ArrowTipX != b.ArrowTipX || a.ArrowTipY != b.ArrowTipY || len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}

package engine

import (
	"math"
	"slices"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

const (
	// TipOffset is how far the arrow tip stops short of the target anchor.
	TipOffset = 10.0
	// SnapDistance is the reach, in world units, of endpoint snapping.
	SnapDistance = 10.0
)

// RouteResult is an orthogonal connector between two shapes. Points holds
// x,y pairs; its final pair is the pulled-back tip.
type RouteResult struct {
	Points    []float64 `json:"points"`
	ArrowTipX float64   `json:"arrowTipX"`
	ArrowTipY float64   `json:"arrowTipY"`
	FromSide  geom.Side `json:"-"`
	ToSide    geom.Side `json:"-"`
}

func withDefaultSize(r geom.Rect) geom.Rect {
	if r.Width <= 0 {
		r.Width = 100
	}
	if r.Height <= 0 {
		r.Height = 50
	}
	return r
}

// Route connects from to to with a four point orthogonal polyline. The
// dominant axis between the centers picks the facing sides; the single jog
// sits halfway between the anchors.
func Route(from, to geom.Rect) RouteResult {
	from, to = withDefaultSize(from), withDefaultSize(to)
	fc, tc := from.Center(), to.Center()
	dx, dy := tc.X-fc.X, tc.Y-fc.Y

	horizontal := math.Abs(dx) > math.Abs(dy)
	var fromSide, toSide geom.Side
	switch {
	case horizontal && dx > 0:
		fromSide, toSide = geom.Right, geom.Left
	case horizontal:
		fromSide, toSide = geom.Left, geom.Right
	case dy > 0:
		fromSide, toSide = geom.Bottom, geom.Top
	default:
		fromSide, toSide = geom.Top, geom.Bottom
	}

	fp, tp := from.SideCenter(fromSide), to.SideCenter(toSide)
	var bend1, bend2 geom.Point
	if horizontal {
		midX := (fp.X + tp.X) / 2
		bend1, bend2 = geom.Point{X: midX, Y: fp.Y}, geom.Point{X: midX, Y: tp.Y}
	} else {
		midY := (fp.Y + tp.Y) / 2
		bend1, bend2 = geom.Point{X: fp.X, Y: midY}, geom.Point{X: tp.X, Y: midY}
	}

	angle := incomingAngle(bend2, tp, toSide)
	tip := geom.Point{
		X: tp.X - TipOffset*math.Cos(angle),
		Y: tp.Y - TipOffset*math.Sin(angle),
	}

	return RouteResult{
		Points:    []float64{fp.X, fp.Y, bend1.X, bend1.Y, bend2.X, bend2.Y, tip.X, tip.Y},
		ArrowTipX: tip.X,
		ArrowTipY: tip.Y,
		FromSide:  fromSide,
		ToSide:    toSide,
	}
}

// incomingAngle is the direction of the last segment. A zero-length segment
// falls back to pointing straight into the target side.
func incomingAngle(prev, tip geom.Point, side geom.Side) float64 {
	if prev != tip {
		return math.Atan2(tip.Y-prev.Y, tip.X-prev.X)
	}
	switch side {
	case geom.Top:
		return math.Pi / 2
	case geom.Bottom:
		return -math.Pi / 2
	case geom.Left:
		return 0
	default:
		return math.Pi
	}
}

// NearestSidePoint returns the side midpoint of r closest to p. Ties keep the
// earlier side in top, bottom, left, right order.
func NearestSidePoint(r geom.Rect, p geom.Point) (geom.Point, geom.Side) {
	r = withDefaultSize(r)
	best, bestSide := r.SideCenter(geom.Top), geom.Top
	bestDist := p.Dist(best)
	for _, s := range []geom.Side{geom.Bottom, geom.Left, geom.Right} {
		c := r.SideCenter(s)
		if d := p.Dist(c); d < bestDist {
			best, bestSide, bestDist = c, s, d
		}
	}
	return best, bestSide
}

// FindClosestWidget picks the connectable widget whose nearest side midpoint
// is closest to p, considering only widgets whose bounds grown by
// snapDistance contain p. Equal distances go to the later (topmost) widget.
func FindClosestWidget(p geom.Point, widgets []document.Widget, snapDistance float64) (document.Widget, bool) {
	var (
		best     document.Widget
		bestDist = math.Inf(1)
		found    bool
	)
	for _, w := range widgets {
		if !w.Kind.Positioned() {
			continue
		}
		b := w.Bounds()
		if !b.Expand(snapDistance).Contains(p.X, p.Y) {
			continue
		}
		anchor, _ := NearestSidePoint(b, p)
		if d := p.Dist(anchor); d <= bestDist {
			best, bestDist, found = w, d, true
		}
	}
	return best, found
}

// RouteArrow recomputes an arrow from its endpoints. The bool is false when
// either endpoint does not resolve to a positioned widget, or when the route
// is unchanged.
func RouteArrow(arrow document.Widget, byID map[string]document.Widget) (document.Widget, bool) {
	if ArrowState(arrow.Arrow) != StateBound {
		return arrow, false
	}
	from, ok := byID[arrow.Arrow.From]
	if !ok || !from.Kind.Positioned() {
		return arrow, false
	}
	to, ok := byID[arrow.Arrow.To]
	if !ok || !to.Kind.Positioned() {
		return arrow, false
	}

	r := Route(from.Bounds(), to.Bounds())
	if slices.Equal(r.Points, arrow.Arrow.Points) &&
		r.ArrowTipX == arrow.Arrow.ArrowTipX && r.ArrowTipY == arrow.Arrow.ArrowTipY {
		return arrow, false
	}

	out := arrow.Clone()
	out.Arrow.Points = r.Points
	out.Arrow.ArrowTipX = r.ArrowTipX
	out.Arrow.ArrowTipY = r.ArrowTipY
	return out, true
}

// RerouteArrows refreshes every arrow touching one of the changed ids, or all
// arrows when changed is nil. It returns the new widget list and the ids of
// arrows whose geometry changed.
func RerouteArrows(widgets []document.Widget, changed []string) ([]document.Widget, []string) {
	byID := make(map[string]document.Widget, len(widgets))
	for _, w := range widgets {
		byID[w.ID] = w
	}

	out := make([]document.Widget, len(widgets))
	var rerouted []string
	for i, w := range widgets {
		out[i] = w
		if !w.IsArrow() || w.Arrow == nil {
			continue
		}
		if changed != nil && !slices.Contains(changed, w.Arrow.From) && !slices.Contains(changed, w.Arrow.To) {
			continue
		}
		if next, ok := RouteArrow(w, byID); ok {
			out[i] = next
			rerouted = append(rerouted, w.ID)
		}
	}
	return out, rerouted
}

// LabelAnchor returns the point halfway along the polyline.
func LabelAnchor(points []float64) geom.Point {
	pts := pointList(points)
	switch len(pts) {
	case 0:
		return geom.Point{}
	case 1:
		return pts[0]
	}

	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	remaining := total / 2
	for i := 1; i < len(pts); i++ {
		seg := pts[i-1].Dist(pts[i])
		if seg >= remaining && seg > 0 {
			t := remaining / seg
			return pts[i-1].Add(pts[i].Sub(pts[i-1]).Mul(t))
		}
		remaining -= seg
	}
	return pts[len(pts)-1]
}

func pointList(points []float64) []geom.Point {
	pts := make([]geom.Point, 0, len(points)/2)
	for i := 0; i+1 < len(points); i += 2 {
		pts = append(pts, geom.Point{X: points[i], Y: points[i+1]})
	}
	return pts
}

// RelationshipType classifies an arrow by which heads are shown.
type RelationshipType string

const (
	Unidirectional RelationshipType = "unidirectional"
	Bidirectional  RelationshipType = "bidirectional"
	Equal          RelationshipType = "equal"
)

func Relationship(h document.ArrowHeads) RelationshipType {
	switch {
	case h.Left && h.Right:
		return Bidirectional
	case !h.Left && !h.Right:
		return Equal
	default:
		return Unidirectional
	}
}

package engine

import (
	"math"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

const (
	MinHeadLength     = 10.0
	MaxHeadLength     = 15.0
	DefaultHeadLength = 12.0
	headSpread        = math.Pi / 6
)

// HeadTriangle returns the apex and the two base corners of an arrowhead
// pointing along angle. length is clamped to [MinHeadLength, MaxHeadLength].
func HeadTriangle(tipX, tipY, angle, length float64) [3]geom.Point {
	if math.IsNaN(length) {
		length = DefaultHeadLength
	}
	length = math.Max(MinHeadLength, math.Min(MaxHeadLength, length))
	return [3]geom.Point{
		{X: tipX, Y: tipY},
		{X: tipX - length*math.Cos(angle-headSpread), Y: tipY - length*math.Sin(angle-headSpread)},
		{X: tipX - length*math.Cos(angle+headSpread), Y: tipY - length*math.Sin(angle+headSpread)},
	}
}

// Head is one drawn arrowhead.
type Head struct {
	Side   string        `json:"side"`
	Points [3]geom.Point `json:"points"`
}

// ArrowHeads returns the enabled heads of an arrow. The right head points
// along the last segment, the left head against the first.
func ArrowHeads(a *document.ArrowData, length float64) []Head {
	if a == nil || len(a.Points) < 4 {
		return nil
	}
	pts := pointList(a.Points)
	var heads []Head

	if a.ArrowHeads.Right {
		tip, prev := pts[len(pts)-1], pts[len(pts)-2]
		angle := math.Atan2(tip.Y-prev.Y, tip.X-prev.X)
		heads = append(heads, Head{Side: "right", Points: HeadTriangle(tip.X, tip.Y, angle, length)})
	}
	if a.ArrowHeads.Left {
		tip, next := pts[0], pts[1]
		angle := math.Atan2(next.Y-tip.Y, next.X-tip.X) + math.Pi
		heads = append(heads, Head{Side: "left", Points: HeadTriangle(tip.X, tip.Y, angle, length)})
	}
	return heads
}

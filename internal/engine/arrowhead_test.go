package engine

import (
	"math"
	"testing"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

func TestHeadTriangle(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		length   float64
		wantSide float64
	}{
		{"pointing right", 0, 12, 12},
		{"pointing down", math.Pi / 2, 12, 12},
		{"pointing left", math.Pi, 10, 10},
		{"too long", 0.3, 100, MaxHeadLength},
		{"too short", -1.2, 1, MinHeadLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := HeadTriangle(5, 7, tt.angle, tt.length)
			tip := geom.Point{X: 5, Y: 7}
			if tri[0] != tip {
				t.Errorf("apex = %v, want %v", tri[0], tip)
			}
			if !near(tri[1].Dist(tip), tt.wantSide) || !near(tri[2].Dist(tip), tt.wantSide) {
				t.Errorf("side lengths = %v, %v, want %v", tri[1].Dist(tip), tri[2].Dist(tip), tt.wantSide)
			}

			// base is perpendicular to the pointing direction
			base := tri[2].Sub(tri[1])
			dir := geom.Point{X: math.Cos(tt.angle), Y: math.Sin(tt.angle)}
			if dot := base.X*dir.X + base.Y*dir.Y; !near(dot, 0) {
				t.Errorf("base not perpendicular, dot = %v", dot)
			}

			// base sits behind the tip
			mid := tri[1].Add(tri[2]).Mul(0.5)
			if back := mid.Sub(tip); back.X*dir.X+back.Y*dir.Y >= 0 {
				t.Errorf("base midpoint %v is not behind tip", mid)
			}
		})
	}
}

func TestArrowHeads(t *testing.T) {
	points := []float64{0, 0, 50, 0, 50, 100, 100, 100}

	tests := []struct {
		name  string
		heads document.ArrowHeads
		want  []string
	}{
		{"right only", document.ArrowHeads{Right: true}, []string{"right"}},
		{"left only", document.ArrowHeads{Left: true}, []string{"left"}},
		{"both", document.ArrowHeads{Left: true, Right: true}, []string{"right", "left"}},
		{"none", document.ArrowHeads{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArrowHeads(&document.ArrowData{Points: points, ArrowHeads: tt.heads}, DefaultHeadLength)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d heads, want %d", len(got), len(tt.want))
			}
			for i, h := range got {
				if h.Side != tt.want[i] {
					t.Errorf("head %d side = %s, want %s", i, h.Side, tt.want[i])
				}
				switch h.Side {
				case "right":
					if h.Points[0] != (geom.Point{X: 100, Y: 100}) || h.Points[1].X >= 100 {
						t.Errorf("right head = %v", h.Points)
					}
				case "left":
					if h.Points[0] != (geom.Point{}) || h.Points[1].X <= 0 {
						t.Errorf("left head = %v", h.Points)
					}
				}
			}
		})
	}

	if got := ArrowHeads(&document.ArrowData{Points: []float64{1, 2}, ArrowHeads: document.ArrowHeads{Right: true}}, 12); got != nil {
		t.Errorf("short polyline heads = %v", got)
	}
	if got := ArrowHeads(nil, 12); got != nil {
		t.Errorf("nil arrow heads = %v", got)
	}
}

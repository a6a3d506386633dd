package engine

import (
	"math"
	"testing"

	"github.com/inamate/whiteboard/internal/geom"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func nearPoint(a, b geom.Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestTransformRoundTrip(t *testing.T) {
	viewports := []Viewport{
		DefaultViewport(),
		{Scale: 2.5, Offset: geom.Point{X: -120, Y: 33.3}},
		{Scale: 0.1, Offset: geom.Point{X: 1e4, Y: -1e4}},
		{Scale: 5, Offset: geom.Point{X: 0.5, Y: 0.25}},
	}
	points := []geom.Point{{}, {X: 100, Y: 0}, {X: -37.5, Y: 912.125}, {X: 1920, Y: 1080}}

	for _, vp := range viewports {
		for _, p := range points {
			got := WorldToScreen(ScreenToWorld(p, vp), vp)
			if !nearPoint(got, p) {
				t.Errorf("round trip %v under %+v = %v", p, vp, got)
			}
		}
	}
}

func TestScreenToWorldFormula(t *testing.T) {
	vp := Viewport{Scale: 2, Offset: geom.Point{X: 10, Y: -5}}
	got := ScreenToWorld(geom.Point{X: 100, Y: 100}, vp)
	// (100 - 10*2)/2, (100 + 5*2)/2
	want := geom.Point{X: 40, Y: 55}
	if !nearPoint(got, want) {
		t.Errorf("ScreenToWorld = %v, want %v", got, want)
	}
}

func TestZoomAtPointKeepsAnchor(t *testing.T) {
	tests := []struct {
		name   string
		vp     Viewport
		screen geom.Point
		factor float64
	}{
		{"zoom in", DefaultViewport(), geom.Point{X: 400, Y: 300}, 1.25},
		{"zoom out", Viewport{Scale: 2, Offset: geom.Point{X: -50, Y: 80}}, geom.Point{X: 13, Y: 700}, 0.5},
		{"wheel", Viewport{Scale: 0.7, Offset: geom.Point{X: 3, Y: 4}}, geom.Point{X: 640, Y: 10}, WheelZoomFactor(-240)},
		{"clamped high", Viewport{Scale: 4}, geom.Point{X: 200, Y: 200}, 10},
		{"clamped low", Viewport{Scale: 0.2}, geom.Point{X: 200, Y: 200}, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := ZoomAtPoint(tt.vp, tt.screen, geom.Point{}, tt.factor)
			before := ScreenToWorld(tt.screen, tt.vp)
			after := ScreenToWorld(tt.screen, next)
			if !nearPoint(before, after) {
				t.Errorf("anchor moved from %v to %v", before, after)
			}
			if next.Scale < MinScale || next.Scale > MaxScale {
				t.Errorf("scale %v out of range", next.Scale)
			}
		})
	}
}

func TestZoomAtPointWithCanvasOrigin(t *testing.T) {
	origin := geom.Point{X: 50, Y: 80}
	screen := geom.Point{X: 450, Y: 380}
	vp := Viewport{Scale: 1.5, Offset: geom.Point{X: 7, Y: -3}}

	next := ZoomAtPoint(vp, screen, origin, 1.3)
	local := screen.Sub(origin)
	if !nearPoint(ScreenToWorld(local, vp), ScreenToWorld(local, next)) {
		t.Error("canvas-relative anchor moved")
	}
}

func TestScaleClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, MinScale},
		{-3, MinScale},
		{0.05, MinScale},
		{1, 1},
		{9, MaxScale},
		{math.NaN(), 1},
		{math.Inf(1), MaxScale},
	}
	for _, tt := range tests {
		if got := ClampScale(tt.in); got != tt.want {
			t.Errorf("ClampScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	vp := ZoomAtPoint(DefaultViewport(), geom.Point{X: 10, Y: 10}, geom.Point{}, 0)
	if vp.Scale != MinScale {
		t.Errorf("zero factor scale = %v, want %v", vp.Scale, MinScale)
	}
	if got := ScreenToWorld(geom.Point{X: 1, Y: 1}, Viewport{}); math.IsInf(got.X, 0) || math.IsNaN(got.X) {
		t.Errorf("zero-scale viewport produced %v", got)
	}
}

func TestWheelZoomFactor(t *testing.T) {
	if WheelZoomFactor(0) != 1 {
		t.Error("zero delta should not zoom")
	}
	if WheelZoomFactor(-100) <= 1 {
		t.Error("negative delta should zoom in")
	}
	if WheelZoomFactor(100) >= 1 {
		t.Error("positive delta should zoom out")
	}
	if !near(WheelZoomFactor(100)*WheelZoomFactor(-100), 1) {
		t.Error("opposite deltas should cancel")
	}
}

func TestPanAndSteps(t *testing.T) {
	vp := Pan(Viewport{Scale: 2}, 100, -50)
	if vp.Offset != (geom.Point{X: 50, Y: -25}) {
		t.Errorf("Pan offset = %v", vp.Offset)
	}

	if got := ZoomIn(Viewport{Scale: MaxScale}).Scale; got != MaxScale {
		t.Errorf("ZoomIn at max = %v", got)
	}
	if got := ZoomOut(Viewport{Scale: MinScale}).Scale; got != MinScale {
		t.Errorf("ZoomOut at min = %v", got)
	}
	if got := ZoomIn(DefaultViewport()).Scale; !near(got, 1.1) {
		t.Errorf("ZoomIn = %v, want 1.1", got)
	}
}

func TestViewportMatrixMatchesTransform(t *testing.T) {
	vp := Viewport{Scale: 1.75, Offset: geom.Point{X: -40, Y: 12}}
	world := geom.Point{X: 300, Y: -80}
	if got, want := vp.Matrix().TransformPoint(world), WorldToScreen(world, vp); !nearPoint(got, want) {
		t.Errorf("Matrix = %v, WorldToScreen = %v", got, want)
	}
}

func TestVisibleWorldRect(t *testing.T) {
	vp := Viewport{Scale: 2, Offset: geom.Point{X: 10}}
	got := vp.VisibleWorldRect(800, 600)
	want := geom.Rect{X: -10, Y: 0, Width: 400, Height: 300}
	if got != want {
		t.Errorf("VisibleWorldRect = %+v, want %+v", got, want)
	}
}

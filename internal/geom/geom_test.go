package geom

import (
	"math"
	"testing"
)

func TestRectContainsRect(t *testing.T) {
	section := Rect{X: 0, Y: 0, Width: 200, Height: 200}

	tests := []struct {
		name  string
		shape Rect
		want  bool
	}{
		{"inside", Rect{X: 10, Y: 10, Width: 50, Height: 50}, true},
		{"shared edges", Rect{X: 0, Y: 0, Width: 200, Height: 200}, true},
		{"partially outside", Rect{X: 190, Y: 10, Width: 50, Height: 50}, false},
		{"fully outside", Rect{X: 300, Y: 300, Width: 10, Height: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := section.ContainsRect(tt.shape); got != tt.want {
				t.Errorf("ContainsRect(%+v) = %v, want %v", tt.shape, got, tt.want)
			}
		})
	}
}

func TestRectExpandAndUnion(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	e := r.Expand(5)
	if e != (Rect{X: 5, Y: 15, Width: 40, Height: 50}) {
		t.Errorf("Expand(5) = %+v", e)
	}

	u := r.Union(Rect{X: 100, Y: 0, Width: 10, Height: 10})
	if u != (Rect{X: 10, Y: 0, Width: 100, Height: 60}) {
		t.Errorf("Union = %+v", u)
	}
	line := Rect{X: 100, Y: 25, Width: 190}
	if got, want := line.Union(Rect{X: 0, Y: 100, Width: 48, Height: 48}), (Rect{Y: 25, Width: 290, Height: 123}); got != want {
		t.Errorf("Union with flat rect = %+v, want %+v", got, want)
	}
}

func TestSideCenters(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	got := r.SideCenters()
	want := [4]Point{{50, 0}, {50, 50}, {0, 25}, {100, 25}}
	if got != want {
		t.Errorf("SideCenters() = %v, want %v", got, want)
	}

	for _, s := range []Side{Top, Bottom, Left, Right} {
		if s.Opposite().Opposite() != s {
			t.Errorf("%v.Opposite().Opposite() != %v", s, s)
		}
		if s.Horizontal() != s.Opposite().Horizontal() {
			t.Errorf("%v and its opposite disagree on orientation", s)
		}
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := Scale(2.5, 2.5).Multiply(Translate(-30, 12))
	inv := m.Invert()

	p := Point{X: 123.4, Y: -56.7}
	back := inv.TransformPoint(m.TransformPoint(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}
	id := m.Multiply(inv)
	for i, want := range Identity() {
		if math.Abs(id[i]-want) > 1e-12 {
			t.Errorf("m * inv = %v, want identity", id)
			break
		}
	}

	if got := Scale(0, 1).Invert(); got != Identity() {
		t.Errorf("singular Invert = %v, want identity", got)
	}
}

func TestMatrixTransformRect(t *testing.T) {
	m := Scale(2, 2).Multiply(Translate(10, 10))
	got := m.TransformRect(Rect{X: 0, Y: 0, Width: 10, Height: 5})
	want := Rect{X: 20, Y: 20, Width: 20, Height: 10}
	if got != want {
		t.Errorf("TransformRect = %+v, want %+v", got, want)
	}
}

func TestRectIsFinite(t *testing.T) {
	if !(Rect{X: 1, Y: 2, Width: 3, Height: 4}).IsFinite() {
		t.Error("finite rect reported as non-finite")
	}
	if (Rect{X: math.NaN()}).IsFinite() {
		t.Error("NaN rect reported as finite")
	}
	if (Rect{Width: math.Inf(1)}).IsFinite() {
		t.Error("Inf rect reported as finite")
	}
}

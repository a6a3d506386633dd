package engine

import (
	"math"
	"testing"

	"github.com/inamate/whiteboard/internal/geom"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		value, spacing, want float64
	}{
		{0, 48, 0},
		{24, 48, 0},
		{25, 48, 48},
		{100, 48, 96},
		{48, 48, 48},
		{72, 48, 48},
		{73, 48, 96},
		{-10, 48, 0},
		{-24, 48, -48},
		{-30, 48, -48},
		{30, 60, 0},
		{31, 60, 60},
		{23.999, 48, 0},
	}

	for _, tt := range tests {
		if got := Snap(tt.value, tt.spacing); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.value, tt.spacing, got, tt.want)
		}
	}
}

func TestSnapIdempotent(t *testing.T) {
	for _, spacing := range []float64{48, 60} {
		for v := -1000.0; v <= 1000; v += 0.37 {
			once := Snap(v, spacing)
			if twice := Snap(once, spacing); twice != once {
				t.Fatalf("Snap(Snap(%v)) = %v, Snap(%v) = %v", v, twice, v, once)
			}
		}
	}
}

func TestSnapNonFinite(t *testing.T) {
	if got := Snap(math.Inf(1), 48); !math.IsInf(got, 1) {
		t.Errorf("Snap(+Inf) = %v", got)
	}
	if got := Snap(math.NaN(), 48); !math.IsNaN(got) {
		t.Errorf("Snap(NaN) = %v", got)
	}
	if got := Snap(13, 0); got != 13 {
		t.Errorf("Snap with zero spacing = %v", got)
	}
}

func TestGridSpacing(t *testing.T) {
	tests := []struct {
		scale float64
		want  float64
	}{
		{1, 48},
		{0.3, 48},
		{0.29, 60},
		{0.1, 60},
		{5, 48},
	}
	for _, tt := range tests {
		if got := GridSpacing(tt.scale); got != tt.want {
			t.Errorf("GridSpacing(%v) = %v, want %v", tt.scale, got, tt.want)
		}
		if got := GridStyleFor(tt.scale).Spacing; got != tt.want {
			t.Errorf("GridStyleFor(%v).Spacing = %v, want %v", tt.scale, got, tt.want)
		}
	}
}

func TestSnapWidgetPosition(t *testing.T) {
	tests := []struct {
		name   string
		sx, sy float64
		scale  float64
		want   geom.Point
	}{
		{"drag 100 at scale 1", 100, 0, 1, geom.Point{X: 96, Y: 0}},
		{"scale 2", 200, 50, 2, geom.Point{X: 96, Y: 48}},
		{"scale half", 50, 12, 0.5, geom.Point{X: 96, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapWidgetPosition(tt.sx, tt.sy, tt.scale, BaseSpacing); got != tt.want {
				t.Errorf("SnapWidgetPosition = %v, want %v", got, tt.want)
			}
		})
	}
}

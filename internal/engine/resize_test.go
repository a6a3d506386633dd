package engine

import (
	"testing"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

func TestResize(t *testing.T) {
	box := geom.Rect{X: 96, Y: 96, Width: 96, Height: 96}

	tests := []struct {
		name  string
		dir   Direction
		drag  geom.Point
		scale float64
		opts  ResizeOptions
		want  geom.Rect
	}{
		{"east grows width", DirE, geom.Point{X: 50, Y: 30}, 1, ResizeOptions{}, geom.Rect{X: 96, Y: 96, Width: 144, Height: 96}},
		{"west shifts x", DirW, geom.Point{X: -48, Y: 30}, 1, ResizeOptions{}, geom.Rect{X: 48, Y: 96, Width: 144, Height: 96}},
		{"south grows height", DirS, geom.Point{X: 30, Y: 48}, 1, ResizeOptions{}, geom.Rect{X: 96, Y: 96, Width: 96, Height: 144}},
		{"north shifts y", DirN, geom.Point{X: 30, Y: -48}, 1, ResizeOptions{}, geom.Rect{X: 96, Y: 48, Width: 96, Height: 144}},
		{"north east", DirNE, geom.Point{X: 48, Y: -48}, 1, ResizeOptions{}, geom.Rect{X: 96, Y: 48, Width: 144, Height: 144}},
		{"south west", DirSW, geom.Point{X: -48, Y: 48}, 1, ResizeOptions{}, geom.Rect{X: 48, Y: 96, Width: 144, Height: 144}},
		{"scaled delta", DirE, geom.Point{X: 96}, 2, ResizeOptions{}, geom.Rect{X: 96, Y: 96, Width: 144, Height: 96}},
		{"margin", DirE, geom.Point{X: 48}, 1, ResizeOptions{Margin: 8}, geom.Rect{X: 96, Y: 96, Width: 136, Height: 96}},
		{"custom spacing", DirS, geom.Point{Y: 30}, 1, ResizeOptions{Spacing: 60}, geom.Rect{X: 96, Y: 96, Width: 96, Height: 120}},
		{"unknown direction", Direction("x"), geom.Point{X: 500, Y: 500}, 1, ResizeOptions{}, box},
		{"empty direction", Direction(""), geom.Point{X: 500, Y: 500}, 1, ResizeOptions{}, box},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(tt.dir, geom.Point{}, tt.drag, box, tt.scale, tt.opts)
			if got != tt.want {
				t.Errorf("Resize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeMinimumClamp(t *testing.T) {
	box := geom.Rect{Width: 100, Height: 100}
	for _, drag := range []geom.Point{{X: -50, Y: -50}, {X: -100, Y: -100}, {X: -1000, Y: -1000}} {
		got := Resize(DirSE, geom.Point{}, drag, box, 1, ResizeOptions{})
		if got.Width < MinWidgetSize || got.Height < MinWidgetSize {
			t.Errorf("drag %v gave %+v, below minimum", drag, got)
		}
	}

	got := Resize(DirW, geom.Point{}, geom.Point{X: 500}, box, 1, ResizeOptions{})
	if got.Width != MinWidgetSize {
		t.Errorf("west collapse width = %v, want %v", got.Width, MinWidgetSize)
	}
	if got.Height != box.Height {
		t.Errorf("west resize changed height to %v", got.Height)
	}
}

func TestResizeWidgetNodeGutter(t *testing.T) {
	start := geom.Rect{Width: 96, Height: 96}
	node := document.Widget{ID: "n", Kind: document.KindNode, Width: 96, Height: 96}
	text := document.Widget{ID: "t", Kind: document.KindText, Width: 96, Height: 96}

	gotNode := ResizeWidget(node, DirSE, geom.Point{}, geom.Point{X: 48, Y: 48}, start, 1, BaseSpacing)
	if gotNode.Width != 136 || gotNode.Height != 136 {
		t.Errorf("node resize = %vx%v, want 136x136", gotNode.Width, gotNode.Height)
	}
	gotText := ResizeWidget(text, DirSE, geom.Point{}, geom.Point{X: 48, Y: 48}, start, 1, BaseSpacing)
	if gotText.Width != 144 || gotText.Height != 144 {
		t.Errorf("text resize = %vx%v, want 144x144", gotText.Width, gotText.Height)
	}
	if node.Width != 96 {
		t.Error("ResizeWidget modified its input")
	}
}

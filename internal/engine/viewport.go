package engine

import (
	"math"

	"github.com/inamate/whiteboard/internal/geom"
)

const (
	MinScale  = 0.1
	MaxScale  = 5.0
	ZoomSpeed = 0.001
	ZoomStep  = 0.1
)

// Viewport holds the pan/zoom state of the canvas. Offset is the world
// translation applied before scaling.
type Viewport struct {
	Scale  float64    `json:"scale"`
	Offset geom.Point `json:"offset"`
}

// DefaultViewport returns an unzoomed, unpanned viewport.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1}
}

// ClampScale limits s to [MinScale, MaxScale]. NaN maps to 1.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}

// Normalize returns vp with its scale clamped.
func (vp Viewport) Normalize() Viewport {
	vp.Scale = ClampScale(vp.Scale)
	return vp
}

// ScreenToWorld maps a screen point to world coordinates.
func ScreenToWorld(screen geom.Point, vp Viewport) geom.Point {
	s := ClampScale(vp.Scale)
	return geom.Point{
		X: (screen.X - vp.Offset.X*s) / s,
		Y: (screen.Y - vp.Offset.Y*s) / s,
	}
}

// WorldToScreen is the inverse of ScreenToWorld.
func WorldToScreen(world geom.Point, vp Viewport) geom.Point {
	s := ClampScale(vp.Scale)
	return geom.Point{
		X: (world.X + vp.Offset.X) * s,
		Y: (world.Y + vp.Offset.Y) * s,
	}
}

// ZoomAtPoint scales the viewport by factor while keeping the world point
// under screen fixed. origin is the top-left corner of the canvas in the same
// space as screen.
func ZoomAtPoint(vp Viewport, screen, origin geom.Point, factor float64) Viewport {
	s := ClampScale(vp.Scale)
	next := ClampScale(s * factor)
	if next == s {
		vp.Scale = s
		return vp
	}

	p := screen.Sub(origin).Mul(1 / s)
	return Viewport{
		Scale: next,
		Offset: geom.Point{
			X: vp.Offset.X + p.X*(s-next)/next,
			Y: vp.Offset.Y + p.Y*(s-next)/next,
		},
	}
}

// WheelZoomFactor converts a wheel delta into a multiplicative zoom factor.
func WheelZoomFactor(deltaY float64) float64 {
	return math.Exp(-deltaY * ZoomSpeed)
}

// Pan shifts the viewport by a screen-space delta.
func Pan(vp Viewport, screenDX, screenDY float64) Viewport {
	s := ClampScale(vp.Scale)
	return Viewport{
		Scale: s,
		Offset: geom.Point{
			X: vp.Offset.X + screenDX/s,
			Y: vp.Offset.Y + screenDY/s,
		},
	}
}

// ZoomIn steps the scale up around the canvas origin.
func ZoomIn(vp Viewport) Viewport {
	vp.Scale = ClampScale(ClampScale(vp.Scale) + ZoomStep)
	return vp
}

// ZoomOut steps the scale down around the canvas origin.
func ZoomOut(vp Viewport) Viewport {
	vp.Scale = ClampScale(ClampScale(vp.Scale) - ZoomStep)
	return vp
}

// Matrix returns the world-to-screen transform.
func (vp Viewport) Matrix() geom.Matrix2D {
	s := ClampScale(vp.Scale)
	return geom.Scale(s, s).Multiply(geom.Translate(vp.Offset.X, vp.Offset.Y))
}

// InverseMatrix returns the screen-to-world transform.
func (vp Viewport) InverseMatrix() geom.Matrix2D {
	return vp.Matrix().Invert()
}

// VisibleWorldRect returns the world-space area shown by a canvas of the
// given pixel size.
func (vp Viewport) VisibleWorldRect(width, height float64) geom.Rect {
	return vp.InverseMatrix().TransformRect(geom.Rect{Width: width, Height: height})
}

package engine

import (
	"math"

	"github.com/inamate/whiteboard/internal/geom"
)

const (
	BaseSpacing   = 48.0
	WideSpacing   = 60.0
	WideThreshold = 0.3
)

// Snap quantizes value to a multiple of spacing. A remainder of exactly half
// the spacing rounds down.
func Snap(value, spacing float64) float64 {
	if spacing <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	lower := math.Floor(value/spacing) * spacing
	r := value - lower
	if r <= spacing/2 {
		return lower
	}
	return lower + spacing
}

// GridSpacing returns the active grid spacing for a zoom level.
func GridSpacing(scale float64) float64 {
	if scale < WideThreshold {
		return WideSpacing
	}
	return BaseSpacing
}

// GridStyle describes how the dot grid is drawn at a zoom level.
type GridStyle struct {
	Spacing float64 `json:"spacing"`
	DotSize float64 `json:"dotSize"`
}

// GridStyleFor derives the grid presentation from scale alone.
func GridStyleFor(scale float64) GridStyle {
	if scale < WideThreshold {
		return GridStyle{Spacing: WideSpacing, DotSize: 1.5}
	}
	return GridStyle{Spacing: BaseSpacing, DotSize: 1}
}

// SnapWidgetPosition converts a screen position (the pre-drag position in
// screen space plus the drag delta) into a snapped world position.
func SnapWidgetPosition(screenX, screenY, scale, spacing float64) geom.Point {
	s := ClampScale(scale)
	return geom.Point{
		X: Snap(screenX/s, spacing),
		Y: Snap(screenY/s, spacing),
	}
}

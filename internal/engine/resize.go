package engine

import (
	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

const (
	MinWidgetSize = 50.0
	NodeGutter    = 8.0
)

// Direction names a resize handle.
type Direction string

const (
	DirN  Direction = "n"
	DirS  Direction = "s"
	DirE  Direction = "e"
	DirW  Direction = "w"
	DirNE Direction = "ne"
	DirNW Direction = "nw"
	DirSE Direction = "se"
	DirSW Direction = "sw"
)

type edges struct {
	north, south, east, west bool
}

func (d Direction) edges() (edges, bool) {
	switch d {
	case DirN:
		return edges{north: true}, true
	case DirS:
		return edges{south: true}, true
	case DirE:
		return edges{east: true}, true
	case DirW:
		return edges{west: true}, true
	case DirNE:
		return edges{north: true, east: true}, true
	case DirNW:
		return edges{north: true, west: true}, true
	case DirSE:
		return edges{south: true, east: true}, true
	case DirSW:
		return edges{south: true, west: true}, true
	default:
		return edges{}, false
	}
}

// Valid reports whether d is a known handle.
func (d Direction) Valid() bool {
	_, ok := d.edges()
	return ok
}

type ResizeOptions struct {
	// Margin is subtracted from every resized dimension.
	Margin float64
	// Spacing is the snap grid; zero means BaseSpacing.
	Spacing float64
}

// Resize computes new bounds for a handle drag from start to current (screen
// space). Only the axes the handle touches change. Unknown directions return
// bounds unchanged.
func Resize(dir Direction, start, current geom.Point, bounds geom.Rect, scale float64, opts ResizeOptions) geom.Rect {
	e, ok := dir.edges()
	if !ok {
		return bounds
	}
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = BaseSpacing
	}

	s := ClampScale(scale)
	dx := (current.X - start.X) / s
	dy := (current.Y - start.Y) / s

	out := bounds
	if e.east {
		out.Width = Snap(bounds.Width+dx, spacing)
	}
	if e.west {
		out.X = Snap(bounds.X+dx, spacing)
		out.Width = Snap(bounds.Width-dx, spacing)
	}
	if e.south {
		out.Height = Snap(bounds.Height+dy, spacing)
	}
	if e.north {
		out.Y = Snap(bounds.Y+dy, spacing)
		out.Height = Snap(bounds.Height-dy, spacing)
	}

	if e.east || e.west {
		out.Width = max(out.Width-opts.Margin, MinWidgetSize)
	}
	if e.north || e.south {
		out.Height = max(out.Height-opts.Margin, MinWidgetSize)
	}
	return out
}

// ResizeWidget applies Resize to a widget, starting from the bounds captured
// when the drag began. Node widgets keep a gutter for their outside handles.
func ResizeWidget(w document.Widget, dir Direction, start, current geom.Point, startBounds geom.Rect, scale, spacing float64) document.Widget {
	opts := ResizeOptions{Spacing: spacing}
	switch w.Kind {
	case document.KindNode:
		opts.Margin = NodeGutter
	case document.KindArrow:
		return w
	}
	return w.WithBounds(Resize(dir, start, current, startBounds, scale, opts))
}

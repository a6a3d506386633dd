package engine

import (
	"encoding/json"
	"math"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []any

// DrawCommand represents a single drawing operation in world coordinates.
// Relationship is set only on the polyline command of an arrow.
type DrawCommand struct {
	Op           string           `json:"op"`                    // "path" or "text"
	WidgetID     string           `json:"widgetId,omitempty"`    // For hit correlation
	Kind         document.Kind    `json:"kind,omitempty"`        // Widget kind that produced the command
	Path         []PathCommand    `json:"path,omitempty"`        // Path data for "path" ops
	Fill         string           `json:"fill,omitempty"`        // Fill color
	Stroke       string           `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth  float64          `json:"strokeWidth,omitempty"` // Stroke width
	Text         string           `json:"text,omitempty"`        // Label for "text" ops
	X            float64          `json:"x,omitempty"`           // Text anchor
	Y            float64          `json:"y,omitempty"`
	Relationship RelationshipType `json:"relationship,omitempty"`
}

// Scene is a render-ready view of a board. Transform maps world to screen and
// Inverse maps canvas pixels back to world coordinates.
type Scene struct {
	Transform []float64     `json:"transform"`
	Inverse   []float64     `json:"inverse"`
	Grid      GridStyle     `json:"grid"`
	Commands  []DrawCommand `json:"commands"`
}

type palette struct {
	fill, stroke string
}

var kindPalette = map[document.Kind]palette{
	document.KindSection:   {"#f4f1ea", "#b8ad94"},
	document.KindText:      {"#fff9c4", "#c9b458"},
	document.KindImage:     {"#e3f2fd", "#5c8fc4"},
	document.KindPDF:       {"#fdecea", "#c4645c"},
	document.KindURL:       {"#e8f5e9", "#5ca364"},
	document.KindBoardLink: {"#ede7f6", "#7e63b8"},
	document.KindNode:      {"#ffffff", "#333333"},
	document.KindArrow:     {"", "#444444"},
}

// DrawOrder returns widgets back to front: sections, then other positioned
// widgets, then arrows, each group in snapshot order.
func DrawOrder(widgets []document.Widget) []document.Widget {
	out := make([]document.Widget, 0, len(widgets))
	for _, w := range widgets {
		if w.IsSection() {
			out = append(out, w)
		}
	}
	for _, w := range widgets {
		if !w.IsSection() && !w.IsArrow() && w.Kind.Positioned() {
			out = append(out, w)
		}
	}
	for _, w := range widgets {
		if w.IsArrow() {
			out = append(out, w)
		}
	}
	return out
}

// CompileScene generates the draw commands for a board under vp.
func CompileScene(widgets []document.Widget, vp Viewport) Scene {
	vp = vp.Normalize()
	var commands []DrawCommand
	for _, w := range DrawOrder(widgets) {
		compileWidget(w, &commands)
	}
	return Scene{
		Transform: vp.Matrix().ToSlice(),
		Inverse:   vp.InverseMatrix().ToSlice(),
		Grid:      GridStyleFor(vp.Scale),
		Commands:  commands,
	}
}

func compileWidget(w document.Widget, commands *[]DrawCommand) {
	pal := kindPalette[w.Kind]

	if w.IsArrow() {
		if w.Arrow == nil || len(w.Arrow.Points) < 4 {
			return
		}
		*commands = append(*commands, DrawCommand{
			Op:           "path",
			WidgetID:     w.ID,
			Kind:         w.Kind,
			Path:         polylinePath(w.Arrow.Points),
			Stroke:       pal.stroke,
			StrokeWidth:  2,
			Relationship: Relationship(w.Arrow.ArrowHeads),
		})
		for _, h := range ArrowHeads(w.Arrow, DefaultHeadLength) {
			*commands = append(*commands, DrawCommand{
				Op:       "path",
				WidgetID: w.ID,
				Kind:     w.Kind,
				Path:     trianglePath(h.Points),
				Fill:     pal.stroke,
			})
		}
		if w.Arrow.Label != "" {
			at := LabelAnchor(w.Arrow.Points)
			*commands = append(*commands, DrawCommand{Op: "text", WidgetID: w.ID, Kind: w.Kind, Text: w.Arrow.Label, X: at.X, Y: at.Y})
		}
		return
	}

	b := w.Bounds()
	*commands = append(*commands, DrawCommand{
		Op:          "path",
		WidgetID:    w.ID,
		Kind:        w.Kind,
		Path:        rectPath(b),
		Fill:        pal.fill,
		Stroke:      pal.stroke,
		StrokeWidth: 1,
	})

	label := widgetLabel(w)
	if w.IsSection() {
		*commands = append(*commands, DrawCommand{Op: "text", WidgetID: w.ID, Kind: w.Kind, Text: label, X: b.X + 8, Y: b.Y - 8})
		return
	}
	c := b.Center()
	*commands = append(*commands, DrawCommand{Op: "text", WidgetID: w.ID, Kind: w.Kind, Text: label, X: c.X, Y: c.Y})
}

// widgetLabel picks the text shown for a widget: its title, the "text" field
// of its payload, or its kind.
func widgetLabel(w document.Widget) string {
	if w.Title != "" {
		return w.Title
	}
	if len(w.Data) > 0 {
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(w.Data, &payload); err == nil && payload.Text != "" {
			return payload.Text
		}
	}
	return string(w.Kind)
}

func rectPath(r geom.Rect) []PathCommand {
	return []PathCommand{
		{"M", r.Left(), r.Top()},
		{"L", r.Right(), r.Top()},
		{"L", r.Right(), r.Bottom()},
		{"L", r.Left(), r.Bottom()},
		{"Z"},
	}
}

func polylinePath(points []float64) []PathCommand {
	pts := pointList(points)
	path := make([]PathCommand, 0, len(pts))
	for i, p := range pts {
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, p.X, p.Y})
	}
	return path
}

func trianglePath(t [3]geom.Point) []PathCommand {
	return []PathCommand{
		{"M", t[0].X, t[0].Y},
		{"L", t[1].X, t[1].Y},
		{"L", t[2].X, t[2].Y},
		{"Z"},
	}
}

// HitTest returns the id of the topmost positioned widget containing the
// world point, or "". Arrows are not hit targets.
func HitTest(widgets []document.Widget, world geom.Point) string {
	order := DrawOrder(widgets)
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		if w.IsArrow() {
			continue
		}
		if w.Bounds().Contains(world.X, world.Y) {
			return w.ID
		}
	}
	return ""
}

// SelectionBounds returns the combined bounding box of the given widgets.
// Arrows contribute the box around their points. The bool is false when no
// id matched a widget with bounds.
func SelectionBounds(widgets []document.Widget, ids []string) (geom.Rect, bool) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var (
		result geom.Rect
		found  bool
	)
	for _, w := range widgets {
		if !want[w.ID] {
			continue
		}
		b, ok := w.Bounds(), true
		if w.IsArrow() {
			b, ok = pointsBounds(w.Arrow)
		}
		switch {
		case !ok:
		case !found:
			result, found = b, true
		default:
			result = result.Union(b)
		}
	}
	return result, found
}

func pointsBounds(a *document.ArrowData) (geom.Rect, bool) {
	if a == nil || len(a.Points) < 2 {
		return geom.Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pointList(a.Points) {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

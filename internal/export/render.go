package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/engine"
	"github.com/inamate/whiteboard/internal/geom"
)

const (
	DefaultWidth    = 1280
	DefaultHeight   = 800
	DefaultFontSize = 12.0
	MaxDimension    = 8192
	fitPadding      = 48.0
	// grids denser than this many screen pixels between dots are skipped
	minDotGap = 6.0
)

var (
	ErrTooManyWidgets = errors.New("too many widgets to export")
	ErrBadDimensions  = errors.New("image dimensions out of range")
)

type Options struct {
	Width      int
	Height     int
	FontSize   float64
	Background color.Color
	// Grid draws the snap grid behind the board.
	Grid       bool
	MaxWidgets int
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// FitViewport returns a viewport that centers every widget in a width×height
// image, never zooming in past 1.
func FitViewport(widgets []document.Widget, width, height int) engine.Viewport {
	ids := make([]string, 0, len(widgets))
	for _, w := range widgets {
		ids = append(ids, w.ID)
	}
	b, ok := engine.SelectionBounds(widgets, ids)
	if !ok || b.IsEmpty() || width <= 0 || height <= 0 {
		return engine.DefaultViewport()
	}

	availW := math.Max(float64(width)-2*fitPadding, 1)
	availH := math.Max(float64(height)-2*fitPadding, 1)
	s := engine.ClampScale(math.Min(1, math.Min(availW/b.Width, availH/b.Height)))

	return engine.Viewport{
		Scale: s,
		Offset: geom.Point{
			X: (float64(width)/s-b.Width)/2 - b.X,
			Y: (float64(height)/s-b.Height)/2 - b.Y,
		},
	}
}

// Render draws widgets as seen through vp. Widgets are drawn as given; callers
// that hold an unsettled board should pass it through engine.Settle first.
func Render(widgets []document.Widget, vp engine.Viewport, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	if opts.Width < 1 || opts.Height < 1 || opts.Width > MaxDimension || opts.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, opts.Width, opts.Height)
	}
	if opts.MaxWidgets > 0 && len(widgets) > opts.MaxWidgets {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyWidgets, len(widgets), opts.MaxWidgets)
	}

	f, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	vp = vp.Normalize()
	scene := engine.CompileScene(widgets, vp)

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()
	dc.SetFontFace(face)

	if opts.Grid {
		drawGrid(dc, vp, scene.Grid, opts.Width, opts.Height)
	}

	m := vp.Matrix()
	for _, cmd := range scene.Commands {
		switch cmd.Op {
		case "path":
			drawPath(dc, m, vp.Scale, cmd)
		case "text":
			drawText(dc, m, cmd)
		}
	}
	return dc.Image(), nil
}

func drawGrid(dc *gg.Context, vp engine.Viewport, style engine.GridStyle, width, height int) {
	if style.Spacing*vp.Scale < minDotGap {
		return
	}
	r := vp.VisibleWorldRect(float64(width), float64(height))
	m := vp.Matrix()

	dc.SetHexColor("#d0d0d0")
	for x := math.Floor(r.Left()/style.Spacing) * style.Spacing; x <= r.Right(); x += style.Spacing {
		for y := math.Floor(r.Top()/style.Spacing) * style.Spacing; y <= r.Bottom(); y += style.Spacing {
			p := m.TransformPoint(geom.Point{X: x, Y: y})
			dc.DrawPoint(p.X, p.Y, style.DotSize)
		}
	}
	dc.Fill()
}

func drawPath(dc *gg.Context, m geom.Matrix2D, scale float64, cmd engine.DrawCommand) {
	dc.NewSubPath()
	for _, seg := range cmd.Path {
		op, _ := seg[0].(string)
		switch op {
		case "M", "L":
			if len(seg) < 3 {
				continue
			}
			x, _ := seg[1].(float64)
			y, _ := seg[2].(float64)
			p := m.TransformPoint(geom.Point{X: x, Y: y})
			if op == "M" {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		case "Z":
			dc.ClosePath()
		}
	}

	if cmd.Fill != "" {
		dc.SetHexColor(cmd.Fill)
		if cmd.Stroke != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if cmd.Stroke != "" {
		dc.SetHexColor(cmd.Stroke)
		dc.SetLineWidth(math.Max(cmd.StrokeWidth*scale, 1))
		dc.Stroke()
	}
	dc.ClearPath()
}

func drawText(dc *gg.Context, m geom.Matrix2D, cmd engine.DrawCommand) {
	p := m.TransformPoint(geom.Point{X: cmd.X, Y: cmd.Y})
	dc.SetHexColor("#222222")
	if cmd.Kind == document.KindSection {
		dc.DrawStringAnchored(cmd.Text, p.X, p.Y, 0, 0)
		return
	}
	dc.DrawStringAnchored(cmd.Text, p.X, p.Y, 0.5, 0.5)
}

package geom

// Side identifies one edge of a rectangle.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// String returns the string representation of a Side.
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return s
	}
}

// Horizontal reports whether the side faces along the x axis.
func (s Side) Horizontal() bool {
	return s == Left || s == Right
}

// SideCenter returns the midpoint of the given edge.
func (r Rect) SideCenter(s Side) Point {
	switch s {
	case Top:
		return Point{r.X + r.Width/2, r.Y}
	case Bottom:
		return Point{r.X + r.Width/2, r.Y + r.Height}
	case Left:
		return Point{r.X, r.Y + r.Height/2}
	default:
		return Point{r.X + r.Width, r.Y + r.Height/2}
	}
}

// SideCenters returns the four edge midpoints in top, bottom, left, right order.
func (r Rect) SideCenters() [4]Point {
	return [4]Point{
		r.SideCenter(Top),
		r.SideCenter(Bottom),
		r.SideCenter(Left),
		r.SideCenter(Right),
	}
}

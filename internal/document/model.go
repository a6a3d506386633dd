package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/inamate/whiteboard/internal/geom"
)

var (
	ErrInvalidKind  = errors.New("invalid widget kind")
	ErrDuplicateID  = errors.New("duplicate widget id")
	ErrMissingID    = errors.New("widget id is required")
	ErrSelfMember   = errors.New("section lists itself as a member")
	ErrNestedMember = errors.New("section lists another section as a member")
)

type Kind string

const (
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindPDF       Kind = "pdf"
	KindURL       Kind = "url"
	KindBoardLink Kind = "boardLink"
	KindSection   Kind = "section"
	KindArrow     Kind = "arrow"
	KindNode      Kind = "node"
)

// Valid reports whether k is one of the known widget kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindImage, KindPDF, KindURL, KindBoardLink, KindSection, KindArrow, KindNode:
		return true
	default:
		return false
	}
}

// Positioned reports whether widgets of this kind carry their own bounds.
// Arrows derive their geometry from the widgets they connect.
func (k Kind) Positioned() bool {
	switch k {
	case KindText, KindImage, KindPDF, KindURL, KindBoardLink, KindSection, KindNode:
		return true
	case KindArrow:
		return false
	default:
		return false
	}
}

// DefaultSize is substituted when a widget has no width or height.
func (k Kind) DefaultSize() (width, height float64) {
	switch k {
	case KindNode:
		return 100, 30
	default:
		return 100, 50
	}
}

type Widget struct {
	ID     string  `json:"id" yaml:"id"`
	Kind   Kind    `json:"type" yaml:"type"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`

	Section *SectionData `json:"section,omitempty" yaml:"section,omitempty"`
	Arrow   *ArrowData   `json:"arrow,omitempty" yaml:"arrow,omitempty"`

	// Data is the kind-specific payload owned by the host (text content,
	// image source, embed url). The engine never reads it.
	Data json.RawMessage `json:"data,omitempty" yaml:"-"`
}

type SectionData struct {
	MemberIDs []string `json:"memberIds" yaml:"memberIds"`
}

type ArrowHeads struct {
	Left  bool `json:"left" yaml:"left"`
	Right bool `json:"right" yaml:"right"`
}

type ArrowData struct {
	From       string     `json:"from" yaml:"from"`
	To         string     `json:"to" yaml:"to"`
	Points     []float64  `json:"points" yaml:"points,flow"`
	ArrowTipX  float64    `json:"arrowTipX" yaml:"arrowTipX"`
	ArrowTipY  float64    `json:"arrowTipY" yaml:"arrowTipY"`
	ArrowHeads ArrowHeads `json:"arrowHeads" yaml:"arrowHeads"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
}

// Pending reports whether either endpoint is still unset.
func (a *ArrowData) Pending() bool {
	return a.From == "" || a.To == ""
}

// Bounds returns the widget rectangle, substituting the kind default for a
// missing width or height.
func (w Widget) Bounds() geom.Rect {
	dw, dh := w.Kind.DefaultSize()
	r := geom.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
	if r.Width <= 0 {
		r.Width = dw
	}
	if r.Height <= 0 {
		r.Height = dh
	}
	return r
}

// WithBounds returns a copy of w moved and sized to r.
func (w Widget) WithBounds(r geom.Rect) Widget {
	c := w.Clone()
	c.X, c.Y, c.Width, c.Height = r.X, r.Y, r.Width, r.Height
	return c
}

func (w Widget) IsSection() bool { return w.Kind == KindSection }
func (w Widget) IsArrow() bool   { return w.Kind == KindArrow }

// Members returns the section member ids, or nil for other kinds.
func (w Widget) Members() []string {
	if w.Section == nil {
		return nil
	}
	return w.Section.MemberIDs
}

// HasMember reports whether id is listed in the section's member set.
func (w Widget) HasMember(id string) bool {
	return slices.Contains(w.Members(), id)
}

// Clone returns a deep copy so callers can modify the result freely.
func (w Widget) Clone() Widget {
	c := w
	if w.Section != nil {
		s := *w.Section
		s.MemberIDs = slices.Clone(w.Section.MemberIDs)
		c.Section = &s
	}
	if w.Arrow != nil {
		a := *w.Arrow
		a.Points = slices.Clone(w.Arrow.Points)
		c.Arrow = &a
	}
	if w.Data != nil {
		c.Data = slices.Clone(w.Data)
	}
	return c
}

// CloneWidgets deep copies a widget slice.
func CloneWidgets(ws []Widget) []Widget {
	if ws == nil {
		return nil
	}
	out := make([]Widget, len(ws))
	for i := range ws {
		out[i] = ws[i].Clone()
	}
	return out
}

type Board struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Widgets []Widget `json:"widgets" yaml:"widgets"`
}

// Find looks up a widget by id.
func (b *Board) Find(id string) (Widget, bool) {
	for _, w := range b.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Index maps widget ids to their position in Widgets.
func (b *Board) Index() map[string]int {
	idx := make(map[string]int, len(b.Widgets))
	for i, w := range b.Widgets {
		idx[w.ID] = i
	}
	return idx
}

// Clone deep copies the board.
func (b *Board) Clone() *Board {
	return &Board{ID: b.ID, Name: b.Name, Widgets: CloneWidgets(b.Widgets)}
}

// Validate checks the structural invariants of a board: known kinds, unique
// ids, and no section listing itself or another section as a member. Member
// ids that do not resolve are allowed and treated as absent.
func (b *Board) Validate() error {
	seen := make(map[string]Kind, len(b.Widgets))
	for _, w := range b.Widgets {
		if w.ID == "" {
			return ErrMissingID
		}
		if !w.Kind.Valid() {
			return fmt.Errorf("widget %s: %w: %q", w.ID, ErrInvalidKind, w.Kind)
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, w.ID)
		}
		seen[w.ID] = w.Kind
	}

	for _, w := range b.Widgets {
		for _, m := range w.Members() {
			if m == w.ID {
				return fmt.Errorf("section %s: %w", w.ID, ErrSelfMember)
			}
			if seen[m] == KindSection {
				return fmt.Errorf("section %s member %s: %w", w.ID, m, ErrNestedMember)
			}
		}
	}
	return nil
}

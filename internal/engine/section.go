package engine

import (
	"math"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/geom"
)

// HysteresisMargin is how far past the section edge an existing member may
// stray before it is dropped.
const HysteresisMargin = 100.0

// memberCandidate reports whether w can ever be a member of section.
func memberCandidate(w, section document.Widget) bool {
	if w.ID == section.ID {
		return false
	}
	switch w.Kind {
	case document.KindSection, document.KindArrow:
		return false
	case document.KindText, document.KindImage, document.KindPDF, document.KindURL,
		document.KindBoardLink, document.KindNode:
		return true
	default:
		return false
	}
}

// IsCompletelyContained reports whether shape lies entirely inside section.
// Sections and arrows are never contained.
func IsCompletelyContained(shape, section document.Widget) bool {
	if !memberCandidate(shape, section) {
		return false
	}
	return section.Bounds().ContainsRect(shape.Bounds())
}

// ComputeMembers returns the ids of widgets that belong to section, in
// snapshot order. A widget belongs if it is fully contained, or if it is
// already a member and still inside the section grown by HysteresisMargin.
func ComputeMembers(section document.Widget, widgets []document.Widget) []string {
	bounds := section.Bounds()
	retain := bounds.Expand(HysteresisMargin)

	members := []string{}
	for _, w := range widgets {
		if !memberCandidate(w, section) {
			continue
		}
		wb := w.Bounds()
		if bounds.ContainsRect(wb) || (section.HasMember(w.ID) && retain.ContainsRect(wb)) {
			members = append(members, w.ID)
		}
	}
	return members
}

// SameMembers compares two member lists as sets.
func SameMembers(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, id := range a {
		as[id] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, id := range b {
		if _, ok := as[id]; !ok {
			return false
		}
		bs[id] = struct{}{}
	}
	return len(as) == len(bs)
}

// UpdateMembership recomputes section's members against widgets. The bool is
// false when the member set did not change, in which case section is returned
// as is.
func UpdateMembership(section document.Widget, widgets []document.Widget) (document.Widget, bool) {
	if !section.IsSection() {
		return section, false
	}
	members := ComputeMembers(section, widgets)
	if SameMembers(section.Members(), members) {
		return section, false
	}
	out := section.Clone()
	out.Section = &document.SectionData{MemberIDs: members}
	return out, true
}

// RecomputeAllMembers refreshes every section on the board and returns the new
// widget list along with the ids of sections whose member set changed.
func RecomputeAllMembers(widgets []document.Widget) ([]document.Widget, []string) {
	out := document.CloneWidgets(widgets)
	var changed []string
	for i, w := range out {
		if !w.IsSection() {
			continue
		}
		if next, ok := UpdateMembership(w, out); ok {
			out[i] = next
			changed = append(changed, w.ID)
		}
	}
	return out, changed
}

// PropagateMove shifts section and its members by (dx, dy), snapping each new
// position. Other widgets pass through unchanged. Callers pass the widgets and
// section as they were when the drag started, with the total drag delta.
func PropagateMove(section document.Widget, dx, dy float64, widgets []document.Widget, spacing float64) []document.Widget {
	out := make([]document.Widget, len(widgets))
	for i, w := range widgets {
		c := w.Clone()
		switch {
		case w.ID == section.ID:
			c.X = Snap(section.X+dx, spacing)
			c.Y = Snap(section.Y+dy, spacing)
		case section.HasMember(w.ID) && memberCandidate(w, section):
			c.X = Snap(w.X+dx, spacing)
			c.Y = Snap(w.Y+dy, spacing)
		}
		out[i] = c
	}
	return out
}

func resizeFactor(newSize, oldSize float64) float64 {
	if oldSize <= 0 || math.IsNaN(oldSize) || math.IsInf(oldSize, 0) {
		return 1
	}
	f := newSize / oldSize
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	return f
}

// PropagateResize replaces section's bounds with next and maps each member
// from the old section frame into the new one. Positions are snapped; sizes
// are snapped with a floor of one grid cell.
func PropagateResize(section document.Widget, next geom.Rect, widgets []document.Widget, spacing float64) []document.Widget {
	sx := resizeFactor(next.Width, section.Width)
	sy := resizeFactor(next.Height, section.Height)

	out := make([]document.Widget, len(widgets))
	for i, w := range widgets {
		switch {
		case w.ID == section.ID:
			out[i] = w.WithBounds(next)
		case section.HasMember(w.ID) && memberCandidate(w, section):
			b := w.Bounds()
			out[i] = w.WithBounds(geom.Rect{
				X:      Snap(next.X+(b.X-section.X)*sx, spacing),
				Y:      Snap(next.Y+(b.Y-section.Y)*sy, spacing),
				Width:  max(Snap(b.Width*sx, spacing), spacing),
				Height: max(Snap(b.Height*sy, spacing), spacing),
			})
		default:
			out[i] = w.Clone()
		}
	}
	return out
}

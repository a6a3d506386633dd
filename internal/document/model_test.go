package document

import (
	"errors"
	"testing"

	"github.com/inamate/whiteboard/internal/geom"
)

func TestWidgetBoundsDefaults(t *testing.T) {
	tests := []struct {
		name string
		w    Widget
		want geom.Rect
	}{
		{"explicit size", Widget{Kind: KindText, X: 1, Y: 2, Width: 30, Height: 40}, geom.Rect{X: 1, Y: 2, Width: 30, Height: 40}},
		{"missing size", Widget{Kind: KindImage, X: 5, Y: 6}, geom.Rect{X: 5, Y: 6, Width: 100, Height: 50}},
		{"node default", Widget{Kind: KindNode}, geom.Rect{Width: 100, Height: 30}},
		{"negative height", Widget{Kind: KindText, Width: 20, Height: -1}, geom.Rect{Width: 20, Height: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestKindPositioned(t *testing.T) {
	for _, k := range []Kind{KindText, KindImage, KindPDF, KindURL, KindBoardLink, KindSection, KindNode} {
		if !k.Positioned() {
			t.Errorf("%s should be positioned", k)
		}
	}
	if KindArrow.Positioned() {
		t.Error("arrow should not be positioned")
	}
	if Kind("rectangle").Valid() {
		t.Error("unknown kind reported valid")
	}
}

func TestWidgetCloneIsDeep(t *testing.T) {
	w := Widget{
		ID:      "sec",
		Kind:    KindSection,
		Section: &SectionData{MemberIDs: []string{"a"}},
		Arrow:   &ArrowData{Points: []float64{1, 2, 3, 4}},
		Data:    []byte(`{}`),
	}
	c := w.Clone()
	c.Section.MemberIDs[0] = "changed"
	c.Arrow.Points[0] = 99
	c.Data[0] = '['

	if w.Section.MemberIDs[0] != "a" {
		t.Error("clone shares member ids")
	}
	if w.Arrow.Points[0] != 1 {
		t.Error("clone shares arrow points")
	}
	if string(w.Data) != "{}" {
		t.Error("clone shares data")
	}
}

func TestBoardValidate(t *testing.T) {
	tests := []struct {
		name    string
		widgets []Widget
		wantErr error
	}{
		{
			name: "valid with stale member",
			widgets: []Widget{
				{ID: "s", Kind: KindSection, Section: &SectionData{MemberIDs: []string{"t", "gone"}}},
				{ID: "t", Kind: KindText},
			},
		},
		{
			name:    "unknown kind",
			widgets: []Widget{{ID: "x", Kind: "blob"}},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "duplicate",
			widgets: []Widget{{ID: "x", Kind: KindText}, {ID: "x", Kind: KindNode}},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "self member",
			widgets: []Widget{{ID: "s", Kind: KindSection, Section: &SectionData{MemberIDs: []string{"s"}}}},
			wantErr: ErrSelfMember,
		},
		{
			name: "nested section",
			widgets: []Widget{
				{ID: "s1", Kind: KindSection, Section: &SectionData{MemberIDs: []string{"s2"}}},
				{ID: "s2", Kind: KindSection},
			},
			wantErr: ErrNestedMember,
		},
		{
			name:    "missing id",
			widgets: []Widget{{Kind: KindText}},
			wantErr: ErrMissingID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Board{ID: "b", Widgets: tt.widgets}
			err := b.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoardFindAndIndex(t *testing.T) {
	b := &Board{Widgets: []Widget{{ID: "a", Kind: KindText}, {ID: "b", Kind: KindNode}}}
	if w, ok := b.Find("b"); !ok || w.Kind != KindNode {
		t.Errorf("Find(b) = %+v, %v", w, ok)
	}
	if _, ok := b.Find("zzz"); ok {
		t.Error("Find of missing id succeeded")
	}
	if idx := b.Index(); idx["a"] != 0 || idx["b"] != 1 {
		t.Errorf("Index() = %v", idx)
	}
}

func TestSampleBoardIsValid(t *testing.T) {
	b := NewSampleBoard("board_playground")
	if err := b.Validate(); err != nil {
		t.Fatalf("sample board invalid: %v", err)
	}

	arrows := 0
	for _, w := range b.Widgets {
		if w.IsArrow() {
			arrows++
			if _, ok := b.Find(w.Arrow.From); !ok {
				t.Errorf("arrow %s from %s does not resolve", w.ID, w.Arrow.From)
			}
			if _, ok := b.Find(w.Arrow.To); !ok {
				t.Errorf("arrow %s to %s does not resolve", w.ID, w.Arrow.To)
			}
		}
	}
	if arrows == 0 {
		t.Error("sample board has no arrows")
	}
}

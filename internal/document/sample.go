package document

import (
	"encoding/json"

	"github.com/inamate/whiteboard/internal/typeid"
)

// NewSampleBoard builds the playground board: a section holding two notes, a
// few loose widgets, and arrows connecting them. Arrow points are left empty
// and are filled in by the router when the board is loaded.
func NewSampleBoard(boardID string) *Board {
	sectionID := typeid.NewSectionID()
	noteID := typeid.NewWidgetID()
	imageID := typeid.NewWidgetID()
	nodeID := typeid.NewWidgetID()
	urlID := typeid.NewWidgetID()
	pdfID := typeid.NewWidgetID()
	linkID := typeid.NewWidgetID()

	return &Board{
		ID:   boardID,
		Name: "Playground",
		Widgets: []Widget{
			{
				ID:     sectionID,
				Kind:   KindSection,
				X:      96,
				Y:      96,
				Width:  480,
				Height: 336,
				Title:  "Ideas",
				Section: &SectionData{
					MemberIDs: []string{noteID, imageID},
				},
			},
			{
				ID:     noteID,
				Kind:   KindText,
				X:      144,
				Y:      144,
				Width:  192,
				Height: 96,
				Data:   json.RawMessage(`{"text":"Drag me around"}`),
			},
			{
				ID:     imageID,
				Kind:   KindImage,
				X:      384,
				Y:      240,
				Width:  144,
				Height: 144,
				Data:   json.RawMessage(`{"src":"/static/sample.png"}`),
			},
			{
				ID:    nodeID,
				Kind:  KindNode,
				X:     768,
				Y:     144,
				Title: "Next step",
			},
			{
				ID:     urlID,
				Kind:   KindURL,
				X:      768,
				Y:      432,
				Width:  240,
				Height: 144,
				Data:   json.RawMessage(`{"url":"https://go.dev"}`),
			},
			{
				ID:     pdfID,
				Kind:   KindPDF,
				X:      96,
				Y:      576,
				Width:  192,
				Height: 240,
			},
			{
				ID:     linkID,
				Kind:   KindBoardLink,
				X:      432,
				Y:      576,
				Width:  192,
				Height: 96,
				Title:  "Roadmap",
			},
			{
				ID:   typeid.NewArrowID(),
				Kind: KindArrow,
				Arrow: &ArrowData{
					From:       noteID,
					To:         nodeID,
					ArrowHeads: ArrowHeads{Right: true},
				},
			},
			{
				ID:   typeid.NewArrowID(),
				Kind: KindArrow,
				Arrow: &ArrowData{
					From:       nodeID,
					To:         urlID,
					ArrowHeads: ArrowHeads{Left: true, Right: true},
					Label:      "links to",
				},
			},
		},
	}
}

package session

import (
	"fmt"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/engine"
)

// PlaygroundBoardID is served from the built-in sample board instead of disk.
const PlaygroundBoardID = "board_playground"

// Loader returns the board a new session starts from.
type Loader func(boardID string) (*document.Board, error)

// FixtureLoader serves the playground board from memory and every other id
// from <dir>/<id>.yaml.
func FixtureLoader(dir string) Loader {
	return func(boardID string) (*document.Board, error) {
		if boardID == PlaygroundBoardID {
			return document.NewSampleBoard(boardID), nil
		}
		path, err := document.FixturePath(dir, boardID)
		if err != nil {
			return nil, err
		}
		b, err := document.LoadFixture(path)
		if err != nil {
			return nil, fmt.Errorf("load board %s: %w", boardID, err)
		}
		if b.ID == "" {
			b.ID = boardID
		}
		return b, nil
	}
}

// Prepare returns a settled copy of b.
func Prepare(b *document.Board) *document.Board {
	out := b.Clone()
	out.Widgets = engine.Settle(out.Widgets)
	return out
}

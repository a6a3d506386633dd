package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrBadFixtureName is returned for board ids that cannot name a fixture file.
var ErrBadFixtureName = errors.New("invalid fixture name")

// fixtureWidget carries the opaque payload as a YAML mapping, which is
// converted to JSON on load.
type fixtureWidget struct {
	Widget `yaml:",inline"`
	Data   map[string]any `yaml:"data,omitempty"`
}

type fixtureBoard struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Widgets []fixtureWidget `yaml:"widgets"`
}

// ParseFixture decodes a YAML board description and validates it.
func ParseFixture(data []byte) (*Board, error) {
	var fb fixtureBoard
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return nil, fmt.Errorf("failed to parse board fixture: %w", err)
	}

	b := &Board{ID: fb.ID, Name: fb.Name, Widgets: make([]Widget, 0, len(fb.Widgets))}
	for _, fw := range fb.Widgets {
		w := fw.Widget
		if len(fw.Data) > 0 {
			raw, err := json.Marshal(fw.Data)
			if err != nil {
				return nil, fmt.Errorf("widget %s data: %w", w.ID, err)
			}
			w.Data = raw
		}
		b.Widgets = append(b.Widgets, w)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board fixture: %w", err)
	}
	return b, nil
}

// MarshalFixture encodes a board in the fixture format.
func MarshalFixture(b *Board) ([]byte, error) {
	fb := fixtureBoard{ID: b.ID, Name: b.Name, Widgets: make([]fixtureWidget, 0, len(b.Widgets))}
	for _, w := range b.Widgets {
		fw := fixtureWidget{Widget: w}
		if len(w.Data) > 0 {
			if err := json.Unmarshal(w.Data, &fw.Data); err != nil {
				return nil, fmt.Errorf("widget %s data: %w", w.ID, err)
			}
		}
		fb.Widgets = append(fb.Widgets, fw)
	}
	return yaml.Marshal(fb)
}

// LoadFixture reads and parses the fixture at path.
func LoadFixture(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

// FixturePath returns the fixture file for boardID inside dir. Ids containing
// path elements are rejected.
func FixturePath(dir, boardID string) (string, error) {
	if boardID == "" || boardID == "." || boardID == ".." ||
		strings.ContainsAny(boardID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadFixtureName, boardID)
	}
	return filepath.Join(dir, boardID+".yaml"), nil
}

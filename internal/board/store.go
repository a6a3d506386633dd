package board

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/inamate/whiteboard/internal/document"
)

var (
	ErrWidgetNotFound = errors.New("widget not found")
	ErrWidgetExists   = errors.New("widget already exists")
	ErrUnknownOp      = errors.New("unknown operation type")
	ErrInvalidOp      = errors.New("invalid operation")
	ErrWrongKind      = errors.New("operation does not apply to widget kind")
)

// maxLog bounds the in-memory op history.
const maxLog = 4096

// Store holds the canonical board and applies ops to it.
type Store struct {
	mu    sync.RWMutex
	board *document.Board
	seq   int64
	log   []Op
}

// NewStore creates a store owning a copy of b.
func NewStore(b *document.Board) *Store {
	return &Store{board: b.Clone()}
}

// Snapshot returns a deep copy of the current widget list.
func (s *Store) Snapshot() []document.Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.CloneWidgets(s.board.Widgets)
}

// Board returns a deep copy of the board.
func (s *Store) Board() *document.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone()
}

// Seq returns the sequence number of the last applied op.
func (s *Store) Seq() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Since returns the ops applied after seq that are still in the log.
func (s *Store) Since(seq int64) []Op {
	s.mu.RLock()
	defer s.mu.RUnlock()
	first := s.seq - int64(len(s.log))
	if seq < first {
		seq = first
	}
	if seq >= s.seq {
		return nil
	}
	return slices.Clone(s.log[seq-first:])
}

// Replace swaps the whole board after validating it.
func (s *Store) Replace(b *document.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b.Clone()
	s.log = nil
	return nil
}

// Apply applies one op and returns its sequence number.
func (s *Store) Apply(op Op) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.applyLocked(op); err != nil {
		return 0, err
	}
	s.seq++
	s.log = append(s.log, op)
	if len(s.log) > maxLog {
		s.log = slices.Clone(s.log[len(s.log)-maxLog:])
	}
	return s.seq, nil
}

// ApplyAll applies ops in order, stopping at the first failure. It returns
// the sequence number after the last applied op.
func (s *Store) ApplyAll(ops []Op) (int64, error) {
	seq := s.Seq()
	for _, op := range ops {
		n, err := s.Apply(op)
		if err != nil {
			return seq, fmt.Errorf("%s %s: %w", op.Type, op.WidgetID, err)
		}
		seq = n
	}
	return seq, nil
}

func (s *Store) applyLocked(op Op) error {
	switch op.Type {
	case OpWidgetCreate:
		return s.applyCreate(op)
	case OpWidgetUpdate:
		return s.applyUpdate(op)
	case OpWidgetDelete:
		return s.applyDelete(op)
	case OpWidgetBounds:
		return s.applyBounds(op)
	case OpSectionMembers:
		return s.applyMembers(op)
	case OpArrowRoute:
		return s.applyRoute(op)
	case OpArrowEndpoints:
		return s.applyEndpoints(op)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, op.Type)
	}
}

func (s *Store) find(id string) (int, error) {
	for i, w := range s.board.Widgets {
		if w.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
}

func (s *Store) applyCreate(op Op) error {
	if op.Widget == nil || op.Widget.ID == "" || !op.Widget.Kind.Valid() {
		return fmt.Errorf("%w: create needs a widget with id and kind", ErrInvalidOp)
	}
	if _, err := s.find(op.Widget.ID); err == nil {
		return fmt.Errorf("%w: %s", ErrWidgetExists, op.Widget.ID)
	}
	s.board.Widgets = append(s.board.Widgets, op.Widget.Clone())
	return nil
}

func (s *Store) applyUpdate(op Op) error {
	if op.Widget == nil {
		return fmt.Errorf("%w: update needs a widget", ErrInvalidOp)
	}
	i, err := s.find(op.WidgetID)
	if err != nil {
		return err
	}
	w := op.Widget.Clone()
	w.ID = op.WidgetID
	if !w.Kind.Valid() {
		return fmt.Errorf("%w: kind %q", ErrInvalidOp, w.Kind)
	}
	s.board.Widgets[i] = w
	return nil
}

func (s *Store) applyDelete(op Op) error {
	i, err := s.find(op.WidgetID)
	if err != nil {
		return err
	}
	s.board.Widgets = slices.Delete(s.board.Widgets, i, i+1)

	for j, w := range s.board.Widgets {
		if w.HasMember(op.WidgetID) {
			w = w.Clone()
			w.Section.MemberIDs = slices.DeleteFunc(w.Section.MemberIDs, func(id string) bool {
				return id == op.WidgetID
			})
			s.board.Widgets[j] = w
		}
	}
	return nil
}

func (s *Store) applyBounds(op Op) error {
	if op.Bounds == nil || !op.Bounds.IsFinite() {
		return fmt.Errorf("%w: bounds missing or not finite", ErrInvalidOp)
	}
	i, err := s.find(op.WidgetID)
	if err != nil {
		return err
	}
	w := s.board.Widgets[i]
	if !w.Kind.Positioned() {
		return fmt.Errorf("%w: %s", ErrWrongKind, w.Kind)
	}
	s.board.Widgets[i] = w.WithBounds(*op.Bounds)
	return nil
}

func (s *Store) applyMembers(op Op) error {
	if op.Members == nil {
		return fmt.Errorf("%w: members missing", ErrInvalidOp)
	}
	i, err := s.find(op.WidgetID)
	if err != nil {
		return err
	}
	w := s.board.Widgets[i]
	if !w.IsSection() {
		return fmt.Errorf("%w: %s", ErrWrongKind, w.Kind)
	}
	if slices.Contains(op.Members.MemberIDs, w.ID) {
		return fmt.Errorf("%w: section %s cannot contain itself", ErrInvalidOp, w.ID)
	}
	w = w.Clone()
	w.Section = &document.SectionData{MemberIDs: slices.Clone(op.Members.MemberIDs)}
	s.board.Widgets[i] = w
	return nil
}

func (s *Store) applyRoute(op Op) error {
	if op.Route == nil || len(op.Route.Points) < 4 || len(op.Route.Points)%2 != 0 {
		return fmt.Errorf("%w: route needs an even number of points, at least 4", ErrInvalidOp)
	}
	i, err := s.find(op.WidgetID)
	if err != nil {
		return err
	}
	w := s.board.Widgets[i].Clone()
	if w.Arrow == nil {
		return fmt.Errorf("%w: %s", ErrWrongKind, w.Kind)
	}
	w.Arrow.Points = slices.Clone(op.Route.Points)
	w.Arrow.ArrowTipX = op.Route.ArrowTipX
	w.Arrow.ArrowTipY = op.Route.ArrowTipY
	s.board.Widgets[i] = w
	return nil
}

func (s *Store) applyEndpoints(op Op) error {
	if op.Endpoints == nil {
		return fmt.Errorf("%w: endpoints missing", ErrInvalidOp)
	}
	i, err := s.find(op.WidgetID)
	if err != nil {
		return err
	}
	w := s.board.Widgets[i].Clone()
	if w.Arrow == nil {
		return fmt.Errorf("%w: %s", ErrWrongKind, w.Kind)
	}
	w.Arrow.From = op.Endpoints.From
	w.Arrow.To = op.Endpoints.To
	s.board.Widgets[i] = w
	return nil
}

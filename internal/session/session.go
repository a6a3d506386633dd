package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/inamate/whiteboard/internal/board"
	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/engine"
	"github.com/inamate/whiteboard/internal/typeid"
)

type Options struct {
	Clock    clockwork.Clock
	Debounce time.Duration
	Logger   *slog.Logger
}

// Session is one user's editing session: an engine and the board it edits.
// All methods must be called from a single goroutine.
type Session struct {
	ID     string
	engine *engine.Engine
	store  *board.Store
	logger *slog.Logger
}

// New starts a session on b. Arrows are routed and section members
// recomputed before the first sync.
func New(b *document.Board, opts Options) *Session {
	id := typeid.NewSessionID()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", id, "board", b.ID)

	s := &Session{
		ID: id,
		engine: engine.New(engine.Options{
			Clock:    opts.Clock,
			Debounce: opts.Debounce,
			Logger:   logger,
		}),
		store:  board.NewStore(Prepare(b)),
		logger: logger,
	}
	return s
}

func (s *Session) Store() *board.Store    { return s.store }
func (s *Session) Engine() *engine.Engine { return s.engine }

// Start returns the greeting sent when a client connects.
func (s *Session) Start(clientID string) []Message {
	b := s.store.Board()
	return []Message{
		newMessage(TypeWelcome, s.ID, s.store.Seq(), WelcomePayload{
			SessionID: s.ID,
			ClientID:  clientID,
			BoardID:   b.ID,
		}),
		s.sync(),
	}
}

// Handle processes one client message and returns the replies.
func (s *Session) Handle(msg Message) []Message {
	switch msg.Type {
	case TypePointer:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail(CodeBadPayload, fmt.Errorf("decode pointer: %w", err))
		}
		return s.pointer(p)

	case TypeWheel:
		var ev engine.WheelEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return s.fail(CodeBadPayload, fmt.Errorf("decode wheel: %w", err))
		}
		s.engine.Wheel(ev)
		return []Message{s.viewport()}

	case TypeZoom:
		var p ZoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail(CodeBadPayload, fmt.Errorf("decode zoom: %w", err))
		}
		if _, err := s.engine.Zoom(p.Direction); err != nil {
			return s.fail(CodeRejected, err)
		}
		return []Message{s.viewport()}

	case TypeTool:
		var p ToolPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail(CodeBadPayload, fmt.Errorf("decode tool: %w", err))
		}
		if err := s.engine.SetTool(p.Tool); err != nil {
			return s.fail(CodeRejected, err)
		}
		s.logger.Debug("tool changed", "tool", p.Tool)
		return nil

	case TypeReplace:
		var p ReplacePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail(CodeBadPayload, fmt.Errorf("decode board: %w", err))
		}
		return s.replace(&p.Board)

	default:
		return s.fail(CodeUnknownType, fmt.Errorf("unknown message type %q", msg.Type))
	}
}

// Tick flushes debounced membership recomputes.
func (s *Session) Tick() []Message {
	return s.apply(s.engine.Tick(s.store.Snapshot()))
}

func (s *Session) pointer(p PointerPayload) []Message {
	before := s.engine.Viewport()
	widgets := s.store.Snapshot()

	var ops []board.Op
	switch p.Phase {
	case PhaseDown:
		ops = s.engine.PointerDown(p.PointerEvent, widgets)
	case PhaseMove:
		ops = s.engine.PointerMove(p.PointerEvent, widgets)
	case PhaseUp:
		ops = s.engine.PointerUp(p.PointerEvent, widgets)
	default:
		return s.fail(CodeBadPayload, fmt.Errorf("unknown pointer phase %q", p.Phase))
	}

	out := s.apply(ops)
	if s.engine.Viewport() != before {
		out = append(out, s.viewport())
	}
	return out
}

func (s *Session) replace(b *document.Board) []Message {
	if err := b.Validate(); err != nil {
		return s.fail(CodeRejected, err)
	}
	if b.ID == "" {
		b.ID = s.store.Board().ID
	}
	s.engine.CancelArrow()
	next := Prepare(b)
	if err := s.store.Replace(next); err != nil {
		return s.fail(CodeRejected, err)
	}
	s.engine.ScheduleAllSections(next.Widgets)
	s.logger.Info("board replaced", "widgets", len(next.Widgets))
	return []Message{s.sync()}
}

func (s *Session) apply(ops []board.Op) []Message {
	if len(ops) == 0 {
		return nil
	}
	seq, err := s.store.ApplyAll(ops)
	if err != nil {
		// the store may have applied a prefix of ops, so resend the board
		s.logger.Warn("apply ops", "error", err)
		return append(s.fail(CodeRejected, err), s.sync())
	}
	return []Message{newMessage(TypeOpApply, s.ID, seq, OpApplyPayload{Ops: ops})}
}

func (s *Session) sync() Message {
	return newMessage(TypeSync, s.ID, s.store.Seq(), SyncPayload{
		Board:    s.store.Board(),
		Viewport: s.engine.Viewport(),
		Tool:     s.engine.Tool(),
	})
}

func (s *Session) viewport() Message {
	return newMessage(TypeViewport, s.ID, s.store.Seq(), ViewportPayload{
		Viewport: s.engine.Viewport(),
		Spacing:  s.engine.Spacing(),
	})
}

func (s *Session) fail(code string, err error) []Message {
	s.logger.Debug("message rejected", "code", code, "error", err)
	return []Message{newMessage(TypeError, s.ID, s.store.Seq(), ErrorPayload{
		Code:    code,
		Message: err.Error(),
	})}
}

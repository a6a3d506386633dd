package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/engine"
)

const maxUploadSize = 8 << 20 // 8MB

// PNGRequest is the body of POST /export/png. A nil viewport frames the
// whole board.
type PNGRequest struct {
	Board    document.Board   `json:"board"`
	Viewport *engine.Viewport `json:"viewport,omitempty"`
	Width    int              `json:"width,omitempty"`
	Height   int              `json:"height,omitempty"`
	Grid     bool             `json:"grid,omitempty"`
}

type Handler struct {
	maxWidgets int
}

func NewHandler(maxWidgets int) *Handler {
	return &Handler{maxWidgets: maxWidgets}
}

// ExportPNG handles POST /export/png.
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var req PNGRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Board.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("invalid board: %v", err), http.StatusBadRequest)
		return
	}

	data, err := h.renderPNG(&req)
	switch {
	case errors.Is(err, ErrTooManyWidgets):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	case errors.Is(err, ErrBadDimensions):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		slog.Error("render png", "board", req.Board.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, fileName(req.Board)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)

	slog.Info("export complete", "board", req.Board.ID, "widgets", len(req.Board.Widgets), "size", len(data))
}

func (h *Handler) renderPNG(req *PNGRequest) ([]byte, error) {
	opts := Options{
		Width:      req.Width,
		Height:     req.Height,
		Grid:       req.Grid,
		MaxWidgets: h.maxWidgets,
	}.withDefaults()

	widgets := engine.Settle(req.Board.Widgets)
	vp := FitViewport(widgets, opts.Width, opts.Height)
	if req.Viewport != nil {
		vp = *req.Viewport
	}

	img, err := Render(widgets, vp, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func fileName(b document.Board) string {
	name := b.Name
	if name == "" {
		name = b.ID
	}
	if name == "" {
		name = "board"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}

package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/model"
	cs "github.com/dasdy/monoframe/web/components"
)

// BuildFrameRenderContext replays the frames of a session up to and including
// seq and returns the resulting display content.
func (s *ServerHandler) BuildFrameRenderContext(session string, seq int) (cs.FrameContext, error) {
	total, err := s.Storage.Count(session)
	if err != nil {
		return cs.FrameContext{}, err
	}

	if seq < 0 || seq >= total {
		return cs.FrameContext{}, fmt.Errorf("frame %d of %d in %s: %w", seq, total, session, model.ErrNotFound)
	}

	frames, err := s.Storage.AllIterator(session)
	if err != nil {
		return cs.FrameContext{}, err
	}

	replayed := make([]model.Frame, 0, seq+1)
	width, height := 0, 0

	for f := range frames {
		if f.Seq > seq {
			break
		}

		width = max(width, f.Col+f.Cols)
		height = max(height, f.Row+f.Rows)
		replayed = append(replayed, f)
	}

	if len(replayed) == 0 {
		return cs.FrameContext{}, fmt.Errorf("frame %d in %s: %w", seq, session, model.ErrNotFound)
	}

	last := replayed[len(replayed)-1]

	mem, err := display.NewMemory(width, height, last.Mode)
	if err != nil {
		return cs.FrameContext{}, err
	}

	for _, f := range replayed {
		if err := mem.WriteBlock(f.Data, f.Row, f.Col, f.Cols); err != nil {
			return cs.FrameContext{}, fmt.Errorf("could not replay frame %d: %w", f.Seq, err)
		}
	}

	b, err := mem.Bitmap()
	if err != nil {
		return cs.FrameContext{}, err
	}

	pixels := make([][]bool, height)
	for row := range pixels {
		pixels[row] = make([]bool, width)
		for col := range pixels[row] {
			pixels[row][col] = b.Get(col, row)
		}
	}

	return cs.FrameContext{
		Session: session,
		Seq:     last.Seq,
		Total:   total,
		Width:   width,
		Height:  height,
		Pixels:  pixels,
		Block:   cs.Block{Row: last.Row, Col: last.Col, Cols: last.Cols, Rows: last.Rows},
	}, nil
}

// FrameHandle handles requests to the frame page.
func (s *ServerHandler) FrameHandle(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")

	seq, err := strconv.Atoi(r.URL.Query().Get("seq"))
	if err != nil || session == "" {
		http.Error(w, "session and seq are required", http.StatusBadRequest)

		return
	}

	slog.Info("Handling frame page request", "session", session, "seq", seq)

	renderContext, err := s.BuildFrameRenderContext(session, seq)
	if errors.Is(err, model.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}

	if err != nil {
		slog.Error("Failed to build frame", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if err := SafeRenderTemplate(cs.FramePage(&renderContext), w); err != nil {
		slog.Error("Failed to render frame", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

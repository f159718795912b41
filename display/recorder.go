package display

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"
	"github.com/google/uuid"
)

// FrameStore persists recorded blocks.
type FrameStore interface {
	Store(frame *model.Frame) error
}

// Recorder passes writes through to another driver and stores every block
// under one session id.
type Recorder struct {
	Driver

	store   FrameStore
	session string
	seq     int
}

func NewRecorder(d Driver, store FrameStore) *Recorder {
	return &Recorder{
		Driver:  d,
		store:   store,
		session: uuid.NewString(),
	}
}

// Session returns the id the frames are stored under.
func (r *Recorder) Session() string {
	return r.session
}

func (r *Recorder) WriteBlock(data []byte, row, col, cols int) error {
	if err := r.Driver.WriteBlock(data, row, col, cols); err != nil {
		return err
	}

	return r.record(data, row, col, cols)
}

// Clear is recorded as a blank block covering the whole display, so a replay
// wipes the screen at the same point.
func (r *Recorder) Clear() error {
	if err := r.Driver.Clear(); err != nil {
		return err
	}

	return r.record(make([]byte, PackedSize(r.Mode(), r.Width(), r.Height())), 0, 0, r.Width())
}

func (r *Recorder) record(data []byte, row, col, cols int) error {
	frame := &model.Frame{
		Session:   r.session,
		Seq:       r.seq,
		Row:       row,
		Col:       col,
		Cols:      cols,
		Rows:      BlockRows(r.Mode(), len(data), cols),
		Mode:      r.Mode(),
		Data:      append([]byte(nil), data...),
		Timestamp: time.Now(),
	}

	if err := r.store.Store(frame); err != nil {
		return fmt.Errorf("could not record frame %d: %w", r.seq, err)
	}

	slog.DebugContext(logging.PackageCtx("display"), "Recorded frame", "session", r.session, "seq", r.seq)

	r.seq++

	return nil
}

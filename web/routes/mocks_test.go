package routes_test

import (
	"iter"

	"github.com/dasdy/monoframe/model"
)

// SimpleStorageMock is a manual mock of db.Storage keeping frames in memory.
type SimpleStorageMock struct {
	Frames      map[string][]model.Frame
	Order       []string
	ReturnError error
	CallCount   int
}

func (m *SimpleStorageMock) Store(frame *model.Frame) error {
	if m.Frames == nil {
		m.Frames = make(map[string][]model.Frame)
	}

	if _, ok := m.Frames[frame.Session]; !ok {
		m.Order = append(m.Order, frame.Session)
	}

	m.Frames[frame.Session] = append(m.Frames[frame.Session], *frame)

	return m.ReturnError
}

func (m *SimpleStorageMock) Sessions() ([]string, error) {
	m.CallCount++

	return m.Order, m.ReturnError
}

func (m *SimpleStorageMock) AllIterator(session string) (iter.Seq[model.Frame], error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	return func(yield func(model.Frame) bool) {
		for _, f := range m.Frames[session] {
			if !yield(f) {
				return
			}
		}
	}, nil
}

func (m *SimpleStorageMock) Get(session string, seq int) (*model.Frame, error) {
	for _, f := range m.Frames[session] {
		if f.Seq == seq {
			return &f, nil
		}
	}

	return nil, model.ErrNotFound
}

func (m *SimpleStorageMock) Latest(session string) (*model.Frame, error) {
	frames := m.Frames[session]
	if len(frames) == 0 {
		return nil, model.ErrNotFound
	}

	return &frames[len(frames)-1], nil
}

func (m *SimpleStorageMock) Count(session string) (int, error) {
	m.CallCount++

	return len(m.Frames[session]), m.ReturnError
}

func (m *SimpleStorageMock) Close() {}

// pageFrame returns a one page frame of cols columns with every pixel set.
func pageFrame(session string, seq, row, col, cols int) *model.Frame {
	data := make([]byte, cols)
	for i := range data {
		data[i] = 0xFF
	}

	return &model.Frame{
		Session: session,
		Seq:     seq,
		Row:     row,
		Col:     col,
		Cols:    cols,
		Rows:    8,
		Mode:    model.PageVertical,
		Data:    data,
	}
}

package widget_test

import (
	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/model"
)

// RasterizerMock is a manual mock of text.Rasterizer. Rendered bitmaps have
// one pixel set per character on the top row.
type RasterizerMock struct {
	RenderCalls    int
	TopMarginCalls int
	LastText       string
	LastFont       model.Font
	LastMargin     model.Margin
	LastExpand     bool
	Top            int
	ReturnError    error
}

func (m *RasterizerMock) Render(s string, f model.Font, width, height int, expand bool, margin model.Margin) (*bitmap.Bitmap, error) {
	m.RenderCalls++
	m.LastText = s
	m.LastFont = f
	m.LastMargin = margin
	m.LastExpand = expand

	if m.ReturnError != nil {
		return nil, m.ReturnError
	}

	if expand && len(s) > width {
		width = len(s)
	}

	b, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}

	for i := range s {
		b.Set(i, 0, true)
	}

	return b, nil
}

func (m *RasterizerMock) TopMargin(_ model.Font, _ int) (int, error) {
	m.TopMarginCalls++

	return m.Top, m.ReturnError
}

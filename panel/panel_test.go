package panel_test

import (
	"bytes"
	"testing"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/panel"
	"github.com/dasdy/monoframe/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticItem struct {
	b *bitmap.Bitmap
}

func (s staticItem) Bitmap() (*bitmap.Bitmap, error) {
	return s.b, nil
}

func filled(t *testing.T, w, h int) staticItem {
	t.Helper()

	b, err := bitmap.New(w, h)
	require.NoError(t, err)
	b.FillRect(0, 0, w, h, true)

	return staticItem{b}
}

func newRoot(t *testing.T, w, h int) *panel.Panel {
	t.Helper()

	p, err := panel.New(w, h)
	require.NoError(t, err)

	return p
}

func TestNew(t *testing.T) {
	_, err := panel.New(0, 8)
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	mem, err := display.NewMemory(128, 32, model.PageVertical)
	require.NoError(t, err)

	p, err := panel.NewForDriver(mem)
	require.NoError(t, err)
	assert.Equal(t, 128, p.Width())
	assert.Equal(t, 32, p.Height())
	assert.Equal(t, model.Origin{}, p.Screen())
}

func TestSplit(t *testing.T) {
	t.Run("should sort positions and split rows", func(t *testing.T) {
		p := newRoot(t, 16, 16)

		children, err := p.VerticalPanels(8, 4)
		require.NoError(t, err)
		require.Len(t, children, 3)

		heights := []int{children[0].Height(), children[1].Height(), children[2].Height()}
		tops := []int{children[0].Origin().Top, children[1].Origin().Top, children[2].Origin().Top}

		assert.Equal(t, []int{4, 4, 8}, heights)
		assert.Equal(t, []int{0, 4, 8}, tops)

		for _, c := range children {
			assert.Equal(t, 16, c.Width())
			assert.Equal(t, 0, c.Origin().Left)
		}
	})

	t.Run("should split columns", func(t *testing.T) {
		p := newRoot(t, 20, 8)

		children, err := p.HorizontalPanels(5)
		require.NoError(t, err)
		require.Len(t, children, 2)

		assert.Equal(t, 5, children[0].Width())
		assert.Equal(t, 15, children[1].Width())
		assert.Equal(t, model.Origin{Left: 5}, children[1].Origin())
		assert.Equal(t, 8, children[1].Height())
	})

	t.Run("should ignore duplicate and boundary positions", func(t *testing.T) {
		p := newRoot(t, 16, 16)

		children, err := p.VerticalPanels(0, 8, 8, 16)
		require.NoError(t, err)
		assert.Len(t, children, 2)
	})

	t.Run("should reject positions outside the panel", func(t *testing.T) {
		p := newRoot(t, 16, 16)

		_, err := p.VerticalPanels(4, 17)
		assert.ErrorIs(t, err, model.ErrOutOfRange)

		_, err = p.HorizontalPanels(-1)
		assert.ErrorIs(t, err, model.ErrOutOfRange)

		assert.Empty(t, p.Children())
	})

	t.Run("should append children on repeated splits", func(t *testing.T) {
		p := newRoot(t, 16, 16)

		_, err := p.VerticalPanels(8)
		require.NoError(t, err)
		_, err = p.HorizontalPanels(8)
		require.NoError(t, err)

		assert.Len(t, p.Children(), 4)
	})

	t.Run("should track screen position of nested panels", func(t *testing.T) {
		p := newRoot(t, 32, 16)

		columns, err := p.HorizontalPanels(16)
		require.NoError(t, err)

		rows, err := columns[1].VerticalPanels(8)
		require.NoError(t, err)

		assert.Equal(t, model.Origin{Top: 8}, rows[1].Origin())
		assert.Equal(t, model.Origin{Top: 8, Left: 16}, rows[1].Screen())
	})
}

func TestCompose(t *testing.T) {
	t.Run("should paint children at their origin", func(t *testing.T) {
		p := newRoot(t, 8, 2)

		columns, err := p.HorizontalPanels(6)
		require.NoError(t, err)
		columns[1].SetContent(filled(t, 2, 2))

		b, err := p.Compose()
		require.NoError(t, err)
		assert.Equal(t, []int{6, 7, 14, 15}, b.SetIndices())
	})

	t.Run("should paint content over children", func(t *testing.T) {
		p := newRoot(t, 4, 1)

		children, err := p.HorizontalPanels(2)
		require.NoError(t, err)
		children[0].SetContent(filled(t, 2, 1))

		overlay, err := bitmap.New(4, 1)
		require.NoError(t, err)
		overlay.Set(3, 0, true)
		p.SetContent(staticItem{overlay})

		b, err := p.Compose()
		require.NoError(t, err)
		assert.Equal(t, []int{3}, b.SetIndices())
	})

	t.Run("should let later children cover earlier ones", func(t *testing.T) {
		p := newRoot(t, 4, 4)

		first, err := p.VerticalPanels()
		require.NoError(t, err)
		first[0].SetContent(filled(t, 4, 4))

		b, err := p.Compose()
		require.NoError(t, err)
		assert.Len(t, b.SetIndices(), 16)

		_, err = p.VerticalPanels()
		require.NoError(t, err)

		b, err = p.Compose()
		require.NoError(t, err)
		assert.Empty(t, b.SetIndices())
	})

	t.Run("should use widget content", func(t *testing.T) {
		p := newRoot(t, 10, 1)

		progress, err := widget.NewProgressWidget(10, 1)
		require.NoError(t, err)
		require.NoError(t, progress.SetPercent(0.3))
		p.SetContent(progress)

		b, err := p.Compose()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, b.SetIndices())
	})
}

func TestRender(t *testing.T) {
	newMemory := func(t *testing.T) *display.Memory {
		t.Helper()

		mem, err := display.NewMemory(16, 16, model.PageVertical)
		require.NoError(t, err)

		return mem
	}

	t.Run("should write panel at its screen position", func(t *testing.T) {
		mem := newMemory(t)
		p, err := panel.NewForDriver(mem)
		require.NoError(t, err)

		rows, err := p.VerticalPanels(8)
		require.NoError(t, err)
		rows[1].SetContent(filled(t, 16, 8))

		require.NoError(t, rows[1].Render(mem, false))

		expected := append(make([]byte, 16), bytes.Repeat([]byte{0xFF}, 16)...)
		assert.Equal(t, expected, mem.RAM())
		assert.Equal(t, 0, mem.Flushes)
	})

	t.Run("should clear and flush on refresh", func(t *testing.T) {
		mem := newMemory(t)
		p, err := panel.NewForDriver(mem)
		require.NoError(t, err)

		rows, err := p.VerticalPanels(8)
		require.NoError(t, err)
		rows[1].SetContent(filled(t, 16, 8))
		require.NoError(t, p.Render(mem, false))

		rows[1].SetContent(nil)
		columns, err := rows[0].HorizontalPanels(8)
		require.NoError(t, err)
		columns[1].SetContent(filled(t, 8, 8))

		require.NoError(t, rows[0].Render(mem, true))

		b, err := mem.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, 1, mem.Flushes)
		assert.Len(t, b.SetIndices(), 64)
		assert.True(t, b.Get(8, 0))
		assert.False(t, b.Get(0, 8))
	})

	t.Run("should reject panels off the page grid", func(t *testing.T) {
		mem := newMemory(t)
		p, err := panel.NewForDriver(mem)
		require.NoError(t, err)

		rows, err := p.VerticalPanels(4)
		require.NoError(t, err)

		assert.ErrorIs(t, rows[1].Render(mem, false), model.ErrInvalidDimension)
	})
}

package widget_test

import (
	"errors"
	"math"
	"testing"

	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/text"
	"github.com/dasdy/monoframe/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextWidget(t *testing.T) {
	t.Run("should render lazily and cache", func(t *testing.T) {
		mock := &RasterizerMock{Top: 3}
		w := widget.NewTextWidget(16, 8, mock)
		w.SetText("abc")

		assert.False(t, w.Ready())
		assert.Equal(t, 0, mock.RenderCalls)

		first, err := w.Bitmap()
		require.NoError(t, err)

		second, err := w.Bitmap()
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, mock.RenderCalls)
		assert.True(t, w.Ready())
		assert.Equal(t, []int{0, 1, 2}, first.SetIndices())
	})

	t.Run("should pass centered margin and expand", func(t *testing.T) {
		mock := &RasterizerMock{Top: 3}
		w := widget.NewTextWidget(16, 8, mock)
		w.SetIndent(2)
		w.SetText("x")

		_, err := w.Bitmap()
		require.NoError(t, err)

		assert.Equal(t, model.Margin{Top: 3, Left: 2}, mock.LastMargin)
		assert.True(t, mock.LastExpand)
	})

	t.Run("should invalidate on text change", func(t *testing.T) {
		mock := &RasterizerMock{}
		w := widget.NewTextWidget(16, 8, mock)
		w.SetText("a")
		_, _ = w.Bitmap()

		w.SetText("ab")
		assert.False(t, w.Ready())

		b, err := w.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, 2, mock.RenderCalls)
		assert.Equal(t, []int{0, 1}, b.SetIndices())
	})

	t.Run("should invalidate on font change", func(t *testing.T) {
		mock := &RasterizerMock{}
		w := widget.NewTextWidget(16, 8, mock)
		_, _ = w.Bitmap()

		font := model.Font{File: "font.otf", Size: 20}
		w.SetFont(font)
		assert.False(t, w.Ready())

		_, err := w.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, font, mock.LastFont)
		assert.Equal(t, 2, mock.TopMarginCalls)
	})

	t.Run("should expand for long text", func(t *testing.T) {
		w := widget.NewTextWidget(4, 8, &RasterizerMock{})
		w.SetText("longer")

		b, err := w.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, 6, b.Width())
	})

	t.Run("should surface rasterizer errors", func(t *testing.T) {
		mock := &RasterizerMock{ReturnError: errors.New("boom")}
		w := widget.NewTextWidget(4, 8, mock)

		_, err := w.Bitmap()
		assert.Error(t, err)
		assert.False(t, w.Ready())
	})

	t.Run("should render with built-in font", func(t *testing.T) {
		w := widget.NewTextWidget(64, 16, text.NewRenderer())
		w.SetText("Hello")

		b, err := w.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, 64, b.Width())
		assert.NotEmpty(t, b.SetIndices())
	})
}

func TestProgressWidget(t *testing.T) {
	t.Run("should start empty", func(t *testing.T) {
		w, err := widget.NewProgressWidget(10, 2)
		require.NoError(t, err)

		b, err := w.Bitmap()
		require.NoError(t, err)
		assert.Empty(t, b.SetIndices())
	})

	t.Run("should fill proportionally", func(t *testing.T) {
		w, err := widget.NewProgressWidget(10, 2)
		require.NoError(t, err)

		require.NoError(t, w.SetPercent(0.35))

		b, err := w.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 10, 11, 12}, b.SetIndices())
	})

	t.Run("should shrink when percent drops", func(t *testing.T) {
		w, err := widget.NewProgressWidget(4, 1)
		require.NoError(t, err)

		require.NoError(t, w.SetPercent(1))
		_, _ = w.Bitmap()
		require.NoError(t, w.SetPercent(0.5))

		b, err := w.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, b.SetIndices())
	})

	t.Run("should reject percent out of range", func(t *testing.T) {
		w, err := widget.NewProgressWidget(10, 2)
		require.NoError(t, err)
		require.NoError(t, w.SetPercent(0.5))

		for _, p := range []float64{-0.1, 1.01, 7, math.NaN(), math.Inf(1)} {
			assert.ErrorIs(t, w.SetPercent(p), model.ErrOutOfRange)
		}

		assert.InDelta(t, 0.5, w.Percent(), 1e-9)
	})

	t.Run("should reject invalid size", func(t *testing.T) {
		_, err := widget.NewProgressWidget(0, 2)
		assert.ErrorIs(t, err, model.ErrInvalidDimension)
	})
}

func TestProgressTween(t *testing.T) {
	t.Run("should reach target", func(t *testing.T) {
		w, err := widget.NewProgressWidget(10, 1)
		require.NoError(t, err)

		tween, err := w.Animate(1, 1, nil)
		require.NoError(t, err)

		require.NoError(t, tween.Update(0.5))
		assert.False(t, tween.Done)
		assert.InDelta(t, 0.5, w.Percent(), 1e-6)

		require.NoError(t, tween.Update(0.6))
		assert.True(t, tween.Done)
		assert.InDelta(t, 1, w.Percent(), 1e-6)
	})

	t.Run("should reject target out of range", func(t *testing.T) {
		w, err := widget.NewProgressWidget(10, 1)
		require.NoError(t, err)

		_, err = w.Animate(2, 1, nil)
		assert.ErrorIs(t, err, model.ErrOutOfRange)

		_, err = w.Animate(math.NaN(), 1, nil)
		assert.ErrorIs(t, err, model.ErrOutOfRange)
	})
}

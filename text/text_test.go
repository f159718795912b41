package text_test

import (
	"path/filepath"
	"testing"

	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := text.NewRenderer()

	t.Run("should render into requested size", func(t *testing.T) {
		b, err := r.Render("Hi", model.Font{}, 40, 16, false, model.Margin{})

		require.NoError(t, err)
		assert.Equal(t, 40, b.Width())
		assert.Equal(t, 16, b.Height())
		assert.NotEmpty(t, b.SetIndices())
	})

	t.Run("should expand to fit text", func(t *testing.T) {
		b, err := r.Render("abcd", model.Font{}, 10, 16, true, model.Margin{Left: 2, Right: 1})

		require.NoError(t, err)
		assert.Equal(t, 4*7+3, b.Width())
	})

	t.Run("should not shrink when text fits", func(t *testing.T) {
		b, err := r.Render("a", model.Font{}, 50, 16, true, model.Margin{})

		require.NoError(t, err)
		assert.Equal(t, 50, b.Width())
	})

	t.Run("should clip without expand", func(t *testing.T) {
		b, err := r.Render("abcdefgh", model.Font{}, 10, 16, false, model.Margin{})

		require.NoError(t, err)
		assert.Equal(t, 10, b.Width())
	})

	t.Run("should shift text by margin", func(t *testing.T) {
		plain, err := r.Render("A", model.Font{}, 20, 16, false, model.Margin{})
		require.NoError(t, err)

		shifted, err := r.Render("A", model.Font{}, 20, 16, false, model.Margin{Left: 3, Top: 2})
		require.NoError(t, err)

		for y := 0; y < 14; y++ {
			for x := 0; x < 17; x++ {
				assert.Equal(t, plain.Get(x, y), shifted.Get(x+3, y+2), "pixel (%d,%d)", x, y)
			}
		}
	})

	t.Run("should render empty string as blank", func(t *testing.T) {
		b, err := r.Render("", model.Font{}, 8, 8, true, model.Margin{})

		require.NoError(t, err)
		assert.Empty(t, b.SetIndices())
	})

	t.Run("should fail on missing font file", func(t *testing.T) {
		_, err := r.Render("a", model.Font{File: filepath.Join(t.TempDir(), "missing.ttf"), Size: 12}, 8, 8, false, model.Margin{})
		assert.Error(t, err)
	})

	t.Run("should reject empty size", func(t *testing.T) {
		_, err := r.Render("", model.Font{}, 0, 8, false, model.Margin{})
		assert.ErrorIs(t, err, model.ErrInvalidDimension)
	})
}

func TestTopMargin(t *testing.T) {
	r := text.NewRenderer()

	t.Run("should center built-in face", func(t *testing.T) {
		top, err := r.TopMargin(model.Font{}, 16)

		require.NoError(t, err)
		assert.Equal(t, 2, top)
	})

	t.Run("should grow with height", func(t *testing.T) {
		small, err := r.TopMargin(model.Font{}, 16)
		require.NoError(t, err)

		large, err := r.TopMargin(model.Font{}, 32)
		require.NoError(t, err)

		assert.Greater(t, large, small)
	})
}

func TestMeasure(t *testing.T) {
	width, err := text.NewRenderer().Measure("abc", model.Font{})

	require.NoError(t, err)
	assert.Equal(t, 21, width)
}

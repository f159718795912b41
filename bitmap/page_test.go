package bitmap_test

import (
	"testing"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPageFormat(t *testing.T) {
	t.Run("should pack vertical pages", func(t *testing.T) {
		expected := []byte{
			7, 5, 5, 5, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 7, 5, 5, 229, 167, 160, 160, 224,
		}

		b := newBitmap(t, 16, 16)
		b.Blit(smallRect(t), 0, 0, false)
		b.Blit(smallRect(t), 8, 8, false)
		b.Blit(smallRect(t), 11, 13, false)

		data, err := b.ToPageFormat(model.PageVertical)

		require.NoError(t, err)
		assert.Equal(t, expected, data)
	})

	t.Run("should put top row of page in bit 0", func(t *testing.T) {
		b := newBitmap(t, 2, 8)
		b.Set(0, 0, true)
		b.Set(1, 7, true)

		data, err := b.ToPageFormat(model.PageVertical)

		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x80}, data)
	})

	t.Run("should reject height not divisible by 8", func(t *testing.T) {
		b := newBitmap(t, 8, 12)

		_, err := b.ToPageFormat(model.PageVertical)

		assert.ErrorIs(t, err, model.ErrInvalidDimension)
	})

	t.Run("should pack horizontal rows MSB first", func(t *testing.T) {
		b := newBitmap(t, 16, 2)
		b.Blit(smallRect(t), 0, 0, false)
		b.Set(15, 1, true)

		data, err := b.ToPageFormat(model.RowHorizontal)

		require.NoError(t, err)
		assert.Equal(t, []byte{0xF8, 0x00, 0x88, 0x01}, data)
	})

	t.Run("should pad partial horizontal chunk", func(t *testing.T) {
		b := newBitmap(t, 10, 1)
		b.Set(8, 0, true)
		b.Set(9, 0, true)

		data, err := b.ToPageFormat(model.RowHorizontal)

		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xC0}, data)
	})

	t.Run("should reject unknown mode", func(t *testing.T) {
		_, err := newBitmap(t, 8, 8).ToPageFormat(model.Mode(42))
		assert.Error(t, err)
	})
}

func TestFromPageFormat(t *testing.T) {
	t.Run("should restore packed bitmap", func(t *testing.T) {
		b := newBitmap(t, 16, 16)
		b.Blit(smallRect(t), 8, 8, false)
		b.Blit(smallRect(t), 11, 13, true)

		for _, mode := range []model.Mode{model.PageVertical, model.RowHorizontal} {
			data, err := b.ToPageFormat(mode)
			require.NoError(t, err)

			restored, err := bitmap.FromPageFormat(data, 16, 16, mode)
			require.NoError(t, err)

			assert.True(t, b.Equal(restored), "mode %s:\n%s", mode, restored)
		}
	})

	t.Run("should reject wrong data length", func(t *testing.T) {
		_, err := bitmap.FromPageFormat(make([]byte, 3), 8, 8, model.PageVertical)
		assert.ErrorIs(t, err, model.ErrInvalidDimension)
	})
}

package bitmap

import (
	"fmt"

	"github.com/dasdy/monoframe/model"
)

// ToPageFormat packs the bitmap into the byte layout used by display memory.
//
// With model.PageVertical rows are grouped into pages of 8. Bytes go page by
// page from the top, and within a page column by column from the left. Each
// byte holds one column of the page, bit 0 being its top row. The height must
// be a multiple of 8.
//
// With model.RowHorizontal every row is cut into chunks of 8 columns, MSB
// being the leftmost pixel. Rows go from the top, chunks from the left, and a
// trailing partial chunk is padded with zeros.
func (b *Bitmap) ToPageFormat(mode model.Mode) ([]byte, error) {
	switch mode {
	case model.PageVertical:
		return b.packVertical()
	case model.RowHorizontal:
		return b.packHorizontal(), nil
	default:
		return nil, fmt.Errorf("unknown packing mode %d", mode)
	}
}

func (b *Bitmap) packVertical() ([]byte, error) {
	if b.height%8 != 0 {
		return nil, fmt.Errorf("vertical packing needs height divisible by 8, got %d: %w",
			b.height, model.ErrInvalidDimension)
	}

	pages := b.height / 8
	data := make([]byte, pages*b.width)

	for page := 0; page < pages; page++ {
		for bit := 0; bit < 8; bit++ {
			row := b.bits[(page*8+bit)*b.width : (page*8+bit+1)*b.width]
			out := data[page*b.width : (page+1)*b.width]

			for col, v := range row {
				if v {
					out[col] |= 1 << bit
				}
			}
		}
	}

	return data, nil
}

func (b *Bitmap) packHorizontal() []byte {
	chunks := (b.width + 7) / 8
	data := make([]byte, chunks*b.height)

	for row := 0; row < b.height; row++ {
		for col, v := range b.bits[row*b.width : (row+1)*b.width] {
			if v {
				data[row*chunks+col/8] |= 0x80 >> (col % 8)
			}
		}
	}

	return data
}

// FromPageFormat is the inverse of ToPageFormat.
func FromPageFormat(data []byte, width, height int, mode model.Mode) (*Bitmap, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}

	switch mode {
	case model.PageVertical:
		if height%8 != 0 {
			return nil, fmt.Errorf("vertical packing needs height divisible by 8, got %d: %w",
				height, model.ErrInvalidDimension)
		}

		if len(data) != width*height/8 {
			return nil, fmt.Errorf("expected %d bytes, got %d: %w", width*height/8, len(data), model.ErrInvalidDimension)
		}

		for i, v := range data {
			page, col := i/width, i%width
			for bit := 0; bit < 8; bit++ {
				b.bits[(page*8+bit)*width+col] = v&(1<<bit) != 0
			}
		}
	case model.RowHorizontal:
		chunks := (width + 7) / 8
		if len(data) != chunks*height {
			return nil, fmt.Errorf("expected %d bytes, got %d: %w", chunks*height, len(data), model.ErrInvalidDimension)
		}

		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				b.bits[row*width+col] = data[row*chunks+col/8]&(0x80>>(col%8)) != 0
			}
		}
	default:
		return nil, fmt.Errorf("unknown packing mode %d", mode)
	}

	return b, nil
}

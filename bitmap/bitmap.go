// Package bitmap implements a 1-bit framebuffer with clipped drawing
// operations and conversion into display memory layouts.
package bitmap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dasdy/monoframe/model"
)

// Bitmap is a row-major 1-bit pixel buffer. The pixel at column x, row y is
// stored at index y*width + x.
type Bitmap struct {
	width  int
	height int
	bits   []bool
}

// New creates a cleared bitmap of the given size.
func New(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap %dx%d: %w", width, height, model.ErrInvalidDimension)
	}

	return &Bitmap{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}, nil
}

func (b *Bitmap) Width() int {
	return b.width
}

func (b *Bitmap) Height() int {
	return b.height
}

// Bits returns the underlying buffer. Callers must not change its length.
func (b *Bitmap) Bits() []bool {
	return b.bits
}

func (b *Bitmap) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the pixel at (x, y), false when out of bounds.
func (b *Bitmap) Get(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}

	return b.bits[y*b.width+x]
}

// Set sets the pixel at (x, y). Does nothing if out of bounds.
func (b *Bitmap) Set(x, y int, value bool) {
	if !b.inBounds(x, y) {
		return
	}

	b.bits[y*b.width+x] = value
}

// clip intersects a w*h rectangle at (x, y) with the bitmap bounds.
// ok is false when the intersection is empty.
func (b *Bitmap) clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	x0 = max(x, 0)
	y0 = max(y, 0)
	x1 = min(x+w, b.width)
	y1 = min(y+h, b.height)

	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

// Blit copies src onto b with its top-left corner at (x, y). Only the part of
// src that overlaps b is copied; pixels outside that area are left untouched.
// When invert is set the copied pixels are complemented; src is not modified.
func (b *Bitmap) Blit(src *Bitmap, x, y int, invert bool) {
	b.blit(src.bits, src.width, src.height, x, y, invert)
}

// DrawBits is Blit for a raw row-major buffer of w*h pixels.
func (b *Bitmap) DrawBits(bits []bool, w, h, x, y int, invert bool) error {
	if w <= 0 || h <= 0 || len(bits) != w*h {
		return fmt.Errorf("source of %d bits for %dx%d: %w", len(bits), w, h, model.ErrInvalidDimension)
	}

	b.blit(bits, w, h, x, y, invert)

	return nil
}

// sameArray reports whether a and b share a backing array.
func sameArray(a, b []bool) bool {
	if cap(a) == 0 || cap(b) == 0 {
		return false
	}

	return &a[:cap(a)][cap(a)-1] == &b[:cap(b)][cap(b)-1]
}

func (b *Bitmap) blit(src []bool, w, h, x, y int, invert bool) {
	x0, y0, x1, y1, ok := b.clip(x, y, w, h)
	if !ok {
		return
	}

	// Rows are read from src as it was before the call.
	if sameArray(src, b.bits) {
		src = slices.Clone(src)
	}

	for r := y0; r < y1; r++ {
		dst := b.bits[r*b.width+x0 : r*b.width+x1]
		start := (r-y)*w + (x0 - x)
		row := src[start : start+len(dst)]

		if !invert {
			copy(dst, row)

			continue
		}

		for i, v := range row {
			dst[i] = !v
		}
	}
}

// FillRect sets every pixel of the clipped w*h rectangle at (x, y) to value.
func (b *Bitmap) FillRect(x, y, w, h int, value bool) {
	x0, y0, x1, y1, ok := b.clip(x, y, w, h)
	if !ok {
		return
	}

	for r := y0; r < y1; r++ {
		row := b.bits[r*b.width+x0 : r*b.width+x1]
		for i := range row {
			row[i] = value
		}
	}
}

// InvertAll complements every pixel.
func (b *Bitmap) InvertAll() {
	for i, v := range b.bits {
		b.bits[i] = !v
	}
}

// ClearAll sets every pixel to false.
func (b *Bitmap) ClearAll() {
	clear(b.bits)
}

// Copy returns an independent bitmap with the same contents.
func (b *Bitmap) Copy() *Bitmap {
	bits := make([]bool, len(b.bits))
	copy(bits, b.bits)

	return &Bitmap{width: b.width, height: b.height, bits: bits}
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}

	for i, v := range b.bits {
		if other.bits[i] != v {
			return false
		}
	}

	return true
}

// SetIndices returns the row-major indices of all set pixels in order.
func (b *Bitmap) SetIndices() []int {
	result := make([]int, 0)

	for i, v := range b.bits {
		if v {
			result = append(result, i)
		}
	}

	return result
}

// String renders the bitmap as text, one |...| line per row.
func (b *Bitmap) String() string {
	var sb strings.Builder

	for row := 0; row < b.height; row++ {
		sb.WriteByte('|')

		for _, v := range b.bits[row*b.width : (row+1)*b.width] {
			if v {
				sb.WriteByte('*')
			} else {
				sb.WriteByte(' ')
			}
		}

		sb.WriteString("|\n")
	}

	return sb.String()
}

// Package display contains drivers for page-addressed monochrome displays.
//
// A driver accepts blocks already packed by bitmap.Bitmap.ToPageFormat in the
// layout reported by Mode, and keeps a mirror of the display memory so that
// Flush can resend the whole frame.
package display

import (
	"fmt"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/model"
)

// Driver is a display that accepts packed blocks.
type Driver interface {
	Width() int
	Height() int
	// Mode is the packing layout WriteBlock expects.
	Mode() model.Mode
	// WriteBlock writes a packed block whose top-left pixel lands at
	// (row, col) and which is cols pixels wide.
	WriteBlock(data []byte, row, col, cols int) error
	// Flush sends the whole display memory.
	Flush() error
	// Clear blanks the display memory. Nothing is sent until Flush.
	Clear() error
}

// BlockRows returns the pixel height of a packed block of n bytes.
func BlockRows(mode model.Mode, n, cols int) int {
	if cols <= 0 {
		return 0
	}

	switch mode {
	case model.PageVertical:
		return n / cols * 8
	case model.RowHorizontal:
		return n / ((cols + 7) / 8)
	default:
		return 0
	}
}

// PackedSize returns the number of bytes of a packed width x height block.
func PackedSize(mode model.Mode, width, height int) int {
	switch mode {
	case model.PageVertical:
		return width * (height / 8)
	case model.RowHorizontal:
		return (width + 7) / 8 * height
	default:
		return 0
	}
}

// Memory is a driver without hardware: it only keeps the display memory.
// The other drivers build on it.
type Memory struct {
	width  int
	height int
	mode   model.Mode
	ram    []byte

	Flushes int
}

func NewMemory(width, height int, mode model.Mode) (*Memory, error) {
	b, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}

	ram, err := b.ToPageFormat(mode)
	if err != nil {
		return nil, err
	}

	return &Memory{width: width, height: height, mode: mode, ram: ram}, nil
}

func (m *Memory) Width() int       { return m.width }
func (m *Memory) Height() int      { return m.height }
func (m *Memory) Mode() model.Mode { return m.mode }

// RAM returns the display memory in the driver's packing layout.
func (m *Memory) RAM() []byte {
	return m.ram
}

// Bitmap decodes the display memory.
func (m *Memory) Bitmap() (*bitmap.Bitmap, error) {
	return bitmap.FromPageFormat(m.ram, m.width, m.height, m.mode)
}

// checkBlock validates a block against the display geometry.
func (m *Memory) checkBlock(data []byte, row, col, cols int) (int, error) {
	if cols <= 0 || row < 0 || col < 0 || col+cols > m.width {
		return 0, fmt.Errorf("block of %d columns at (%d,%d) on %dx%d display: %w",
			cols, row, col, m.width, m.height, model.ErrInvalidDimension)
	}

	rows := BlockRows(m.mode, len(data), cols)

	switch m.mode {
	case model.PageVertical:
		if row%8 != 0 || len(data)%cols != 0 {
			return 0, fmt.Errorf("block at row %d with %d bytes is not page aligned: %w",
				row, len(data), model.ErrInvalidDimension)
		}
	case model.RowHorizontal:
		if col%8 != 0 || len(data)%((cols+7)/8) != 0 {
			return 0, fmt.Errorf("block at column %d with %d bytes is not byte aligned: %w",
				col, len(data), model.ErrInvalidDimension)
		}
	}

	if rows == 0 || row+rows > m.height {
		return 0, fmt.Errorf("block of %d rows at row %d on %d rows: %w",
			rows, row, m.height, model.ErrInvalidDimension)
	}

	return rows, nil
}

func (m *Memory) WriteBlock(data []byte, row, col, cols int) error {
	rows, err := m.checkBlock(data, row, col, cols)
	if err != nil {
		return err
	}

	switch m.mode {
	case model.PageVertical:
		for page := 0; page < rows/8; page++ {
			dst := (row/8+page)*m.width + col
			copy(m.ram[dst:dst+cols], data[page*cols:(page+1)*cols])
		}
	case model.RowHorizontal:
		chunks := (cols + 7) / 8
		stride := (m.width + 7) / 8

		for r := 0; r < rows; r++ {
			dst := (row+r)*stride + col/8
			copy(m.ram[dst:dst+chunks], data[r*chunks:(r+1)*chunks])
		}
	}

	return nil
}

func (m *Memory) Flush() error {
	m.Flushes++

	return nil
}

func (m *Memory) Clear() error {
	clear(m.ram)

	return nil
}

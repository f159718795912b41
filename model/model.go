package model

import (
	"time"
)

// Origin is the top-left corner of a region in its parent's coordinate space.
type Origin struct {
	Top  int
	Left int
}

type Margin struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Font identifies a font face. An empty File selects the built-in face.
type Font struct {
	File string
	Size float64
}

// Axis along which a panel is split.
type Axis int

const (
	// Vertical splits stack children top to bottom.
	Vertical Axis = iota
	// Horizontal splits place children left to right.
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Mode is the byte layout expected by a display's memory.
type Mode int

const (
	// PageVertical packs 8 rows of one column into a byte, bit 0 on top.
	PageVertical Mode = iota
	// RowHorizontal packs 8 columns of one row into a byte, MSB leftmost.
	RowHorizontal
)

func (m Mode) String() string {
	switch m {
	case PageVertical:
		return "page-vertical"
	case RowHorizontal:
		return "row-horizontal"
	default:
		return "unknown"
	}
}

// Frame is one block written to a display, as kept by the recorder.
type Frame struct {
	Session   string
	Seq       int
	Row       int
	Col       int
	Cols      int
	Rows      int
	Mode      Mode
	Data      []byte
	Timestamp time.Time
}
